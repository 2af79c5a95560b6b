package logger

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func reset() {
	SetVerbose(false)
	SetTimestamps(false)
	SetOutput(os.Stderr)
	now = time.Now
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("fetched %d rows", 12)

	if got := buf.String(); got != "[DEBUG] fetched 12 rows\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Error("refresh %s failed: %v", "stats", "boom")

	if got := buf.String(); got != "[ERROR] refresh stats failed: boom\n" {
		t.Errorf("unexpected error output: %q", got)
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Locale")

	if got := buf.String(); got != "\n=== Locale ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestWarn_WithTimestamps(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	SetTimestamps(true)
	now = func() time.Time { return time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC) }

	Warn("slow fetch")

	if got := buf.String(); got != "2020-04-01T12:00:00Z [WARN] slow fetch\n" {
		t.Errorf("unexpected warn output: %q", got)
	}
}
