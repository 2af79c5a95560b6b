package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/covidstats/internal/core/domain"
)

func TestNewPreferenceStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewPreferenceStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, StorageFile), store.Path())
}

func TestNewPreferenceStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	_, err := NewPreferenceStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPreferenceStore_SetAndGet(t *testing.T) {
	store, err := NewPreferenceStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.PrefLanguage, "sl"))

	val, ok := store.Get(domain.PrefLanguage)
	assert.True(t, ok)
	assert.Equal(t, "sl", val)
	assert.Equal(t, "sl", store.GetString(domain.PrefLanguage))
}

func TestPreferenceStore_GetString_Missing(t *testing.T) {
	store, err := NewPreferenceStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.GetString("nope"))
	require.NoError(t, store.Set("count", int64(3)))
	assert.Empty(t, store.GetString("count"))
}

func TestPreferenceStore_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPreferenceStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(domain.PrefLanguage, "hr"))
	require.NoError(t, store.Set(domain.PrefLocaleContext, "SI"))

	reopened, err := NewPreferenceStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "hr", reopened.GetString(domain.PrefLanguage))
	assert.Equal(t, "SI", reopened.GetString(domain.PrefLocaleContext))
}

func TestPreferenceStore_FilePermissions(t *testing.T) {
	store, err := NewPreferenceStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPreferenceStore_LoadNested(t *testing.T) {
	tmpDir := t.TempDir()
	content := "i18nextLng = \"de\"\n[ui]\ntheme = \"dark\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, StorageFile), []byte(content), 0600))

	store, err := NewPreferenceStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "de", store.GetString(domain.PrefLanguage))
	assert.Equal(t, "dark", store.GetString("ui.theme"))
}

func TestPreferenceStore_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, StorageFile), []byte("not = = toml"), 0600))

	_, err := NewPreferenceStore(tmpDir)
	assert.Error(t, err)
}

func TestFlattenMap(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"e": true,
	}

	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "e": true}, flattenMap(in, ""))
}
