package tui

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/covidstats/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/covidstats/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/covidstats/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/covidstats/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
)

// sparkWidth is the number of series points drawn per sparkline.
const sparkWidth = 30

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// App is the dashboard application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for fetches.
	ctx context.Context

	styles  *styles.Styles
	keymap  *keymap.KeyMap
	status  *status.Bar
	spinner spinner.Model

	// currentView tracks which view is active; previousView is restored
	// when the help view closes.
	currentView  messages.ViewType
	previousView messages.ViewType

	// lc is the locale context the view renders with.
	lc domain.LocaleContext

	// pending counts fetches in flight.
	pending int

	// updatedAt is the completion time of the last successful fetch.
	updatedAt time.Time

	// offset scrolls the hospital list.
	offset int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool

	now func() time.Time
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new dashboard with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)

	lc := ports.Locale.Context()
	bar.SetLanguage(lc.Language)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		status:      bar,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Subtitle)),
		currentView: messages.ViewStats,
		lc:          lc,
		now:         time.Now,
	}, nil
}

// WithContext sets the context used for fetches.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It fetches both datasets and schedules the first refresh.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(a.t("dashboard.title", nil)),
		a.spinner.Tick,
		a.fetchAll(),
		a.scheduleRefresh(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.status.SetSpinner(a.spinner.View())
		return a, cmd

	case messages.DataFetched:
		if a.pending > 0 {
			a.pending--
		}
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(fmt.Sprintf("%s: %v", msg.Dataset, msg.Err))
			return a, nil
		}
		a.updatedAt = a.now()
		if a.pending == 0 && a.status.State() != status.StateError {
			a.status.SetState(status.StateReady)
			a.status.SetMessage(a.t("dashboard.updated", map[string]any{"date": a.updatedAt}))
		}
		return a, nil

	case messages.RefreshTick:
		return a, tea.Batch(a.fetchAll(), a.scheduleRefresh())

	case messages.LanguageChanged:
		if msg.Err != nil {
			a.err = msg.Err
			a.status.SetState(status.StateError)
			a.status.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.lc = msg.Context
		a.status.SetLanguage(msg.Context.Language)
		return a, tea.SetWindowTitle(a.t("dashboard.title", nil))

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.setView(messages.ViewHelp)
	case key.Matches(msg, a.keymap.Back):
		if a.currentView == messages.ViewHelp {
			a.setView(a.previousView)
		}
	case key.Matches(msg, a.keymap.NextView):
		if a.currentView == messages.ViewStats {
			a.setView(messages.ViewHospitals)
		} else {
			a.setView(messages.ViewStats)
		}
	case key.Matches(msg, a.keymap.Refresh):
		return a, a.fetchAll()
	case key.Matches(msg, a.keymap.Language):
		return a, a.nextLanguage()
	case key.Matches(msg, a.keymap.Up):
		if a.offset > 0 {
			a.offset--
		}
	case key.Matches(msg, a.keymap.Down):
		if a.offset < len(a.ports.Hospitals.Hospitals())-1 {
			a.offset++
		}
	}
	return a, nil
}

func (a *App) setView(v messages.ViewType) {
	if v == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
		a.status.SetState(status.StateHelp)
	} else if a.currentView == messages.ViewHelp && v != messages.ViewHelp {
		a.status.SetState(status.StateReady)
	}
	a.currentView = v
}

// fetchAll fetches both datasets concurrently.
func (a *App) fetchAll() tea.Cmd {
	a.pending += 2
	a.err = nil
	a.status.SetState(status.StateFetching)
	a.status.SetMessage(a.t("dashboard.refreshing", nil))
	return tea.Batch(a.fetch(a.ports.Stats), a.fetch(a.ports.Hospitals))
}

func (a *App) fetch(f driving.DatasetFetcher) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return messages.DataFetched{Dataset: f.Dataset(), Err: f.FetchData(ctx)}
	}
}

func (a *App) scheduleRefresh() tea.Cmd {
	if a.ports.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(a.ports.RefreshInterval, func(t time.Time) tea.Msg {
		return messages.RefreshTick{At: t}
	})
}

// nextLanguage switches to the language after the current one.
func (a *App) nextLanguage() tea.Cmd {
	langs := a.ports.Languages
	if len(langs) == 0 {
		return nil
	}
	next := langs[0]
	for i, lng := range langs {
		if lng == a.lc.Language || strings.HasPrefix(a.lc.Language, lng+"-") {
			next = langs[(i+1)%len(langs)]
			break
		}
	}
	locale := a.ports.Locale
	return func() tea.Msg {
		lc, err := locale.ChangeLanguage(next)
		return messages.LanguageChanged{Context: lc, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewHospitals:
		body = a.viewHospitals()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.viewStats()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.viewHeader(),
		body,
		a.status.View(),
	)
}

func (a *App) viewHeader() string {
	tab := func(v messages.ViewType, label string) string {
		if a.currentView == v {
			return a.styles.ActiveTab.Render(label)
		}
		return a.styles.Tab.Render(label)
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		tab(messages.ViewStats, a.t("dashboard.stats", nil)),
		tab(messages.ViewHospitals, a.t("dashboard.hospitals", nil)),
	)
	return a.styles.Title.Render(a.t("dashboard.title", nil)) + "\n" + tabs + "\n"
}

func (a *App) viewStats() string {
	return a.styles.Panel.Render(a.metricRows(a.ports.Stats, a.ports.Fields.StatsFields))
}

func (a *App) viewHospitals() string {
	var b strings.Builder
	b.WriteString(a.metricRows(a.ports.Hospitals, a.ports.Fields.HospitalFields))

	dir := a.ports.Hospitals.Hospitals()
	ids := make([]string, 0, len(dir))
	for id := range dir {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if len(ids) > 0 {
		b.WriteString("\n\n")
		visible := a.height - 14
		if visible < 3 {
			visible = 3
		}
		end := a.offset + visible
		if end > len(ids) {
			end = len(ids)
		}
		for _, id := range ids[a.offset:end] {
			b.WriteString(a.styles.Muted.Render(fmt.Sprintf("%-8s", id)))
			b.WriteString(" ")
			b.WriteString(a.styles.Normal.Render(a.ports.Hospitals.HospitalName(id)))
			b.WriteString("\n")
		}
	}
	return a.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// metricRows renders the last value of each field with its date, age and
// weekly context. Hospital fields also get a sparkline.
func (a *App) metricRows(q driving.TimeSeriesQuery, fields []string) string {
	if !q.Loaded() {
		return a.styles.Muted.Render(a.t("charts.common.loading", nil))
	}

	rows := make([]string, 0, len(fields))
	for _, field := range fields {
		obs := q.GetLastValue(field)
		line := a.styles.Label.Render(a.t("field."+field, nil)) +
			a.styles.Value.Render(a.formatValue(obs.Value))
		if obs.Found() {
			vars := map[string]any{"date": obs.Date}
			days := daysBetween(obs.Date, a.now())
			line += "  " + a.styles.Muted.Render(strings.Join([]string{
				a.t("dashboard.lastOn", vars),
				a.t("dashboard.week", vars),
			}, " · ")) + a.styles.Muted.Render(" · ") +
				a.styles.Age(days).Render(a.ports.Translator.TCount(a.lc.Language, "dashboard.daysAgo", days, nil))
		}
		if h, ok := q.(driving.HospitalsService); ok {
			line += "  " + a.styles.Sparkline.Render(sparkline(h.GetSeries(field), sparkWidth))
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return a.styles.Muted.Render(a.t("dashboard.noData", nil))
	}
	return strings.Join(rows, "\n")
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render(a.t("dashboard.help", nil)))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	return a.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) formatValue(v *domain.Value) string {
	if v == nil {
		return "-"
	}
	f, ok := v.Float()
	if !ok {
		return v.Raw
	}
	return a.ports.Locale.FormatNumber(a.lc, f, domain.NumberOptions{MaxFractionDigits: domain.Digits(1)})
}

// daysBetween counts calendar days from the day of from to the day of to,
// both taken in from's location.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := domain.Midnight(from).Date()
	ty, tm, td := domain.Midnight(to.In(from.Location())).Date()
	// Day numbers in UTC are free of DST shifts.
	diff := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC))
	return int(diff / (24 * time.Hour))
}

func (a *App) t(key string, vars map[string]any) string {
	return a.ports.Translator.T(a.lc.Language, key, vars)
}

// sparkline draws the last width points of series scaled to their range.
func sparkline(series []domain.SeriesPoint, width int) string {
	if len(series) > width {
		series = series[len(series)-width:]
	}
	if len(series) == 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	values := make([]float64, len(series))
	for i, p := range series {
		f, ok := p.Value.Float()
		if !ok {
			values[i] = math.NaN()
			continue
		}
		values[i] = f
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}

	// Cells that are not numbers leave a gap.
	out := make([]rune, len(values))
	for i, f := range values {
		if math.IsNaN(f) {
			out[i] = ' '
			continue
		}
		idx := 0
		if hi > lo {
			idx = int((f - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

// Run starts the dashboard.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Locale returns the locale context the dashboard renders with.
func (a *App) Locale() domain.LocaleContext {
	return a.lc
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.status.SetWidth(width)
}
