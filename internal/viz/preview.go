package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/curve"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	statsWidth    = 38
)

type view int

const (
	viewChart view = iota
	viewDots
)

// Model is the Bubble Tea model for previewing a single run.
type Model struct {
	title        string
	series       *curve.Series
	metrics      map[string]float64
	metricKeys   []string
	width        int
	height       int
	view         view
	showHumidity bool
	cursor       int
	theme        int
	showHelp     bool
}

// NewModel builds a preview of series. metrics may be nil.
func NewModel(title string, series *curve.Series, metrics map[string]float64) Model {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		title:        title,
		series:       series,
		metrics:      metrics,
		metricKeys:   keys,
		width:        defaultWidth,
		height:       defaultHeight,
		showHumidity: series != nil && series.Variant.HasHumidity(),
	}
}

// WithTheme selects a theme by name.
func (m Model) WithTheme(name string) Model {
	m.theme = themeIndex(name)
	return m
}

func (m Model) Theme() Theme { return Themes[m.theme] }

func (m Model) Cursor() int { return m.cursor }

func (m Model) ShowHumidity() bool { return m.showHumidity }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.view == viewChart {
				m.view = viewDots
			} else {
				m.view = viewChart
			}
		case "h":
			if m.series != nil && m.series.Variant.HasHumidity() {
				m.showHumidity = !m.showHumidity
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "left":
			m.moveCursor(-1)
		case "right":
			m.moveCursor(1)
		case "home":
			m.cursor = 0
		case "end":
			m.moveCursor(m.samples())
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) samples() int {
	if m.series == nil {
		return 0
	}
	return m.series.Len()
}

func (m *Model) moveCursor(d int) {
	m.cursor += d
	if m.cursor >= m.samples() {
		m.cursor = m.samples() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) plotSize() (int, int) {
	w := m.width - statsWidth - 16
	h := m.height - 8
	return max(w, 20), max(h, 5)
}

func (m Model) View() string {
	theme := m.Theme()
	if m.samples() == 0 {
		return headerStyle(theme).Render(m.title) + "\nno samples\n"
	}

	w, h := m.plotSize()
	var plot string
	switch m.view {
	case viewDots:
		c := NewCanvas(w/2, h/2)
		col := c.Plot(m.series.Temperatures())
		c.Column(col(m.cursor))
		plot = lipgloss.NewStyle().Foreground(theme.Primary).Render(c.String())
	default:
		opts := []asciigraph.Option{
			asciigraph.Height(h),
			asciigraph.Width(w),
			asciigraph.Precision(1),
			asciigraph.Caption(m.caption()),
		}
		if hum := m.series.Humidities(); m.showHumidity && hum != nil {
			plot = asciigraph.PlotMany([][]float64{m.series.Temperatures(), hum},
				append(opts, asciigraph.SeriesColors(theme.Temperature, theme.Humidity))...)
		} else {
			plot = asciigraph.Plot(m.series.Temperatures(),
				append(opts, asciigraph.SeriesColors(theme.Temperature))...)
		}
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(plot), statsStyle.Render(m.stats(theme)))
	if m.showHelp {
		return main + "\n" + helpText
	}
	return main
}

func (m Model) caption() string {
	if m.showHumidity {
		return "temperature (°C) / humidity (%)"
	}
	return "temperature (°C)"
}

func (m Model) stats(theme Theme) string {
	value := valueStyle(theme)
	s := m.series.Samples[m.cursor]

	var b strings.Builder
	b.WriteString(headerStyle(theme).Render(strings.ToUpper(m.title)) + "\n")
	b.WriteString(labelStyle.Render("Variant") + value.Render(string(m.series.Variant)) + "\n")
	b.WriteString(labelStyle.Render("Sample") + value.Render(fmt.Sprintf("%d/%d", m.cursor+1, m.samples())) + "\n")
	b.WriteString(labelStyle.Render("Time") + value.Render(clock.FormatClockTime(s.Time)) + "\n")
	b.WriteString(labelStyle.Render("Temp") + value.Render(fmt.Sprintf("%.1f °C", s.Temperature)) + "\n")
	if m.series.Variant.HasHumidity() {
		b.WriteString(labelStyle.Render("Humidity") + value.Render(fmt.Sprintf("%.1f %%", s.Humidity)) + "\n")
	}
	b.WriteString("\n" + SparklineChart(m.series.Temperatures(), statsWidth-8) + "\n\n")

	if len(m.metricKeys) > 0 {
		b.WriteString("METRICS\n")
		for _, k := range m.metricKeys {
			b.WriteString(labelStyle.Render(k) + value.Render(fmt.Sprintf("%.2f", m.metrics[k])) + "\n")
		}
	}

	b.WriteString(helpStyle.Render(Separator(statsWidth-8) + "\nTAB:View H:Humidity T:Theme\n←→:Cursor ?:Help Q:Quit"))
	return b.String()
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Tab        - Chart / dots view      ║
║  H          - Toggle humidity        ║
║  T          - Cycle themes           ║
║  Left/Right - Move sample cursor     ║
║  Home/End   - First / last sample    ║
║  ?          - Toggle this help       ║
║  Q          - Quit                   ║
╚══════════════════════════════════════╝
`

// Run starts the preview in the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
