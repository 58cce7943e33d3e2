package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/diffscale/internal/config"
	"github.com/san-kum/diffscale/internal/physics"
	"github.com/san-kum/diffscale/internal/sim"
)

const (
	canvasWidth  = 56
	canvasHeight = 14
	chartHeight  = 10
	statsWidth   = 44
)

type tickMsg time.Time

// Model is the interactive sweep: a stepper advanced once per frame, the
// particle comparison, the chart and the settings form.
type Model struct {
	cfg        *config.Config
	stepper    *sim.Stepper
	particles  *Particles
	canvas     *Canvas
	refresh    RefreshPolicy
	theme      Theme
	styles     styles
	shown      sim.Series
	form       *Form
	showHelp   bool
	chartWidth int
	logger     *log.Logger
}

// NewModel builds an idle model. cfg is copied; logger may be nil.
func NewModel(cfg *config.Config, logger *log.Logger) (Model, error) {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	stepper, err := sim.New(cfg.Sweep())
	if err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	theme := GetTheme(cfg.Theme)
	m := Model{
		cfg:        cfg,
		stepper:    stepper,
		particles:  NewParticles(cfg.FPS, theme),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		refresh:    RefreshPolicy{Every: cfg.RefreshEvery},
		theme:      theme,
		styles:     newStyles(theme),
		chartWidth: canvasWidth + statsWidth - 12,
		logger:     logger,
	}
	m.particles.Fit(m.canvas)
	m.refreshView()
	m.particles.Snap()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles input events and steps the sweep.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			m.formKey(msg)
			return m, nil
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ":
			m.stepper.Toggle()
			m.logger.Debug("toggle", "phase", m.stepper.Phase(), "index", m.stepper.Index())
		case "r":
			m.reset()
		case "c":
			if m.cfg.Chart == config.ChartDiffusion {
				m.cfg.Chart = config.ChartImprovement
			} else {
				m.cfg.Chart = config.ChartDiffusion
			}
		case "e":
			m.form = NewForm(m.cfg)
		case "t":
			m.setTheme(NextTheme(m.theme.Name))
		case "?":
			m.showHelp = !m.showHelp
		}
	case tickMsg:
		m.advance()
		return m, m.tick()
	}
	return m, nil
}

// advance runs one frame: at most one sample, then the animation.
func (m *Model) advance() {
	if sample, ok := m.stepper.Tick(); ok {
		if m.refresh.Due(sample.Index, m.stepper.Len()) {
			m.refreshView()
		}
		m.particles.Advance()
		if m.stepper.Phase() == sim.Complete {
			m.logger.Info("sweep complete", "points", m.stepper.Index())
		}
	}
	m.particles.Ease()
}

// refreshView publishes the stepper's series to the chart and stats and
// retargets the current particle.
func (m *Model) refreshView() {
	m.shown = m.stepper.Series()
	sweep := m.stepper.Config()
	radius := m.stepper.CurrentRadius()
	if latest, ok := m.stepper.Latest(); ok {
		radius = latest.Radius
	}
	m.particles.Update(radius, sweep.BaselineSize, sweep.DiffusionCoefficient)
}

func (m *Model) reset() {
	m.stepper.Reset()
	m.particles.ResetProgress()
	m.refreshView()
	m.logger.Debug("reset", "min", m.stepper.Config().MinSize, "max", m.stepper.Config().MaxSize)
}

func (m *Model) formKey(msg tea.KeyMsg) {
	applied, closed := m.form.Key(msg, m.cfg)
	if closed {
		m.form = nil
		return
	}
	if !applied {
		if text, failed := m.form.Message(); failed {
			m.logger.Warn("rejected setting", "err", text)
		}
		return
	}
	if err := m.stepper.SetConfig(m.cfg.Sweep()); err != nil {
		m.logger.Error("apply settings", "err", err)
		return
	}
	if !m.stepper.Running() {
		m.particles.ResetProgress()
		m.refreshView()
	}
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.cfg.Theme = t.Name
	m.styles = newStyles(t)
	m.particles.SetTheme(t)
}

func (m *Model) resize(width int) {
	w := clamp(width-statsWidth-6, 30, 120)
	if w != m.canvas.Width {
		m.canvas = NewCanvas(w, canvasHeight)
		m.particles.Fit(m.canvas)
	}
	m.chartWidth = clamp(width-14, 30, 160)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Stepper exposes the underlying stepper, mainly for tests.
func (m Model) Stepper() *sim.Stepper { return m.stepper }

// Config returns the live configuration.
func (m Model) Config() *config.Config { return m.cfg }

// FormOpen reports whether the settings form is showing.
func (m Model) FormOpen() bool { return m.form != nil }

// View renders the TUI interface.
func (m Model) View() string {
	s := m.styles
	sweep := m.stepper.Config()

	var header strings.Builder
	header.WriteString(s.title.Render("DIFFUSION TIME SCALING  t = L²/D") + "   " + m.status() + "\n")
	progress := float64(m.stepper.Index()) / float64(m.stepper.Len())
	header.WriteString(fg(m.theme.Accent).Render(ProgressBar(progress, 30)) +
		fmt.Sprintf(" %d/%d", m.stepper.Index(), m.stepper.Len()) + "\n")

	m.particles.Draw(m.canvas, m.theme, m.stepper.Running())
	labels := m.particles.Labels(m.canvas, sweep.BaselineSize, m.displayRadius())
	canvasView := s.panel.Render(s.value.Render(labels) + "\n" + strings.TrimRight(m.canvas.Render(), "\n"))

	var side string
	if m.form != nil {
		side = s.stats.Render(m.form.view(s))
	} else {
		side = s.stats.Render(m.statsView())
	}

	chartColor := m.theme.Diffusion
	if m.cfg.Chart == config.ChartImprovement {
		chartColor = m.theme.Improvement
	}
	chart := RenderChart(m.shown, m.cfg.Chart, sweep.DiffusionCoefficient, sweep.BaselineSize, m.chartWidth, chartHeight)
	chartView := s.panel.Render(fg(chartColor).Render(strings.TrimRight(chart, "\n")))

	help := s.help.Render(s.keyHints("space", "start/pause", "r", "reset", "c", "chart", "e", "settings", "t", "theme", "?", "help", "q", "quit"))

	body := header.String() + lipgloss.JoinHorizontal(lipgloss.Top, canvasView, side) + "\n" + chartView + "\n" + help
	if m.showHelp {
		return helpBox + "\n\n" + body
	}
	return body
}

func (m Model) status() string {
	switch m.stepper.Phase() {
	case sim.Running:
		return m.styles.running.Render("RUNNING")
	case sim.Paused:
		return m.styles.paused.Render("PAUSED")
	case sim.Complete:
		return m.styles.title.Render("COMPLETE")
	default:
		return m.styles.label.UnsetWidth().Render("READY")
	}
}

// displayRadius is the radius shown on the current particle's label. It
// follows every sample, not just the refreshed ones.
func (m Model) displayRadius() float64 {
	if latest, ok := m.stepper.Latest(); ok {
		return latest.Radius
	}
	return m.stepper.CurrentRadius()
}

func (m Model) statsView() string {
	s := m.styles
	sweep := m.stepper.Config()

	row := func(label, value string) string {
		return s.label.Render(label) + s.value.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(s.title.Render("STATS") + "\n\n")
	if n := m.shown.Len(); n > 0 {
		last := m.shown.At(n - 1)
		b.WriteString(row("Current Size", fmt.Sprintf("%.2f nm", last.Radius)))
		b.WriteString(row("Diffusion", physics.FormatTime(last.DiffusionTime)))
		b.WriteString(row("Improvement", fmt.Sprintf("%.2fx", last.Improvement)))
	} else {
		b.WriteString(row("Current Size", "-"))
		b.WriteString(row("Diffusion", "-"))
		b.WriteString(row("Improvement", "-"))
	}
	b.WriteString(row("Data Points", fmt.Sprintf("%d", m.shown.Len())))

	b.WriteString("\n" + s.title.Render("SETTINGS") + "\n\n")
	b.WriteString(row("Range", fmt.Sprintf("%g - %g nm", sweep.MinSize, sweep.MaxSize)))
	b.WriteString(row("D", FormatCoefficient(sweep.DiffusionCoefficient)+" m²/s"))
	b.WriteString(row("Baseline", fmt.Sprintf("%.1f µm", sweep.BaselineSize/1000)))
	b.WriteString(row("Baseline t", physics.FormatTime(physics.DiffusionTime(sweep.BaselineSize, sweep.DiffusionCoefficient))))
	b.WriteString(row("Chart", m.cfg.Chart))
	if m.stepper.Pending() {
		b.WriteString("\n" + s.paused.Render("new settings apply on reset") + "\n")
	}
	return b.String()
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

const helpBox = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start/Pause sweep        ║
║  R        - Reset sweep              ║
║  C        - Toggle time/improvement  ║
║  E        - Edit settings            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the interactive program and blocks until it exits.
func Run(cfg *config.Config, logger *log.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
