package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/diffscale/internal/config"
	"github.com/san-kum/diffscale/internal/sim"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func ticks(n int) []tea.Msg {
	msgs := make([]tea.Msg, n)
	for i := range msgs {
		msgs[i] = tickMsg(time.Now())
	}
	return msgs
}

func newModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestModelStartsIdle(t *testing.T) {
	m := newModel(t)
	m = send(t, m, ticks(5)...)

	if m.Stepper().Phase() != sim.Idle {
		t.Errorf("expected idle, got %s", m.Stepper().Phase())
	}
	if m.Stepper().Index() != 0 {
		t.Errorf("ticks advanced an idle sweep to %d", m.Stepper().Index())
	}
	if !strings.Contains(m.View(), "READY") {
		t.Error("view should show READY while idle")
	}
}

func TestModelOneSamplePerTick(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key(" "))
	m = send(t, m, ticks(10)...)

	if m.Stepper().Index() != 10 {
		t.Errorf("expected index 10, got %d", m.Stepper().Index())
	}
	// Samples 0, 3, 6 and 9 refresh, so the view shows all ten.
	if m.shown.Len() != 10 {
		t.Errorf("expected 10 shown samples, got %d", m.shown.Len())
	}

	m = send(t, m, ticks(1)...)
	if m.shown.Len() != 10 {
		t.Errorf("sample 10 should not refresh the view, shown %d", m.shown.Len())
	}
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("view should show RUNNING")
	}
}

func TestModelLabelFollowsEverySample(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key(" "))
	m = send(t, m, ticks(11)...)

	// Sample 10 is not a refresh point, so the chart still shows ten.
	if m.shown.Len() != 10 {
		t.Fatalf("expected 10 shown samples, got %d", m.shown.Len())
	}
	want := m.Stepper().Radii()[10]
	if got := m.displayRadius(); got != want {
		t.Errorf("label radius = %v, want %v", got, want)
	}
	if !strings.Contains(m.View(), CurrentLabel(want)) {
		t.Errorf("view missing %q", CurrentLabel(want))
	}
}

func TestModelRunsToCompletion(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key(" "))
	m = send(t, m, ticks(150)...)

	if m.Stepper().Phase() != sim.Complete {
		t.Fatalf("expected complete, got %s", m.Stepper().Phase())
	}
	if m.shown.Len() != 101 {
		t.Errorf("last sample should always refresh, shown %d", m.shown.Len())
	}
	view := m.View()
	for _, want := range []string{"COMPLETE", "1000.00 nm", "1.67 min", "100.00x", "101"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key(" "))
	m = send(t, m, ticks(4)...)
	m = send(t, m, key(" "))
	m = send(t, m, ticks(4)...)

	if m.Stepper().Phase() != sim.Paused || m.Stepper().Index() != 4 {
		t.Fatalf("expected paused at 4, got %s at %d", m.Stepper().Phase(), m.Stepper().Index())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}

	m = send(t, m, key("r"))
	if m.Stepper().Phase() != sim.Idle || m.Stepper().Index() != 0 || m.shown.Len() != 0 {
		t.Errorf("reset left %s at %d with %d shown", m.Stepper().Phase(), m.Stepper().Index(), m.shown.Len())
	}
}

func TestModelChartToggle(t *testing.T) {
	m := newModel(t)
	if m.Config().Chart != config.ChartDiffusion {
		t.Fatalf("expected diffusion chart, got %s", m.Config().Chart)
	}
	if !strings.Contains(m.View(), "Diffusion Time (D = 1e-14 m²/s)") {
		t.Error("missing diffusion legend")
	}

	m = send(t, m, key("c"))
	if m.Config().Chart != config.ChartImprovement {
		t.Errorf("expected improvement chart, got %s", m.Config().Chart)
	}
	if !strings.Contains(m.View(), "Improvement vs 10.0 µm Baseline") {
		t.Error("missing improvement legend")
	}
}

func TestModelFormApplyWhileIdle(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key("e"))
	if !m.FormOpen() {
		t.Fatal("form did not open")
	}

	m = send(t, m, key("tab"))
	for i := 0; i < 4; i++ {
		m = send(t, m, key("backspace"))
	}
	m = send(t, m, key("500"), key("enter"))

	if m.Config().MaxSize != 500 {
		t.Errorf("expected max 500, got %v", m.Config().MaxSize)
	}
	radii := m.Stepper().Radii()
	if last := radii[len(radii)-1]; last < 499.999 || last > 500.001 {
		t.Errorf("idle apply should regenerate radii, last=%v", last)
	}

	m = send(t, m, key("esc"))
	if m.FormOpen() {
		t.Error("esc did not close the form")
	}
}

func TestModelFormRejectsAndRestores(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key("e"), key("tab"), key("9"), key("enter"))

	if m.Config().MaxSize != 1000 {
		t.Errorf("invalid input changed max to %v", m.Config().MaxSize)
	}
	msg, failed := m.form.Message()
	if !failed || !strings.Contains(msg, "between 10 and 10,000") {
		t.Errorf("expected range message, got %q (failed=%v)", msg, failed)
	}
	if m.form.buffers[fieldMaxSize] != "1000" {
		t.Errorf("field not restored, got %q", m.form.buffers[fieldMaxSize])
	}
}

func TestModelFormDefersWhileRunning(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key(" "))
	m = send(t, m, ticks(3)...)

	m = send(t, m, key("e"), key("tab"), key("tab"))
	for i := 0; i < 5; i++ {
		m = send(t, m, key("backspace"))
	}
	m = send(t, m, key("1e-12"), key("enter"), key("esc"))

	if !m.Stepper().Pending() {
		t.Fatal("change while running should wait for reset")
	}
	if m.Stepper().Config().DiffusionCoefficient != 1e-14 {
		t.Error("running sweep switched coefficient")
	}
	if !strings.Contains(m.View(), "apply on reset") {
		t.Error("view should mention the pending change")
	}

	m = send(t, m, key("r"))
	if m.Stepper().Config().DiffusionCoefficient != 1e-12 {
		t.Errorf("reset did not apply D, got %g", m.Stepper().Config().DiffusionCoefficient)
	}
}

func TestModelThemeAndHelp(t *testing.T) {
	m := newModel(t)
	m = send(t, m, key("t"))
	if m.Config().Theme != ThemeRetroGreen.Name {
		t.Errorf("expected retro theme, got %s", m.Config().Theme)
	}
	m = send(t, m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}
}

func TestModelResize(t *testing.T) {
	m := newModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	if m.canvas.Width != 110 {
		t.Errorf("expected canvas width 110, got %d", m.canvas.Width)
	}
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 50})
	if m.canvas.Width != 30 {
		t.Errorf("expected minimum canvas width 30, got %d", m.canvas.Width)
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(t)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestNewModelInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MinSize = 5000
	if _, err := NewModel(cfg, nil); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestRefreshPolicy(t *testing.T) {
	r := RefreshPolicy{Every: 3}
	tests := []struct {
		index int
		due   bool
	}{
		{0, true}, {1, false}, {2, false}, {3, true}, {99, true}, {100, true}, {98, false},
	}
	for _, tt := range tests {
		if got := r.Due(tt.index, 101); got != tt.due {
			t.Errorf("Due(%d) = %v, want %v", tt.index, got, tt.due)
		}
	}
	if !(RefreshPolicy{}).Due(7, 101) {
		t.Error("zero policy should refresh every sample")
	}
}
