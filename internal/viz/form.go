package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/diffscale/internal/config"
)

type formField int

const (
	fieldMinSize formField = iota
	fieldMaxSize
	fieldDiffusion
	fieldBaseline
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldMinSize:   "Min size (nm)",
	fieldMaxSize:   "Max size (nm)",
	fieldDiffusion: "D (m²/s)",
	fieldBaseline:  "Baseline (nm)",
}

// Form edits the sweep settings. Invalid input is rejected with a message
// and the field goes back to its previous value.
type Form struct {
	cursor  formField
	buffers [fieldCount]string
	message string
	failed  bool
}

func NewForm(cfg *config.Config) *Form {
	f := &Form{}
	for i := fieldMinSize; i < fieldCount; i++ {
		f.buffers[i] = formatField(cfg, i)
	}
	return f
}

// Message is the result of the last apply and whether it was rejected.
func (f *Form) Message() (string, bool) { return f.message, f.failed }

// Key handles one key press. applied reports that cfg was changed, closed
// that the form should be dismissed.
func (f *Form) Key(msg tea.KeyMsg, cfg *config.Config) (applied, closed bool) {
	switch msg.String() {
	case "esc":
		return false, true
	case "up", "shift+tab":
		f.cursor = (f.cursor + fieldCount - 1) % fieldCount
	case "down", "tab":
		f.cursor = (f.cursor + 1) % fieldCount
	case "enter":
		return f.apply(cfg), false
	case "backspace":
		if buf := f.buffers[f.cursor]; len(buf) > 0 {
			f.buffers[f.cursor] = buf[:len(buf)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if strings.ContainsRune("0123456789.eE+-", r) {
					f.buffers[f.cursor] += string(r)
				}
			}
		}
	}
	return false, false
}

func (f *Form) apply(cfg *config.Config) bool {
	field := f.cursor
	v, err := strconv.ParseFloat(strings.TrimSpace(f.buffers[field]), 64)
	if err == nil {
		err = validateField(cfg, field, v)
	} else {
		err = fmt.Errorf("%s: not a number", fieldLabels[field])
	}
	if err != nil {
		f.message, f.failed = err.Error(), true
		f.buffers[field] = formatField(cfg, field)
		return false
	}

	switch field {
	case fieldMinSize:
		cfg.MinSize = v
	case fieldMaxSize:
		cfg.MaxSize = v
	case fieldDiffusion:
		cfg.DiffusionCoefficient = v
	case fieldBaseline:
		cfg.BaselineSize = v
	}
	f.buffers[field] = formatField(cfg, field)
	f.message, f.failed = fmt.Sprintf("%s set to %s", fieldLabels[field], f.buffers[field]), false
	return true
}

func validateField(cfg *config.Config, field formField, v float64) error {
	switch field {
	case fieldMinSize:
		return config.ValidateMinSize(v, cfg.MaxSize)
	case fieldMaxSize:
		if err := config.ValidateMaxSize(v); err != nil {
			return err
		}
		if v <= cfg.MinSize {
			return &config.FieldError{Field: "max_size", Message: "must be greater than min size", Err: config.ErrOutOfRange}
		}
	case fieldDiffusion:
		return config.ValidateDiffusionCoefficient(v)
	case fieldBaseline:
		return config.ValidateBaselineChoice(v)
	}
	return nil
}

func formatField(cfg *config.Config, field formField) string {
	var v float64
	switch field {
	case fieldMinSize:
		v = cfg.MinSize
	case fieldMaxSize:
		v = cfg.MaxSize
	case fieldDiffusion:
		v = cfg.DiffusionCoefficient
	case fieldBaseline:
		v = cfg.BaselineSize
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f *Form) view(s styles) string {
	var b strings.Builder
	b.WriteString(s.title.Render("SETTINGS") + "\n\n")
	for i := fieldMinSize; i < fieldCount; i++ {
		value := f.buffers[i]
		if i == f.cursor {
			b.WriteString(s.selected.Render(fmt.Sprintf("▸ %-14s %s_", fieldLabels[i], value)) + "\n")
		} else {
			b.WriteString("  " + s.label.Render(fieldLabels[i]) + " " + s.value.Render(value) + "\n")
		}
	}
	if f.message != "" {
		if f.failed {
			b.WriteString("\n" + s.errorLine.Render(f.message) + "\n")
		} else {
			b.WriteString("\n" + s.running.Render(f.message) + "\n")
		}
	}
	b.WriteString("\n" + s.keyHints("↑↓", "field", "enter", "apply", "esc", "close"))
	return b.String()
}
