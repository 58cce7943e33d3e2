package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/diffscale/internal/config"
	"github.com/san-kum/diffscale/internal/export"
	"github.com/san-kum/diffscale/internal/sim"
)

func TestValidateTheme(t *testing.T) {
	for _, name := range []string{"classic", "retro", "minimal"} {
		if err := validateTheme(name); err != nil {
			t.Errorf("theme %s rejected: %v", name, err)
		}
	}

	err := validateTheme("bogus")
	if !errors.Is(err, config.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	var fe *config.FieldError
	if !errors.As(err, &fe) || fe.Field != "theme" {
		t.Errorf("expected theme field error, got %v", err)
	}
}

func TestCheckSnapshotSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		scale         float64
		ok            bool
	}{
		{"defaults", 80, 20, 4, true},
		{"negative width", -1, 20, 4, false},
		{"negative height", 80, -1, 4, false},
		{"zero width", 0, 20, 4, false},
		{"zero scale", 80, 20, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSnapshotSize(tt.width, tt.height, tt.scale)
			if (err == nil) != tt.ok {
				t.Errorf("checkSnapshotSize(%d, %d, %g) = %v", tt.width, tt.height, tt.scale, err)
			}
		})
	}
}

func TestWriteChartFile(t *testing.T) {
	cfg := config.DefaultConfig().Sweep()
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	s.Tick()

	dir := t.TempDir()
	failed := filepath.Join(dir, "short.png")
	if err := writeChartFile(failed, s.Series(), cfg, export.DefaultChartOptions()); !errors.Is(err, export.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := os.Stat(failed); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("failed render left a file behind: %v", err)
	}

	for s.Running() {
		s.Tick()
	}
	written := filepath.Join(dir, "sweep.png")
	if err := writeChartFile(written, s.Series(), cfg, export.DefaultChartOptions()); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 8 || string(data[:4]) != "\x89PNG" {
		t.Error("chart file is not a PNG")
	}
}
