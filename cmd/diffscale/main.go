package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/diffscale/internal/config"
	"github.com/san-kum/diffscale/internal/export"
	"github.com/san-kum/diffscale/internal/physics"
	"github.com/san-kum/diffscale/internal/sim"
	"github.com/san-kum/diffscale/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	minSize    float64
	maxSize    float64
	diffusion  float64
	baseline   float64
	logLevel   string
	// Presentation
	chartMode string
	theme     string
	frameRate int
	// Output
	every          int
	plotWidth      int
	plotHeight     int
	chartWidth     int
	chartHeight    int
	snapshotWidth  int
	snapshotHeight int
	snapshotAt     int
	scale          float64
	force          bool
)

var logger *log.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "diffscale",
		Short: "diffusion time scaling (t = L²/D) visualizer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "diffscale", Level: level})
			return nil
		},
		RunE:         runLive,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset sweep")
	pf.Float64Var(&minSize, "min", config.DefaultMinSize, "minimum particle radius (nm)")
	pf.Float64Var(&maxSize, "max", config.DefaultMaxSize, "maximum particle radius (nm)")
	pf.Float64Var(&diffusion, "diffusion", config.DefaultDiffusionCoefficient, "diffusion coefficient (m²/s)")
	pf.Float64Var(&baseline, "baseline", config.DefaultBaselineSize, "baseline particle radius (nm)")
	pf.StringVar(&chartMode, "chart", config.ChartDiffusion, "chart mode (diffusion|improvement)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), "|")+")")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the sweep with the interactive visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the sweep headless and print a summary table",
		RunE:  runSweep,
	}
	runCmd.Flags().IntVar(&every, "every", 10, "print every nth sample")
	runCmd.Flags().IntVar(&frameRate, "fps", 0, "samples per second (0 = as fast as possible)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the sweep as an ASCII log-log chart",
		RunE:  plotSweep,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "chart height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "export the sweep to CSV (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "export the sweep to JSON (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	chartCmd := &cobra.Command{
		Use:   "chart <file.png|file.svg>",
		Short: "render the sweep chart to an image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportChart,
	}
	chartCmd.Flags().IntVar(&chartWidth, "width", 1000, "image width (px)")
	chartCmd.Flags().IntVar(&chartHeight, "height", 600, "image height (px)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot <file.svg>",
		Short: "save the particle comparison at one sample as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotAt, "at", physics.RadiusSteps, "sample index")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 80, "canvas width (cells)")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 20, "canvas height (cells)")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 4, "pixels per braille dot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, runCmd, plotCmd, exportCSVCmd, exportJSONCmd, chartCmd, snapshotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies, in order, the defaults, --preset, --config and any
// flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	// Config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("min") {
		cfg.MinSize = minSize
	}
	if flags.Changed("max") {
		cfg.MaxSize = maxSize
	}
	if flags.Changed("diffusion") {
		cfg.DiffusionCoefficient = diffusion
	}
	if flags.Changed("baseline") {
		cfg.BaselineSize = baseline
	}
	if flags.Changed("chart") {
		cfg.Chart = chartMode
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") && frameRate > 0 {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateTheme(cfg.Theme); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("config", "min", cfg.MinSize, "max", cfg.MaxSize, "D", cfg.DiffusionCoefficient, "baseline", cfg.BaselineSize)
	return cfg, nil
}

// validateTheme rejects names viz has no theme for.
func validateTheme(name string) error {
	if slices.Contains(viz.ThemeNames(), name) {
		return nil
	}
	return &config.FieldError{
		Field:   "theme",
		Message: fmt.Sprintf("%q is not one of %s", name, strings.Join(viz.ThemeNames(), ", ")),
		Err:     config.ErrUnknownTheme,
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to a file when asked.
	var tuiLogger *log.Logger
	if path := os.Getenv("DIFFSCALE_LOG"); path != "" {
		f, err := tea.LogToFile(path, "diffscale")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		tuiLogger = log.NewWithOptions(f, log.Options{Prefix: "diffscale", ReportTimestamp: true, Level: logger.GetLevel()})
	}

	return viz.Run(cfg, tuiLogger)
}

// sweep runs a full sweep headless and returns the stepper.
func sweep(cmd *cobra.Command, cfg *config.Config) (*sim.Stepper, error) {
	s, err := sim.New(cfg.Sweep())
	if err != nil {
		return nil, err
	}
	s.AddObserver(sim.ObserverFunc(func(sample sim.Sample) {
		logger.Debug("sample", "index", sample.Index, "radius", sample.Radius, "time", sample.DiffusionTime)
	}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var ticker sim.Ticker = sim.Immediate()
	if cmd.Flags().Changed("fps") && frameRate > 0 {
		ticker = sim.NewFrameTicker(frameRate)
	}

	if _, err := s.Run(ctx, ticker); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("sweep interrupted", "points", s.Index())
			return s, nil
		}
		return nil, err
	}
	logger.Info("sweep complete", "points", s.Index())
	return s, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sweep(cmd, cfg)
	if err != nil {
		return err
	}

	sc := s.Config()
	fmt.Printf("sweep: %g - %g nm, D = %s m²/s\n", sc.MinSize, sc.MaxSize, viz.FormatCoefficient(sc.DiffusionCoefficient))
	fmt.Printf("baseline: %s diffusion time %s\n\n", viz.BaselineLabel(sc.BaselineSize), physics.FormatTime(sc.BaselineTime()))

	series := s.Series()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tRADIUS\tTIME\tIMPROVEMENT")
	for i := 0; i < series.Len(); i++ {
		if every > 1 && i%every != 0 && i != series.Len()-1 {
			continue
		}
		sample := series.At(i)
		fmt.Fprintf(w, "%d\t%.2f nm\t%s\t%.2fx\n", i, sample.Radius, physics.FormatTime(sample.DiffusionTime), sample.Improvement)
	}
	return w.Flush()
}

func plotSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sweep(cmd, cfg)
	if err != nil {
		return err
	}

	sc := s.Config()
	fmt.Println(viz.RenderChart(s.Series(), cfg.Chart, sc.DiffusionCoefficient, sc.BaselineSize, plotWidth, plotHeight))
	return nil
}

// output returns stdout, or the named file when args has one.
func output(args []string) (io.WriteCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(args[0])
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sweep(cmd, cfg)
	if err != nil {
		return err
	}

	out, err := output(args)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := export.WriteCSV(out, s.Series()); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sweep(cmd, cfg)
	if err != nil {
		return err
	}

	out, err := output(args)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := export.WriteJSON(out, export.NewReport(s.Config(), s.Series(), s.Len())); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

func exportChart(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := export.FormatForPath(path)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sweep(cmd, cfg)
	if err != nil {
		return err
	}

	opts := export.ChartOptions{
		Mode:   cfg.Chart,
		Format: format,
		Width:  chartWidth,
		Height: chartHeight,
		Theme:  viz.GetTheme(cfg.Theme),
	}
	if err := writeChartFile(path, s.Series(), s.Config(), opts); err != nil {
		return err
	}
	logger.Info("chart written", "path", path, "mode", cfg.Chart)
	return nil
}

// writeChartFile renders in memory first so a failed render leaves no file.
func writeChartFile(path string, series sim.Series, cfg sim.Config, opts export.ChartOptions) error {
	var buf bytes.Buffer
	if err := export.WriteChart(&buf, series, cfg, opts); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func checkSnapshotSize(width, height int, scale float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("snapshot size %dx%d: width and height must be positive", width, height)
	}
	if scale <= 0 {
		return fmt.Errorf("snapshot scale %g: must be positive", scale)
	}
	return nil
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	if err := checkSnapshotSize(snapshotWidth, snapshotHeight, scale); err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	radii := physics.GenerateRadii(cfg.MinSize, cfg.MaxSize)
	if snapshotAt < 0 || snapshotAt >= len(radii) {
		return fmt.Errorf("--at %d out of range [0, %d]", snapshotAt, len(radii)-1)
	}

	svg := export.Snapshot(cfg.Sweep(), radii[snapshotAt], viz.GetTheme(cfg.Theme), snapshotWidth, snapshotHeight, scale)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", args[0], "radius", radii[snapshotAt])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRANGE\tD\tBASELINE\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%g - %g nm\t%s m²/s\t%g nm\t%s\n",
			name, p.MinSize, p.MaxSize, viz.FormatCoefficient(p.DiffusionCoefficient), p.BaselineSize, p.Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "diffscale.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
