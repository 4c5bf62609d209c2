package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/tempsynth/internal/batch"
	"github.com/san-kum/tempsynth/internal/clock"
	"github.com/san-kum/tempsynth/internal/config"
	"github.com/san-kum/tempsynth/internal/curve"
	"github.com/san-kum/tempsynth/internal/experiment"
	"github.com/san-kum/tempsynth/internal/export"
	"github.com/san-kum/tempsynth/internal/expr"
	"github.com/san-kum/tempsynth/internal/log"
	"github.com/san-kum/tempsynth/internal/segment"
	"github.com/san-kum/tempsynth/internal/storage"
	"github.com/san-kum/tempsynth/internal/viz"
)

var (
	dataDir string
	debug   bool

	title      string
	date       string
	outputDir  string
	variant    string
	interval   float64
	divisions  int
	seed       int64
	decimalSep string
	configFile string
	preset     string
	preview    bool

	fromDate string
	toDate   string
	workers  int

	outFile string
	theme   string
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	env := config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:           "tempsynth",
		Short:         "piecewise temperature and humidity series synthesizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", env.Debug, "debug logging")

	runCmd := &cobra.Command{
		Use:   `run ["HH:MM HH:MM equation noise" ...]`,
		Short: "synthesize a series from segments",
		Long: `Synthesize a series from piecewise segments. Each argument is one
segment: start time, end time, an equation in t (decimal hours) and a noise
bound. Without arguments the default rise, plateau and fall day is used.`,
		Example: `  tempsynth run "08:00 12:00 10*t-55 2" "12:00 16:00 65 2" "16:00 20:00 -5*t+145 2"`,
		RunE:    runSynthesis,
	}
	runCmd.Flags().StringVar(&title, "title", "", "run title (default: current time)")
	runCmd.Flags().StringVar(&date, "date", "", "base date of the first sample (default: today)")
	runCmd.Flags().StringVar(&outputDir, "output", config.DefaultOutputDir, "artifact directory, empty to skip artifacts")
	runCmd.Flags().StringVar(&variant, "variant", string(curve.Dual), "dual (temperature and humidity) or single")
	runCmd.Flags().Float64Var(&interval, "interval", 0, "sampling interval in minutes")
	runCmd.Flags().IntVar(&divisions, "divisions", 0, "samples per segment")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: from clock)")
	runCmd.Flags().StringVar(&decimalSep, "decimal", config.DefaultDecimalSeparator, "decimal separator for noise input and csv output")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&preview, "preview", false, "open the preview after the run")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "synthesize one randomized day profile per date",
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&fromDate, "from", "", "first date (YYYY-MM-DD)")
	batchCmd.Flags().StringVar(&toDate, "to", "", "last date (YYYY-MM-DD, default: --from)")
	batchCmd.Flags().StringVar(&outputDir, "output", config.DefaultOutputDir, "artifact directory, empty to skip artifacts")
	batchCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: from clock)")
	batchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	batchCmd.Flags().IntVar(&workers, "workers", 1, "days synthesized concurrently")
	_ = batchCmd.MarkFlagRequired("from")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [run_id]",
		Short: "open a run in the interactive preview",
		Args:  cobra.ExactArgs(1),
		RunE:  previewRun,
	}
	previewCmd.Flags().StringVar(&theme, "theme", viz.ThemeDefault.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	exportCSVCmd.Flags().StringVar(&decimalSep, "decimal", config.DefaultDecimalSeparator, "decimal separator")

	exportXLSXCmd := &cobra.Command{
		Use:   "export-xlsx [run_id]",
		Short: "export run samples as an excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  exportXLSX,
	}
	exportXLSXCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: <title>.xlsx)")

	evalCmd := &cobra.Command{
		Use:   "eval [equation] [HH:MM]",
		Short: "evaluate an equation at a time of day",
		Long:  "Evaluate an equation in t (decimal hours) at a clock time.\nFunctions: " + strings.Join(expr.FunctionNames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE:  evalEquation,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%s (%s)\n", titleStyle.Render(name), p.Variant)
				for _, d := range p.Descriptors() {
					fmt.Printf("  %s\n", d)
				}
			}
		},
	}

	rootCmd.AddCommand(runCmd, batchCmd, listCmd, plotCmd, previewCmd, exportCSVCmd, exportXLSXCmd, evalCmd, presetsCmd)

	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig applies, in order: defaults, preset, config file, flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.Title = title
	}
	if flags.Changed("date") {
		cfg.Date = date
	}
	if flags.Changed("output") || configFile == "" {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("variant") {
		v, err := curve.ParseVariant(variant)
		if err != nil {
			return nil, err
		}
		cfg.Variant = v
	}
	if flags.Changed("interval") {
		cfg.IntervalMinutes = interval
		cfg.Divisions = 0
	}
	if flags.Changed("divisions") {
		cfg.Divisions = divisions
		if !flags.Changed("interval") {
			cfg.IntervalMinutes = 0
		}
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("decimal") {
		cfg.DecimalSeparator = decimalSep
	}
	return cfg, nil
}

// segmentArgs parses positional segment arguments. Noise bounds are read
// later with the configured decimal separator.
func segmentArgs(args []string) ([]curve.Descriptor, error) {
	ds := make([]curve.Descriptor, 0, len(args))
	for i, arg := range args {
		d, err := segment.ParseArg(arg)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func runSynthesis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		ds, err := segmentArgs(args)
		if err != nil {
			return err
		}
		cfg.SetDescriptors(ds)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	log.Debugw("synthesizing", "segments", len(cfg.Segments), "variant", cfg.Variant)
	start := time.Now()

	res, err := exp.Run()
	if err != nil {
		return err
	}
	if !res.Series.Increasing() {
		log.Warnw("segments overlap; sample times are not increasing", "title", res.Title)
	}

	runID, artifacts, err := exp.Persist(st, res)
	if err != nil {
		return err
	}
	log.Infow("run saved", "run", runID, "samples", res.Series.Len(), "elapsed", time.Since(start))

	fmt.Println(titleStyle.Render(res.Title))
	printField("run id", runID)
	printField("date", res.Date)
	printField("seed", strconv.FormatInt(res.Seed, 10))
	printField("samples", strconv.Itoa(res.Series.Len()))
	for _, a := range artifacts {
		printField("artifact", a)
	}
	fmt.Println("\nmetrics:")
	printMetrics(res.Metrics)

	if preview {
		return viz.Run(viz.NewModel(res.Title, res.Series, res.Metrics))
	}

	fmt.Println()
	fmt.Println(export.ASCIIChart(res.Series, 80, 12, "temperature vs time"))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("output") || configFile == "" {
		cfg.OutputDir = outputDir
	}

	from, err := time.Parse(cfg.Calendar.DateLayout, fromDate)
	if err != nil {
		return &curve.FormatError{Input: fromDate, Reason: "invalid --from date", Err: err}
	}
	to := from
	if toDate != "" {
		if to, err = time.Parse(cfg.Calendar.DateLayout, toDate); err != nil {
			return &curve.FormatError{Input: toDate, Reason: "invalid --to date", Err: err}
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	r := &batch.Runner{Base: cfg, Store: st, Ranges: batch.DefaultRanges(), Workers: workers}
	if seed != 0 {
		r.Rand = rand.New(rand.NewSource(seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := r.Run(ctx, from, to)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tRUN\tSTATUS")
	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", res.Date, res.RunID, status)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDATE\tVARIANT\tSEGMENTS\tSEED\tCREATED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Title,
			run.Date,
			run.Variant,
			len(run.Segments),
			run.Seed,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *curve.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if series.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("title: %s\n", meta.Title)
	fmt.Printf("samples: %d\n\n", series.Len())

	caption := "temperature vs time"
	if series.Variant.HasHumidity() {
		caption = "temperature and humidity vs time"
	}
	fmt.Println(export.ASCIIChart(series, 80, 15, caption))
	return nil
}

func previewRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(meta.Title, series, meta.Metrics).WithTheme(theme))
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	rec, err := experiment.RebuildRecord(meta, series)
	if err != nil {
		return err
	}

	opts := export.Options{DecimalSeparator: decimalSep}
	if outFile == "" {
		return export.WriteCSV(os.Stdout, rec, opts)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteCSV(f, rec, opts); err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", rec.Len(), outFile)
	return nil
}

func exportXLSX(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	rec, err := experiment.RebuildRecord(meta, series)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = storage.SanitizeFilename(meta.Title) + ".xlsx"
	}
	if err := export.SaveXLSX(path, rec, ""); err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", rec.Len(), path)
	return nil
}

func evalEquation(cmd *cobra.Command, args []string) error {
	t, err := clock.ParseClockTime(args[1])
	if err != nil {
		return err
	}
	v, err := expr.Evaluate(args[0], float64(t))
	if err != nil {
		return err
	}
	fmt.Printf("%s at %s (t=%s) = %s\n", args[0], clock.FormatClockTime(t),
		strconv.FormatFloat(float64(t), 'f', -1, 64), strconv.FormatFloat(v, 'f', -1, 64))
	return nil
}

func printField(label, value string) {
	fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.2f\n", name, m[name])
	}
}
