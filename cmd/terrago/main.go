package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/esmtools/terrago/internal/config"
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/experiment"
	"github.com/esmtools/terrago/internal/storage"
	"github.com/esmtools/terrago/internal/vars"
	"github.com/esmtools/terrago/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	duration   float64
	dt         float64
	columns    int
	levels     int
	integrator string
	noStore    bool
	plotWidth  int
	plotHeight int
	watchVars  []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "terrago",
		Short: "column land-surface simulation toolkit",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".terrago", "run data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&noStore, "no-store", false, "skip writing the run to the data directory")
	runCmd.Flags().IntVar(&plotWidth, "plot-width", 64, "width of result plots")
	runCmd.Flags().IntVar(&plotHeight, "plot-height", 8, "height of result plots")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step a simulation in an interactive terminal view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringSliceVar(&watchVars, "watch", nil, "variables to watch (defaults to the record list)")

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "print the merged variable registry of a configuration",
		RunE:  describeRegistry,
	}
	addConfigFlags(describeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "terrago.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, loadBase()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a scenario preset")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "plot-width", 64, "width of result plots")
	plotCmd.Flags().IntVar(&plotHeight, "plot-height", 8, "height of result plots")

	rootCmd.AddCommand(runCmd, liveCmd, describeCmd, presetsCmd, initCmd, runsCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset name")
	cmd.Flags().Float64Var(&duration, "time", 0, "override run duration [s]")
	cmd.Flags().Float64Var(&dt, "dt", 0, "override step length [s]")
	cmd.Flags().IntVar(&columns, "columns", 0, "override grid columns")
	cmd.Flags().IntVar(&levels, "levels", 0, "override grid levels")
	cmd.Flags().StringVar(&integrator, "integrator", "", "override integrator")
}

func loadBase() *config.Config {
	if preset != "" {
		if cfg := config.GetPreset(preset); cfg != nil {
			return cfg
		}
	}
	return config.DefaultConfig()
}

// loadConfig resolves preset, file and flag layers, flags last.
func loadConfig() (*config.Config, string, error) {
	scenario := "default"
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		scenario = strings.TrimSuffix(configFile, ".yaml")
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (try 'terrago presets')", preset)
		}
		scenario = preset
	default:
		cfg = config.DefaultConfig()
	}

	if duration > 0 {
		cfg.Run.Duration = duration
	}
	if dt > 0 {
		cfg.Run.Dt = dt
	}
	if columns > 0 {
		cfg.Grid.Columns = columns
	}
	if levels > 0 {
		cfg.Grid.Levels = levels
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}
	return cfg, scenario, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadConfig()
	if err != nil {
		return err
	}

	e := experiment.New(cfg)
	if err := e.Setup(); err != nil {
		return err
	}
	result, err := e.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %s\n\n", result.Steps, result.Elapsed)
	fmt.Print(viz.PlotSeries(result.Series, plotWidth, plotHeight))

	if noStore {
		return nil
	}
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(scenario, cfg.Integrator, cfg.Grid.Columns, cfg.Grid.Levels, cfg.Run.Dt, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	e := experiment.New(cfg)
	if err := e.Setup(); err != nil {
		return err
	}

	watch := watchVars
	if len(watch) == 0 {
		watch = cfg.Run.Record
	}
	steps := int(cfg.Run.Duration / cfg.Run.Dt)
	return viz.RunLive(e.Simulator(), steps, watch)
}

func describeRegistry(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	components, err := experiment.NewRegistry().GetStack(cfg)
	if err != nil {
		return err
	}
	reg, err := engine.BuildRegistry(components)
	if err != nil {
		return err
	}

	fmt.Println(viz.Header(fmt.Sprintf("%s stack, %d variables", cfg.Stack, reg.NumVars())))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIABLE\tSHAPE\tUNIT\tROLE")
	printRegistry(w, "", reg)
	return w.Flush()
}

func printRegistry(w *tabwriter.Writer, prefix string, reg *vars.Registry) {
	dump := func(descs []vars.Descriptor) {
		for _, d := range descs {
			role := d.Role.String()
			if d.Closure != nil {
				role += " (closure: " + d.Closure.Produces.Name + ")"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", prefix, d.Name, d.Shape, d.Unit, role)
		}
	}
	dump(reg.Prognostic)
	dump(reg.Auxiliary)
	dump(reg.Inputs)
	dump(reg.Tendencies)
	for _, child := range reg.Children {
		printRegistry(w, prefix+child.Name+".", child.Registry)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tWHEN\tSTEPS\tGRID\tINTEGRATOR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\n",
			run.ID, run.Scenario, run.Timestamp.Format("2006-01-02 15:04"),
			run.Steps, run.Columns, run.Levels, run.Integrator)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	_, series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Header(fmt.Sprintf("%s (%s, %d steps)", meta.ID, meta.Scenario, meta.Steps)))
	fmt.Print(viz.PlotSeries(series, plotWidth, plotHeight))
	return nil
}
