package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decision-labs/contour/internal/config"
	"github.com/decision-labs/contour/internal/logger"
	"github.com/decision-labs/contour/internal/noise"
	"github.com/decision-labs/contour/internal/render"
	"github.com/decision-labs/contour/internal/viz"
)

var (
	configFile string
	logLevel   string
	logFile    string
	cfg        *config.Config

	// renderer tuning
	preset    string
	seed      int64
	fps       int
	field     string
	levels    int
	octaves   int
	linear    bool
	themeName string

	// offline rendering
	width   int
	height  int
	outPath string
	format  string
	delay   int

	// benchmarking
	realtime bool

	// content jobs
	postsPath  string
	feedOut    string
	filterName string
	showStats  bool
	csvOut     bool
)

// main registers the commands and runs the terminal background when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "contour",
		Short:             "animated contour background and site content jobs",
		PersistentPreRunE: setup,
		RunE:              runLive,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "rotating log file")
	addRendererFlags(rootCmd)
	rootCmd.Flags().Float64("cell", viz.DefaultPixelsPerDot, "grid cell size in pixels")
	rootCmd.Flags().StringVar(&themeName, "theme", "slate", "colour theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "draw the background in the terminal",
		RunE:  runLive,
	}
	addRendererFlags(liveCmd)
	liveCmd.Flags().Float64("cell", viz.DefaultPixelsPerDot, "grid cell size in pixels")
	liveCmd.Flags().StringVar(&themeName, "theme", "slate", "colour theme")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames to svg, png or an animated gif",
		RunE:  runRender,
	}
	addRendererFlags(renderCmd)
	renderCmd.Flags().Float64("cell", render.DefaultCellSize, "grid cell size in pixels")
	renderCmd.Flags().Int("frames", 1, "number of frames")
	renderCmd.Flags().IntVar(&width, "width", 640, "viewport width")
	renderCmd.Flags().IntVar(&height, "height", 360, "viewport height")
	renderCmd.Flags().StringVar(&outPath, "out", "frames", "output directory, or file for gif")
	renderCmd.Flags().StringVar(&format, "format", "svg", "output format (svg|png|gif|braille)")
	renderCmd.Flags().IntVar(&delay, "delay", 0, "gif frame delay in 1/100 s (default: from fps)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame rendering",
		RunE:  runBench,
	}
	addRendererFlags(benchCmd)
	benchCmd.Flags().Float64("cell", render.DefaultCellSize, "grid cell size in pixels")
	benchCmd.Flags().Int("frames", 30, "frames per viewport")
	benchCmd.Flags().BoolVar(&realtime, "realtime", false, "run against the wall clock and report throttling")

	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "generate the RSS feed from the post store",
		RunE:  runFeed,
	}
	feedCmd.Flags().StringVar(&postsPath, "posts", "", "posts.json path")
	feedCmd.Flags().StringVar(&feedOut, "out", "", "feed output path")

	fetchCmd := &cobra.Command{
		Use:   "fetch-social",
		Short: "fetch recent social posts into the post store",
		RunE:  runFetchSocial,
	}
	fetchCmd.Flags().StringVar(&postsPath, "posts", "", "posts.json path")

	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "list posts",
		RunE:  runPosts,
	}
	postsCmd.Flags().StringVar(&postsPath, "posts", "", "posts.json path")
	postsCmd.Flags().StringVar(&filterName, "filter", "all", "filter (all|social|talks|posts|launches)")
	postsCmd.Flags().BoolVar(&showStats, "stats", false, "show metrics and monthly histogram")
	postsCmd.Flags().BoolVar(&csvOut, "csv", false, "write csv to stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list renderer presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s field=%s fps=%d cell=%g levels=%d scale=%g octaves=%d\n",
					name, p.Field, p.TargetFPS, p.CellSize, p.Levels, p.Scale, p.Octaves)
			}
			fmt.Printf("\nthemes: %v\nfields: %v\n", viz.ThemeNames(), noise.Kinds())
		},
	}

	rootCmd.AddCommand(liveCmd, renderCmd, benchCmd, feedCmd, fetchCmd, postsCmd, presetsCmd)

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func addRendererFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "renderer preset")
	cmd.Flags().Int64Var(&seed, "seed", noise.DefaultSeed, "noise seed")
	cmd.Flags().IntVar(&fps, "fps", render.DefaultTargetFPS, "target frames per second")
	cmd.Flags().StringVar(&field, "field", noise.KindPerlin, "noise field (perlin|simplex)")
	cmd.Flags().IntVar(&levels, "levels", render.DefaultLevels, "contour levels")
	cmd.Flags().IntVar(&octaves, "octaves", render.DefaultOctaves, "noise octaves")
	cmd.Flags().BoolVar(&linear, "linear", false, "exact linear edge interpolation")
}

// setup loads the config and starts logging. The terminal UI owns the screen,
// so it only logs to a file.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("log-level") || cfg.Logging.Level == "" {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.File = logFile
	}

	console := cmd.Name() != "live" && cmd.Parent() != nil
	var fileCfg logger.FileConfig
	if cfg.Logging.File != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.File)
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, console)
}

// rendererOptions applies the preset then any explicitly set flags over the
// config's renderer section.
func rendererOptions(cmd *cobra.Command) (opts render.Options, err error) {
	rc := cfg.Renderer
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return render.Options{}, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
		rc = *p
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		rc.Seed = seed
	}
	if flags.Changed("fps") {
		rc.TargetFPS = fps
	}
	if flags.Changed("field") {
		rc.Field = field
	}
	if flags.Changed("levels") {
		rc.Levels = levels
	}
	if flags.Changed("octaves") {
		rc.Octaves = octaves
	}
	if flags.Changed("linear") {
		rc.LinearInterp = linear
	}
	// Each command has its own cell default: the terminal needs a coarser grid.
	if flags.Changed("cell") || (preset == "" && configFile == "") {
		if rc.CellSize, err = flags.GetFloat64("cell"); err != nil {
			return render.Options{}, err
		}
	}

	c := *cfg
	c.Renderer = rc
	if err := c.Validate(); err != nil {
		return render.Options{}, err
	}
	return c.RenderOptions()
}

func runLive(cmd *cobra.Command, args []string) error {
	opts, err := rendererOptions(cmd)
	if err != nil {
		return err
	}
	return viz.Run(opts, themeName)
}
