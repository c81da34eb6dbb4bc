package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the flags shared by every command.
type app struct {
	configFile string
	envFile    string
	sets       []string
	debug      bool

	log *zap.Logger
}

// newLogger writes to stderr so reports on stdout stay clean.
func newLogger(debugMode bool, level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func (a *app) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}

// load gathers defaults, the --config file, HPCALC_* variables and --set flags.
func (a *app) load() (config.Sources, error) {
	src, err := config.Load(a.configFile, a.envFile, a.sets)
	if err != nil {
		return config.Sources{}, err
	}
	a.logger().Debug("configuration loaded",
		zap.String("file", a.configFile),
		zap.Any("env", src.Env.Values()),
		zap.Any("set", src.Set.Values()),
		zap.Bool("defaults_only", src.Overrides().IsEmpty()),
		zap.Int("scenarios", len(src.Scenarios())))
	return src, nil
}

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(a.logger().Sugar())
	engine.Debug = a.debug
	return engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "hpcalc",
		Short: "Gas boiler vs heat pump cost comparator",
		Long: `Compare the annual running cost of a gas boiler with an air source heat pump,
net of the Boiler Upgrade Scheme grant, and work out payback and lifetime savings.

Inputs start from built-in defaults and are layered in this order:
  defaults < --config base block < HPCALC_<FIELD> variables < --set field=value < scenario`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return nil
			}
			log, err := newLogger(a.debug, zapcore.WarnLevel)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger().Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Scenario file (YAML) with a base block and named scenarios")
	flags.StringVar(&a.envFile, "env-file", "", "Dotenv file with HPCALC_* overrides (default: .env if present)")
	flags.StringArrayVar(&a.sets, "set", nil, "Override one input, field=value (repeatable)")
	flags.BoolVar(&a.debug, "debug", false, "Log every intermediate figure")

	root.AddCommand(
		calculateCmd(a),
		defaultsCmd(a),
		validateCmd(),
		compareCmd(a),
		breakEvenCmd(a),
		projectCmd(a),
		sensitivityCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hpcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
