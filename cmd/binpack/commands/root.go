// Package commands implements the binpack command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/piwi3910/binpack/internal/model"
	"github.com/piwi3910/binpack/internal/project"
)

// Version is reported by --version.
var Version = "0.1.0"

// app carries state shared by every subcommand once the root has loaded the
// configuration.
type app struct {
	cfgFile string
	verbose bool
	logFile string

	config model.AppConfig
	logger *slog.Logger
}

func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return project.DefaultConfigPath()
}

// NewRootCmd builds the full command tree. Each call returns an independent
// tree so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "binpack",
		Short: "Pack weighted items into the fewest bins",
		Long: `binpack - one-dimensional bin packing

Simulated annealing for large lists, an exact branch-and-bound oracle for
checking it, and a benchmark harness that compares the two.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(a.configPath())
			if err != nil {
				return err
			}
			a.config = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel, a.verbose, a.logFile)
			a.logger.Debug("config loaded", "path", a.configPath())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default ~/.binpack/config.json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output, including annealing progress")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to a size-rotated file instead of stderr")

	root.AddCommand(newSolveCmd(a))
	root.AddCommand(newExactCmd(a))
	root.AddCommand(newBenchCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), errorStyle.Render("error:"), err)
		return 1
	}
	return 0
}

// newLogger builds the slog logger for a run. A log file takes JSON records
// through lumberjack; otherwise text goes to stderr.
func newLogger(stderr io.Writer, level string, verbose bool, logFile string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if logFile != "" {
		w := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(stderr, opts))
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AFAF"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}
