// Package cli implements the schedpdf command-line interface.
//
// Commands:
//   - teacher, class, teachers, classes: export timetables from a dataset
//   - style: write, show and check TOML style presets
//   - fonts: list, download and check fonts
//   - version: print build information
//
// All commands support --verbose (-v) for debug logging. The logger is also
// installed as the schedpdf library logger, so font fallbacks and per-page
// progress are reported alongside command output.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jadwal/schedpdf/internal/buildinfo"
	"github.com/jadwal/schedpdf/logging"
)

const (
	appName = "schedpdf"

	// envFontDir provides the default for --font-dir.
	envFontDir = "SCHEDPDF_FONT_DIR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command output; logs go to the logger's writer.
	Out io.Writer
}

// New creates a CLI writing output to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Out: out,
		Logger: log.NewWithOptions(logw, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "schedpdf exports school timetables as PDF",
		Long:          `schedpdf renders weekly school timetables, per teacher or per class, as styled PDF documents with right-to-left Arabic layout by default.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			logging.SetLogger(slog.New(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.teacherCommand())
	root.AddCommand(c.classCommand())
	root.AddCommand(c.teachersCommand())
	root.AddCommand(c.classesCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			io.WriteString(c.Out, buildinfo.String()+"\n")
		},
	}
}
