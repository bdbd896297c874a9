package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/factoryflow/internal/analysis"
	"github.com/specialistvlad/factoryflow/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

type options struct {
	catalogs         []string
	logFormat        string
	logLevel         string
	output           string
	failOnUnresolved bool
}

// newRootCommand builds the command tree. accept receives the validated
// configuration; it is not called for --help.
func newRootCommand(output io.Writer, accept func(*app.Config)) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "factoryflow [flags] LAYOUT",
		Short: "Infer which materials every belt and inserter of a factory layout carries",
		Long: `factoryflow reads a blueprint (exchange string, JSON or YAML), builds the
graph of belts, inserters, splitters, chests and assembling machines it
describes, and propagates each machine's recipe to the transport feeding and
draining it. The report lists what every node is expected to carry.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError(errors.New("exactly one LAYOUT path is required"))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(app.Config{
				LayoutPath:       args[0],
				CatalogPaths:     opts.catalogs,
				LogFormat:        strings.ToLower(opts.logFormat),
				LogLevel:         strings.ToLower(opts.logLevel),
				Output:           analysis.Format(strings.ToLower(opts.output)),
				FailOnUnresolved: opts.failOnUnresolved,
			})
			if err != nil {
				return usageError(err)
			}
			slog.Debug("CLI parser finished successfully.", "config", cfg)
			accept(cfg)
			return nil
		},
	}

	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.catalogs, "catalog", "c", nil, "Catalog .hcl file or directory. Repeatable; replaces the embedded catalog.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVarP(&opts.output, "output", "o", "yaml", "Report format. Options: 'yaml' or 'json'.")
	flags.BoolVar(&opts.failOnUnresolved, "fail-on-unresolved", false, "Exit with an error when a belt or inserter receives no purpose.")
	return cmd
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cfg *app.Config
	cmd := newRootCommand(output, func(c *app.Config) { cfg = c })
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError(err)
	}
	if cfg == nil {
		// Help was printed.
		return nil, true, nil
	}
	return cfg, false, nil
}
