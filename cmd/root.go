/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fulmenhq/cwt/pkg/buildinfo"
	"github.com/fulmenhq/cwt/pkg/exitcode"
	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cwt",
		Short: "Inject copyright and license headers into source trees",
		Long: `cwt prepends license headers to source files, choosing the header for each
file by extension. Header templates declare their extensions on the first line:

    @@CWT|java,cpp,h@@
    Copyright {current.year} Example Corp.

Examples:
   cwt inject --templates headers --target src   # Prepend headers under src
   cwt inject --templates headers --target src --no-op --report json
   cwt templates --templates headers             # Show extension bindings
   cwt tags                                      # Show template tags`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Report what would change without writing files")

	cmd.Version = buildinfo.Version()
	cmd.SetVersionTemplate("cwt {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newInjectCommand())
	cmd.AddCommand(newTemplatesCommand())
	cmd.AddCommand(newTagsCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func init() {
	registerSubcommands(rootCmd)
}

// exitError carries a process exit code out of a RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return exitcode.String(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCodeOf maps a command error onto a process exit code.
func exitCodeOf(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitcode.GeneralError
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	code := exitCodeOf(err)
	var ee *exitError
	if !errors.As(err, &ee) || ee.err != nil {
		logger.Error("Command execution failed", logger.Err(err))
	}
	os.Exit(code)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	root := cmd.Root().PersistentFlags()
	logLevelStr, _ := root.GetString("log-level")
	jsonLogs, _ := root.GetBool("json")
	noColor, _ := root.GetBool("no-color")
	noOp, _ := root.GetBool("no-op")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor && os.Getenv("NO_COLOR") == "",
		JSON:      jsonLogs,
		Component: "cwt",
		NoOp:      noOp,
		Output:    cmd.ErrOrStderr(),
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(exitcode.ConfigError)
	}
}
