/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fulmenhq/cwt/pkg/collect"
	"github.com/fulmenhq/cwt/pkg/config"
	"github.com/fulmenhq/cwt/pkg/exitcode"
	"github.com/fulmenhq/cwt/pkg/ignore"
	"github.com/fulmenhq/cwt/pkg/inject"
	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/fulmenhq/cwt/pkg/report"
	"github.com/fulmenhq/cwt/pkg/safeio"
	"github.com/fulmenhq/cwt/pkg/tags"
	"github.com/fulmenhq/cwt/pkg/traceid"
	"github.com/spf13/cobra"
)

func newInjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Prepend license headers to files by extension",
		Long: `Inject walks the target tree and prepends to every file the header whose
template binds the file's extension. Files without a matching template are
left untouched. Each rewrite is backed up and rolled back on failure.

Exit codes: 0 success, 2 configuration error, 4 file-system error,
10 some files failed.`,
		Args: cobra.NoArgs,
		RunE: runInject,
	}

	f := cmd.Flags()
	f.String("config", "", "Config file (default: .cwt.yaml or cwt.yaml in the working directory or $CWT_HOME)")
	f.String("templates", "", "Template file or directory of templates")
	f.String("target", "", "File or directory tree to rewrite")
	f.Int("at-line", 1, "Insertion line; only 1 (top of file) is supported")
	f.StringSlice("include", nil, "Only rewrite files matching these globs (repeatable)")
	f.StringSlice("exclude", nil, "Skip files and directories matching these globs (repeatable)")
	f.Bool("use-ignore", false, "Skip paths matched by .gitignore and .cwtignore")
	f.Bool("skip-existing", false, "Leave files that already start with their header alone")
	f.String("backup-dir", "", "Directory for per-file backups (default: system temp dir)")
	f.String("report", "text", "Report format (text|json|yaml|toml|junit|template)")
	f.String("report-file", "", "Write the report to this file instead of stdout")
	f.String("report-template", "", "Handlebars template file for --report template")
	f.String("trace-id", "", "Correlation id for log lines (default: $CWT_TRACE_ID or generated)")
	f.StringToString("tag", nil, "Extra template tag as name=value (repeatable)")
	return cmd
}

func runInject(cmd *cobra.Command, _ []string) error {
	cfg, table, err := loadConfig(cmd)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}
	formatter := report.NewFormatter(format)
	if format == report.FormatTemplate {
		if cfg.Report.Template == "" {
			return withExitCode(exitcode.ConfigError, fmt.Errorf("--report template needs --report-template"))
		}
		tpl, err := os.ReadFile(filepath.Clean(cfg.Report.Template))
		if err != nil {
			return withExitCode(exitcode.ConfigError, fmt.Errorf("failed to read report template: %w", err))
		}
		formatter.SetTemplate(string(tpl))
	}

	traceFlag, _ := cmd.Flags().GetString("trace-id")
	noOp, _ := cmd.Root().PersistentFlags().GetBool("no-op")
	target := safeio.NormalizeUserPath(cfg.Target)

	filter, err := targetFilter(target, cfg)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}

	res, err := inject.Run(inject.Options{
		TraceID:      traceid.Resolve(traceFlag, os.Getenv("CWT_TRACE_ID")),
		TemplatePath: safeio.NormalizeUserPath(cfg.Templates),
		AtLine:       cfg.AtLine,
		TargetPath:   target,
		TargetFilter: filter,
		DryRun:       noOp,
		SkipExisting: cfg.SkipExisting,
		BackupDir:    safeio.NormalizeUserPath(cfg.BackupDir),
		Tags:         &table,
	})
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}

	if err := writeReport(cmd.OutOrStdout(), cfg.Report.File, formatter, res); err != nil {
		return withExitCode(exitcode.FileSystemError, err)
	}

	switch {
	case res.Err != nil:
		return withExitCode(exitcode.FileSystemError, res.Err)
	case !res.Success():
		return withExitCode(exitcode.PartialFailure, nil)
	}
	return nil
}

// loadConfig merges config file, environment and flags, and builds the tag
// table with config and --tag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, tags.Table, error) {
	v := config.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, tags.Table{}, err
	}
	path, _ := cmd.Flags().GetString("config")
	path = safeio.NormalizeUserPath(path)
	cfg, err := config.Load(v, path)
	if config.IsNotFound(err) {
		return nil, tags.Table{}, fmt.Errorf("config file %s not found: %w", path, err)
	}
	if err != nil {
		return nil, tags.Table{}, err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Loaded config", logger.Path(used))
	}

	extra := cfg.Tags
	if cmd.Flags().Lookup("tag") != nil {
		flagTags, _ := cmd.Flags().GetStringToString("tag")
		for k, val := range flagTags {
			extra[k] = val
		}
	}
	return cfg, tags.Default().With(extra), nil
}

// targetFilter combines glob and ignore filters rooted at the target
// directory. A missing target is left for inject validation to report.
func targetFilter(target string, cfg *config.Config) (collect.Filter, error) {
	info, err := os.Stat(target)
	if target == "" || err != nil {
		return nil, nil
	}
	root := target
	if !info.IsDir() {
		root = filepath.Dir(target)
	}

	globs, err := collect.Globs(root, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if !cfg.UseIgnore {
		return globs, nil
	}
	m, err := ignore.NewMatcher(root)
	if err != nil {
		return nil, err
	}
	return collect.All(globs, collect.Ignored(m)), nil
}

func writeReport(stdout io.Writer, path string, f *report.Formatter, res *inject.Result) error {
	if path == "" {
		return f.Write(stdout, res)
	}
	path = safeio.NormalizeUserPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	out, err := os.Create(path) // #nosec G304 -- user-selected report path
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := f.Write(out, res); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
