package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/cwt/pkg/exitcode"
	"github.com/fulmenhq/cwt/pkg/inject"
	"github.com/fulmenhq/cwt/pkg/safeio"
	"github.com/fulmenhq/cwt/pkg/traceid"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List header templates and the extensions they bind",
		Long: `Templates discovers header templates the way inject does and shows which
template owns each extension. When two templates claim an extension the
first one found wins.`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}
	cmd.Flags().String("config", "", "Config file (default: .cwt.yaml or cwt.yaml in the working directory or $CWT_HOME)")
	cmd.Flags().String("templates", "", "Template file or directory of templates")
	cmd.Flags().Bool("json", false, "Output bindings in JSON format")
	return cmd
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	cfg, table, err := loadConfig(cmd)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	bindings, err := inject.Discover(traceid.New(), safeio.NormalizeUserPath(cfg.Templates), nil, table)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		data, err := json.MarshalIndent(bindings, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if len(bindings) == 0 {
		_, _ = fmt.Fprintln(out, "No templates found")
		return nil
	}
	width := runewidth.StringWidth("EXTENSION")
	for _, b := range bindings {
		width = max(width, runewidth.StringWidth(b.Extension))
	}
	_, _ = fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight("EXTENSION", width), "TEMPLATE")
	for _, b := range bindings {
		_, _ = fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(b.Extension, width), b.Template)
	}
	return nil
}
