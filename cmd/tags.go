package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/cwt/pkg/exitcode"
	"github.com/spf13/cobra"
)

func newTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show the tags available to header templates",
		Long: `Tags prints every {token} a template may use and the value it expands to
on this machine, including tags added in the config file or with --tag.`,
		Args: cobra.NoArgs,
		RunE: runTags,
	}
	cmd.Flags().String("config", "", "Config file (default: .cwt.yaml or cwt.yaml in the working directory or $CWT_HOME)")
	cmd.Flags().StringToString("tag", nil, "Extra template tag as name=value (repeatable)")
	cmd.Flags().Bool("json", false, "Output tags in JSON format")
	return cmd
}

func runTags(cmd *cobra.Command, _ []string) error {
	_, table, err := loadConfig(cmd)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if jsonOutput {
		data, err := json.MarshalIndent(table.Values(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	tokens := table.Tokens()
	width := 0
	for _, tok := range tokens {
		width = max(width, len(tok))
	}
	for _, tok := range tokens {
		val, _ := table.Value(tok)
		_, _ = fmt.Fprintf(out, "%-*s  %q\n", width, tok, val)
	}
	return nil
}
