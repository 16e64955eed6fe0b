package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aymerick/raymond"
)

// writeTemplate renders a handlebars template with the report as context.
// Fields use their snake_case names, e.g. {{counts.failed}} or
// {{#each failed}}{{path}}{{/each}}.
func writeTemplate(w io.Writer, src string, r Report) error {
	tpl, err := raymond.Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	tpl.RegisterHelper("gt", func(a, b interface{}) bool {
		aVal, _ := strconv.Atoi(fmt.Sprintf("%v", a))
		bVal, _ := strconv.Atoi(fmt.Sprintf("%v", b))
		return aVal > bVal
	})
	out, err := tpl.Exec(r)
	if err != nil {
		return fmt.Errorf("failed to render report template: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
