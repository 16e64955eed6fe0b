package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type row struct {
	status, path, reason string
}

func writeText(w io.Writer, r Report) error {
	var rows []row
	for _, p := range r.Succeeded {
		rows = append(rows, row{"succeeded", p, ""})
	}
	for _, o := range r.Ignored {
		rows = append(rows, row{"ignored", o.Path, string(o.Reason)})
	}
	for _, o := range r.Failed {
		rows = append(rows, row{"failed", o.Path, string(o.Reason)})
	}

	var sb strings.Builder
	if len(rows) > 0 {
		statusW, pathW := runewidth.StringWidth("STATUS"), runewidth.StringWidth("PATH")
		for _, rw := range rows {
			statusW = max(statusW, runewidth.StringWidth(rw.status))
			pathW = max(pathW, runewidth.StringWidth(rw.path))
		}
		line := func(a, b, c string) {
			s := runewidth.FillRight(a, statusW) + "  " + runewidth.FillRight(b, pathW) + "  " + c
			sb.WriteString(strings.TrimRight(s, " ") + "\n")
		}
		line("STATUS", "PATH", "REASON")
		for _, rw := range rows {
			line(rw.status, rw.path, rw.reason)
		}
		sb.WriteString("\n")
	}

	prefix := ""
	if r.DryRun {
		prefix = "[dry run] "
	}
	fmt.Fprintf(&sb, "%sTotal: %d  Succeeded: %d  Ignored: %d  Failed: %d\n",
		prefix, r.Counts.Total, r.Counts.Succeeded, r.Counts.Ignored, r.Counts.Failed)
	if len(r.Extensions) > 0 {
		fmt.Fprintf(&sb, "Extensions: %s\n", strings.Join(r.Extensions, ", "))
	}
	if r.Error != "" {
		fmt.Fprintf(&sb, "Error: %s\n", r.Error)
	}
	fmt.Fprintf(&sb, "Trace: %s\n", r.TraceID)

	_, err := io.WriteString(w, sb.String())
	return err
}
