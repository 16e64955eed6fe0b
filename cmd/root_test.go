package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fulmenhq/cwt/pkg/logger"
	"github.com/spf13/cobra"
)

func loggerCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := newRootCommand()
	if err := cmd.PersistentFlags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestInitializeLogger(t *testing.T) {
	// This should not panic
	initializeLogger(loggerCommand(t))
	if !logger.Enabled(logger.InfoLevel) {
		t.Error("expected info level by default")
	}
}

func TestInitializeLogger_DebugLevel(t *testing.T) {
	initializeLogger(loggerCommand(t, "--log-level", "debug"))
	if !logger.Enabled(logger.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}
}

func TestInitializeLogger_InvalidLevel(t *testing.T) {
	// Should default to info level
	initializeLogger(loggerCommand(t, "--log-level", "invalid"))
	if logger.Enabled(logger.DebugLevel) || !logger.Enabled(logger.InfoLevel) {
		t.Error("expected fallback to info level")
	}
}

func TestInitializeLogger_JSONOutput(t *testing.T) {
	cmd := loggerCommand(t, "--json")
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	initializeLogger(cmd)
	logger.Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON log line, got %q", buf.String())
	}
}

func TestInitializeLogger_NoOp(t *testing.T) {
	cmd := loggerCommand(t, "--no-op", "--no-color")
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	initializeLogger(cmd)
	logger.Info("would write")
	if !strings.Contains(buf.String(), "[NO-OP] would write") {
		t.Errorf("expected no-op marker, got %q", buf.String())
	}
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execRoot(t, []string{"--help"})
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(out, "cwt") {
		t.Error("Help output should contain 'cwt'")
	}
	if !strings.Contains(out, "@@CWT|java,cpp,h@@") {
		t.Error("Help output should show the marker line")
	}
	for _, sub := range []string{"inject", "templates", "tags", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("Help output should list %q", sub)
		}
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := execRoot(t, []string{"--version"})
	if err != nil {
		t.Errorf("Version flag failed: %v", err)
	}
	if !strings.HasPrefix(out, "cwt ") {
		t.Errorf("Version output should start with 'cwt', got %q", out)
	}
}

func TestRootCmd_InvalidFlag(t *testing.T) {
	_, err := execRoot(t, []string{"--invalid-flag"})
	if err == nil {
		t.Error("Invalid flag should return an error")
	}
}
