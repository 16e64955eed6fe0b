// Package tags replaces placeholder tokens such as {current.year} in header
// text with facts about the running process.
//
// The process table is computed once, on first use, and never mutated.
package tags

import (
	"maps"
	"os"
	"os/user"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	gitconfig "github.com/go-git/go-git/v5/config"
)

// LineSeparator is the platform line ending used for header text.
var LineSeparator = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Token wraps a tag name in braces: Token("os.name") == "{os.name}".
func Token(name string) string { return "{" + name + "}" }

// Table is an immutable token → value mapping. The zero Table replaces nothing.
type Table struct {
	values   map[string]string
	replacer *strings.Replacer
}

// New builds a Table. Keys may be given bare ("os.name") or braced ("{os.name}").
func New(values map[string]string) Table {
	t := Table{values: make(map[string]string, len(values))}
	for k, v := range values {
		if !strings.HasPrefix(k, "{") {
			k = Token(k)
		}
		t.values[k] = v
	}
	pairs := make([]string, 0, 2*len(t.values))
	for _, tok := range t.Tokens() {
		pairs = append(pairs, tok, t.values[tok])
	}
	t.replacer = strings.NewReplacer(pairs...)
	return t
}

// Replace substitutes every occurrence of every known token in one pass.
// Unknown tokens are left as they are.
func (t Table) Replace(s string) string {
	if t.replacer == nil {
		return s
	}
	return t.replacer.Replace(s)
}

// Tokens returns the known tokens in sorted order.
func (t Table) Tokens() []string {
	return slices.Sorted(maps.Keys(t.values))
}

// Value looks up a token, braced or bare.
func (t Table) Value(token string) (string, bool) {
	if !strings.HasPrefix(token, "{") {
		token = Token(token)
	}
	v, ok := t.values[token]
	return v, ok
}

// Values returns a copy of the table.
func (t Table) Values() map[string]string {
	return maps.Clone(t.values)
}

// With returns a new Table holding t's values overlaid with extra.
func (t Table) With(extra map[string]string) Table {
	if len(extra) == 0 {
		return t
	}
	merged := t.Values()
	if merged == nil {
		merged = make(map[string]string, len(extra))
	}
	for k, v := range extra {
		if !strings.HasPrefix(k, "{") {
			k = Token(k)
		}
		merged[k] = v
	}
	return New(merged)
}

var defaultTable = sync.OnceValue(func() Table {
	return New(Collect(time.Now()))
})

// Default returns the process-wide table.
func Default() Table { return defaultTable() }

// Collect gathers the built-in tag values. Facts that cannot be determined
// map to the empty string.
func Collect(now time.Time) map[string]string {
	v := map[string]string{
		"current.year":   strconv.Itoa(now.Year()),
		"current.date":   now.Format("2006-01-02"),
		"file.separator": string(os.PathSeparator),
		"path.separator": string(os.PathListSeparator),
		"line.separator": LineSeparator,
		"os.name":        runtime.GOOS,
		"os.version":     osVersion(),
		"os.arch":        runtime.GOARCH,
		"go.version":     runtime.Version(),
		"go.root":        goRoot(),
		"user.name":      userName(),
	}
	v["user.home"], _ = os.UserHomeDir()
	v["user.dir"], _ = os.Getwd()
	v["host.name"], _ = os.Hostname()
	v["git.user.name"], v["git.user.email"] = gitUser()
	return v
}

func goRoot() string {
	if root := os.Getenv("GOROOT"); root != "" {
		return root
	}
	return runtime.GOROOT() //nolint:staticcheck // only a fallback when GOROOT is unset
}

func userName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if name := os.Getenv(key); name != "" {
			return name
		}
	}
	return ""
}

// gitUser reads user.name and user.email from the global git config.
func gitUser() (name, email string) {
	cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope)
	if err != nil || cfg == nil {
		return "", ""
	}
	return cfg.User.Name, cfg.User.Email
}
