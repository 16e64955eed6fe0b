// Package config loads cwt project settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CWT_TEMPLATES.
const EnvPrefix = "CWT"

// FileNames are the config files looked for, in order, in each search directory.
var FileNames = []string{
	".cwt.yaml",
	".cwt.yml",
	".cwt.toml",
	".cwt.json",
	"cwt.yaml",
	"cwt.yml",
	"cwt.toml",
	"cwt.json",
}

// Config holds all configuration for cwt
type Config struct {
	Templates    string       `mapstructure:"templates"`
	Target       string       `mapstructure:"target"`
	AtLine       int          `mapstructure:"at_line"`
	Include      []string     `mapstructure:"include"`
	Exclude      []string     `mapstructure:"exclude"`
	UseIgnore    bool         `mapstructure:"use_ignore"`
	SkipExisting bool         `mapstructure:"skip_existing"`
	BackupDir    string       `mapstructure:"backup_dir"`
	Report       ReportConfig `mapstructure:"report"`

	// Tags are extra template tags. Names are lower-cased by viper.
	Tags map[string]string `mapstructure:"-"`
}

// ReportConfig holds report output settings
type ReportConfig struct {
	Format   string `mapstructure:"format"`
	File     string `mapstructure:"file"`
	Template string `mapstructure:"template"`
}

var defaultConfig = Config{
	AtLine:  1,
	Include: []string{},
	Exclude: []string{},
	Report:  ReportConfig{Format: "text"},
}

// New returns a viper instance with cwt defaults and environment binding.
// Flags are bound by the caller before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("templates", defaultConfig.Templates)
	v.SetDefault("target", defaultConfig.Target)
	v.SetDefault("at_line", defaultConfig.AtLine)
	v.SetDefault("include", defaultConfig.Include)
	v.SetDefault("exclude", defaultConfig.Exclude)
	v.SetDefault("use_ignore", defaultConfig.UseIgnore)
	v.SetDefault("skip_existing", defaultConfig.SkipExisting)
	v.SetDefault("backup_dir", defaultConfig.BackupDir)
	v.SetDefault("report.format", defaultConfig.Report.Format)
	v.SetDefault("report.file", defaultConfig.Report.File)
	v.SetDefault("report.template", defaultConfig.Report.Template)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or the first config file found in the working directory
// or CWT home when path is empty, validates it against the config schema
// and decodes the merged settings. Having no config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = FindFile(searchDirs()...)
	}
	if path != "" {
		if err := ValidateFile(path); err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Tags = flattenTags(v.Get("tags"))
	return &cfg, nil
}

// FindFile returns the first existing config file in dirs, or "".
func FindFile(dirs ...string) string {
	for _, dir := range dirs {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
				return p
			}
		}
	}
	return ""
}

func searchDirs() []string {
	dirs := []string{"."}
	if home, err := GetCWTHome(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// GetCWTHome returns $CWT_HOME, or ~/.cwt.
func GetCWTHome() (string, error) {
	if home := os.Getenv("CWT_HOME"); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cwt"), nil
}

// flattenTags turns viper's nested view of dotted tag names back into
// "a.b" keys.
func flattenTags(raw interface{}) map[string]string {
	out := map[string]string{}
	var walk func(prefix string, val interface{})
	walk = func(prefix string, val interface{}) {
		switch m := val.(type) {
		case map[string]interface{}:
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				name := k
				if prefix != "" {
					name = prefix + "." + k
				}
				walk(name, m[k])
			}
		case nil:
		default:
			if prefix != "" {
				out[prefix] = fmt.Sprint(m)
			}
		}
	}
	walk("", raw)
	return out
}

// IsNotFound reports whether err means an explicit config path does not exist.
func IsNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
