package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"templates":       "templates",
	"target":          "target",
	"at-line":         "at_line",
	"include":         "include",
	"exclude":         "exclude",
	"use-ignore":      "use_ignore",
	"skip-existing":   "skip_existing",
	"backup-dir":      "backup_dir",
	"report":          "report.format",
	"report-file":     "report.file",
	"report-template": "report.template",
}

// bindFlags binds every flag of fs that has a config key. Flags set on the
// command line override config files and the environment.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}
