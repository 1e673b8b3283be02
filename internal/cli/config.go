package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. JSONTAB_FORMAT.
const envPrefix = "JSONTAB"

// Config holds the settings of one run, merged from flags and the
// environment. Flags set on the command line take precedence.
type Config struct {
	OptionsFile string
	Columns     []string
	Collection  string
	Format      string
	Border      string
	JSONPath    bool
	Query       string
	Log         LogConfig
}

// LoadConfig merges flags with JSONTAB_* environment variables.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	// Column specs may contain spaces and commas, which viper would split.
	columns, err := flags.GetStringArray("column")
	if err != nil {
		return nil, err
	}

	return &Config{
		OptionsFile: v.GetString("config"),
		Columns:     columns,
		Collection:  v.GetString("collection"),
		Format:      v.GetString("format"),
		Border:      v.GetString("border"),
		JSONPath:    v.GetBool("jsonpath"),
		Query:       v.GetString("query"),
		Log: LogConfig{
			Level:   v.GetString("log-level"),
			Format:  v.GetString("log-format"),
			Verbose: v.GetBool("verbose"),
			Quiet:   v.GetBool("quiet"),
			NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		},
	}, nil
}
