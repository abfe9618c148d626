package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// key levels: SRCMATRIX_LAYOUT__MIN_COLUMNS sets layout.min_columns.
const EnvPrefix = "SRCMATRIX_"

// flagKeys maps CLI flag names to config keys. Other flags are not config.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"marker":      "layout.marker",
	"strict-fk":   "classifier.strict_fk",
	"dwh-schema":  "objects.dwh_schema",
	"mart-schema": "objects.mart_schema",
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"layout.marker":             "entity column name",
		"layout.name_column":        3,
		"layout.description_column": 6,
		"layout.lookup_column":      0,
		"layout.min_columns":        7,
		"classifier.strict_fk":      false,
		"palette.default_code":      "07",
		"palette.fk_color":          "D9D9D9",
		"output.sheet_name":         "Extracted Columns",
		"output.legend_sheet":       "Legend",
		"output.prefix":             "DWH_Entity_Columns_Output",
		"log.level":                 "info",
		"log.format":                "console",
		"objects.dwh_schema":        "dwh",
		"objects.mart_schema":       "dm",
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > srcmatrix.yaml > srcmatrix.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"srcmatrix.yaml", "srcmatrix.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from defaults, the config file, environment
// variables and flags. Precedence (highest to lowest): flags > env vars >
// config file > defaults. Only flags that were explicitly set are applied.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey transforms SRCMATRIX_LAYOUT__MIN_COLUMNS into layout.min_columns.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandEnvVars expands ${VAR} patterns with environment variable values.
// Unset variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}
