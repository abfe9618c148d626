// Package config provides configuration management for the srcmatrix CLI.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/srcmatrix-go/internal/logging"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/catalog"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/render"
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnknownEnvironment indicates an environment name missing from the config.
var ErrUnknownEnvironment = errors.New("unknown environment")

// timestampLayout formats the suffix of generated output file names.
const timestampLayout = "20060102_150405"

// LayoutConfig mirrors srcmatrix.Layout.
type LayoutConfig struct {
	Marker            string `koanf:"marker"`
	NameColumn        int    `koanf:"name_column"`
	DescriptionColumn int    `koanf:"description_column"`
	LookupColumn      int    `koanf:"lookup_column"`
	MinColumns        int    `koanf:"min_columns"`
}

// ClassifierConfig tunes PK/FK inference.
type ClassifierConfig struct {
	StrictFK bool `koanf:"strict_fk"`
}

// SystemConfig is one registry entry keyed by its two-character code.
type SystemConfig struct {
	Name  string `koanf:"name"`
	Color string `koanf:"color"`
}

// PaletteConfig extends the built-in system registry.
type PaletteConfig struct {
	DefaultCode string                  `koanf:"default_code"`
	FKColor     string                  `koanf:"fk_color"`
	Systems     map[string]SystemConfig `koanf:"systems"`
}

// OutputConfig names the generated sheets and files.
type OutputConfig struct {
	SheetName   string `koanf:"sheet_name"`
	LegendSheet string `koanf:"legend_sheet"`
	Prefix      string `koanf:"prefix"`
}

// EnvConfig is a database environment for the catalog commands.
type EnvConfig struct {
	Driver  string   `koanf:"driver"`
	DSN     string   `koanf:"dsn"`
	Schemas []string `koanf:"schemas"`
}

// ObjectsConfig selects the schemas of the object list workbook.
type ObjectsConfig struct {
	DWHSchema  string `koanf:"dwh_schema"`
	MartSchema string `koanf:"mart_schema"`
}

// Config holds all CLI configuration options.
type Config struct {
	Layout       LayoutConfig         `koanf:"layout"`
	Classifier   ClassifierConfig     `koanf:"classifier"`
	Palette      PaletteConfig        `koanf:"palette"`
	Output       OutputConfig         `koanf:"output"`
	Log          logging.Config       `koanf:"log"`
	Environments map[string]EnvConfig `koanf:"environments"`
	Objects      ObjectsConfig        `koanf:"objects"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Validate checks column indices and the palette.
func (c *Config) Validate() error {
	cols := map[string]int{
		"layout.name_column":        c.Layout.NameColumn,
		"layout.description_column": c.Layout.DescriptionColumn,
		"layout.lookup_column":      c.Layout.LookupColumn,
		"layout.min_columns":        c.Layout.MinColumns,
	}
	for key, v := range cols {
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidConfig, key, v)
		}
	}
	if c.Layout.Marker == "" {
		return fmt.Errorf("%w: layout.marker is empty", ErrInvalidConfig)
	}
	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("%w: palette: %v", ErrInvalidConfig, err)
	}
	for name, env := range c.Environments {
		if _, err := catalog.ParseDialect(env.Driver); err != nil {
			return fmt.Errorf("%w: environments.%s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// Registry returns the built-in registry extended with the configured systems.
func (c *Config) Registry() (*palette.Registry, error) {
	codes := make([]string, 0, len(c.Palette.Systems))
	for code := range c.Palette.Systems {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	systems := make([]palette.System, 0, len(codes))
	for _, code := range codes {
		sc := c.Palette.Systems[code]
		systems = append(systems, palette.System{Code: normalizeCode(code), Name: sc.Name, Color: palette.Color(sc.Color)})
	}

	merged, err := palette.Default().With(systems...)
	if err != nil {
		return nil, err
	}
	return palette.New(merged.Systems(), normalizeCode(c.Palette.DefaultCode), palette.Color(c.Palette.FKColor))
}

// normalizeCode restores the leading zero YAML drops from unquoted codes like 01.
func normalizeCode(code string) string {
	if n, err := strconv.Atoi(code); err == nil && len(code) == 1 && n >= 0 {
		return "0" + code
	}
	return code
}

// ExtractOptions bridges the configuration into library options.
func (c *Config) ExtractOptions(logger *zap.Logger) (srcmatrix.Options, error) {
	reg, err := c.Registry()
	if err != nil {
		return srcmatrix.Options{}, err
	}
	return srcmatrix.Options{
		Layout: srcmatrix.Layout{
			Marker:            c.Layout.Marker,
			NameColumn:        c.Layout.NameColumn,
			DescriptionColumn: c.Layout.DescriptionColumn,
			LookupColumn:      c.Layout.LookupColumn,
			MinColumns:        c.Layout.MinColumns,
		},
		StrictFK: c.Classifier.StrictFK,
		Registry: reg,
		Logger:   logger,
	}, nil
}

// MatrixOptions returns the output sheet names.
func (c *Config) MatrixOptions() render.MatrixOptions {
	return render.MatrixOptions{
		MatrixSheet: c.Output.SheetName,
		LegendSheet: c.Output.LegendSheet,
	}
}

// DefaultOutputPath returns <input dir>/<prefix>_<YYYYMMDD_HHMMSS>.xlsx.
func (c *Config) DefaultOutputPath(input string, now time.Time) string {
	name := fmt.Sprintf("%s_%s.xlsx", c.Output.Prefix, now.Format(timestampLayout))
	return filepath.Join(filepath.Dir(input), name)
}

// CatalogEnvironments resolves environment names in the given order. With no
// names every configured environment is returned, sorted by name.
func (c *Config) CatalogEnvironments(names ...string) ([]catalog.Environment, error) {
	if len(names) == 0 {
		for name := range c.Environments {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	envs := make([]catalog.Environment, 0, len(names))
	for _, name := range names {
		ec, ok := c.Environments[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
		}
		envs = append(envs, catalog.Environment{
			Name:    name,
			Driver:  ec.Driver,
			DSN:     expandEnvVars(ec.DSN),
			Schemas: ec.Schemas,
		})
	}
	return envs, nil
}
