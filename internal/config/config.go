package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/laplan/internal/classify"
	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/normalize"
	"github.com/gyeh/laplan/internal/registry"
)

// Config holds all runtime configuration for a laplan run.
type Config struct {
	DSN       string
	FilePath  string
	OutPath   string
	Kind      string // "pcts" or "zoning"
	LogFormat string // "text" or "json"
	LogLevel  string
	MaxConns  int32

	Force          bool
	KeepStaging    bool
	FailOnUnparsed bool

	Workers               int
	Clean                 bool
	CodebookPath          string
	RollUp                bool
	KeepChildEntitlements bool

	Registry registry.Extension
	Filter   FilterConfig
}

// FilterConfig is the textual form of classify.Filter, as it appears on the
// command line and in the config file.
type FilterConfig struct {
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
	Prefixes  []string `yaml:"prefixes"`
	Suffixes  []string `yaml:"suffixes"`
	Distinct  bool     `yaml:"distinct"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Registry              registry.Extension `yaml:"registry"`
	Filter                FilterConfig       `yaml:"filter"`
	Workers               int                `yaml:"workers"`
	Clean                 bool               `yaml:"clean"`
	Codebook              string             `yaml:"codebook"`
	RollUp                bool               `yaml:"roll_up_children"`
	KeepChildEntitlements bool               `yaml:"keep_child_entitlements"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set from flags take precedence; the file only fills gaps.
// Registry extensions are always added. The merged result is validated.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file: %w", err)
	}

	c.Registry = yc.Registry
	if c.Workers == 0 {
		c.Workers = yc.Workers
	}
	if c.CodebookPath == "" {
		c.CodebookPath = yc.Codebook
	}
	c.Clean = c.Clean || yc.Clean
	c.RollUp = c.RollUp || yc.RollUp
	c.KeepChildEntitlements = c.KeepChildEntitlements || yc.KeepChildEntitlements

	f := &c.Filter
	if f.StartDate == "" {
		f.StartDate = yc.Filter.StartDate
	}
	if f.EndDate == "" {
		f.EndDate = yc.Filter.EndDate
	}
	if len(f.Prefixes) == 0 {
		f.Prefixes = yc.Filter.Prefixes
	}
	if len(f.Suffixes) == 0 {
		f.Suffixes = yc.Filter.Suffixes
	}
	f.Distinct = f.Distinct || yc.Filter.Distinct

	reg, err := c.BuildRegistry()
	if err != nil {
		return err
	}
	if _, err := c.BuildFilter(reg); err != nil {
		return err
	}
	return nil
}

// BuildRegistry returns the built-in grammar registry extended with the
// configured codes.
func (c *Config) BuildRegistry() (*registry.Registry, error) {
	reg, err := registry.Default().Extend(c.Registry)
	if err != nil {
		return nil, fmt.Errorf("registry extension: %w", err)
	}
	return reg, nil
}

// BuildFilter parses and validates the filter settings against reg.
func (c *Config) BuildFilter(reg *registry.Registry) (classify.Filter, error) {
	f := classify.Filter{
		Prefixes: upperAll(c.Filter.Prefixes),
		Suffixes: upperAll(c.Filter.Suffixes),
		Distinct: c.Filter.Distinct,
	}
	if s := c.Filter.StartDate; s != "" {
		if f.StartDate = normalize.ParseDate(s); f.StartDate == nil {
			return classify.Filter{}, fmt.Errorf("invalid start date %q", s)
		}
	}
	if s := c.Filter.EndDate; s != "" {
		if f.EndDate = normalize.ParseDate(s); f.EndDate == nil {
			return classify.Filter{}, fmt.Errorf("invalid end date %q", s)
		}
	}
	if err := f.Validate(reg); err != nil {
		return classify.Filter{}, err
	}
	return f, nil
}

// TableKind resolves the configured input kind.
func (c *Config) TableKind() (model.TableKind, error) {
	k, ok := model.TableKindByName(c.Kind)
	if !ok {
		return model.TableKind{}, fmt.Errorf("unknown --kind %q (want one of %s)",
			c.Kind, strings.Join(model.TableKindNames(), ", "))
	}
	return k, nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if _, err := c.TableKind(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if c.KeepChildEntitlements && !c.RollUp {
		return fmt.Errorf("--keep-child-entitlements requires --roll-up")
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or LAPLAN_DB_URL is required")
	}
	return nil
}

// ValidateWithOutput checks both file and output path fields.
func (c *Config) ValidateWithOutput() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	if c.OutPath == c.FilePath {
		return fmt.Errorf("--out must differ from --file")
	}
	return nil
}

func upperAll(codes []string) []string {
	if codes == nil {
		return nil
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	return out
}
