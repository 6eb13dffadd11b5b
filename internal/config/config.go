package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/textfreq/internal/errors"
	"gopkg.in/yaml.v3"
)

// Defaults shared by the CLI and the config file.
const (
	DefaultTopN     = 20
	DefaultReport   = "freq"
	DefaultFormat   = "text"
	DefaultKeyStyle = "snake"
	DefaultMaxDepth = 1000
)

// Supported values for enumerated settings.
var (
	Reports   = []string{"freq"}
	Formats   = []string{"text", "json", "yaml"}
	KeyStyles = []string{"snake", "camel", "kebab", "pascal"}
)

// Config represents the complete configuration for textfreq
type Config struct {
	TopN      int            `yaml:"top_n"`
	Report    string         `yaml:"report"`
	Stopwords string         `yaml:"stopwords"`
	Parser    ParserConfig   `yaml:"parser"`
	Analysis  AnalysisConfig `yaml:"analysis"`
	Output    OutputConfig   `yaml:"output"`
	Dev       DevConfig      `yaml:"dev"`
}

// ParserConfig controls the JSON parser
type ParserConfig struct {
	MaxDepth  int  `yaml:"max_depth"`
	AllowJWCC bool `yaml:"allow_jwcc"`
}

// AnalysisConfig controls tokenization
type AnalysisConfig struct {
	NormalizeUnicode bool `yaml:"normalize_unicode"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format   string `yaml:"format"`
	KeyStyle string `yaml:"key_style"`
	Timing   bool   `yaml:"timing"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		TopN:   DefaultTopN,
		Report: DefaultReport,
		Parser: ParserConfig{
			MaxDepth:  DefaultMaxDepth,
			AllowJWCC: false,
		},
		Analysis: AnalysisConfig{
			NormalizeUnicode: false,
		},
		Output: OutputConfig{
			Format:   DefaultFormat,
			KeyStyle: DefaultKeyStyle,
			Timing:   true,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".textfreq.yml", ".textfreq.yaml", "textfreq.yml", "textfreq.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every setting holds a supported value
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("top_n must not be negative, got %d", c.TopN)
	}
	if c.Parser.MaxDepth <= 0 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	}
	if !slices.Contains(Reports, c.Report) {
		return fmt.Errorf("%w, got '%s'", errors.ErrUnsupportedReport, c.Report)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("unsupported output format '%s'", c.Output.Format)
	}
	if !slices.Contains(KeyStyles, c.Output.KeyStyle) {
		return fmt.Errorf("unsupported key style '%s'", c.Output.KeyStyle)
	}
	return nil
}

// FormatKey renders a field name for structured output in the configured
// key style
func (c *Config) FormatKey(name string) string {
	switch c.Output.KeyStyle {
	case "camel":
		return strcase.ToLowerCamel(name)
	case "kebab":
		return strcase.ToKebab(name)
	case "pascal":
		return strcase.ToCamel(name)
	default:
		return strcase.ToSnake(name)
	}
}

// CLIOverrides holds the command-line values that may replace config file
// settings. Zero values and defaults leave the file setting in place.
type CLIOverrides struct {
	TopN      int
	Report    string
	Format    string
	Stopwords string
	AllowJWCC bool
	Debug     bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// Apply CLI overrides only if they're not the default values.
	// This allows config file values to be used when CLI args are defaults.
	if cli.TopN != DefaultTopN {
		cfg.TopN = cli.TopN
	}
	if cli.Report != "" && cli.Report != DefaultReport {
		cfg.Report = cli.Report
	}
	if cli.Format != "" && cli.Format != DefaultFormat {
		cfg.Output.Format = cli.Format
	}
	if cli.Stopwords != "" {
		cfg.Stopwords = cli.Stopwords
	}
	// Boolean flags can only switch a feature on.
	if cli.AllowJWCC {
		cfg.Parser.AllowJWCC = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
