// Package config provides configuration loading and validation for the application generator.
//
// Settings come from the process environment, then .env.local, then .env, then defaults.
// The process environment is only read, never written.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider preferences accepted by AI_PROVIDER
const (
	ProviderAuto   = "auto"
	ProviderClaude = "claude"
	ProviderLlama  = "llama"
	ProviderSample = "sample"
)

// Output structures accepted by OUTPUT_STRUCTURE
const (
	OutputByModel = "by_model"
	OutputLegacy  = "legacy"
	OutputBoth    = "both"
)

// Config holds all settings of a generation run.
type Config struct {
	BaseDir string `mapstructure:"-"`

	AIProvider                  string `mapstructure:"ai_provider" validate:"required,oneof=auto claude llama sample"`
	AIEnableFallback            bool   `mapstructure:"ai_enable_fallback"`
	GenerateAllProviders        bool   `mapstructure:"generate_all_providers"`
	OutputStructure             string `mapstructure:"output_structure" validate:"required,oneof=by_model legacy both"`
	IncludeGenerationMetadata   bool   `mapstructure:"include_generation_metadata"`
	GenerateDocumentation       bool   `mapstructure:"generate_documentation"`
	GenerateRegenerationScripts bool   `mapstructure:"generate_regeneration_scripts"`
	ClearCacheOnStart           bool   `mapstructure:"clear_cache_on_start"`
	GenerateCVEnhancements      bool   `mapstructure:"generate_cv_enhancements"`

	AnthropicAPIKey   string  `mapstructure:"anthropic_api_key"`
	ClaudeModel       string  `mapstructure:"claude_model" validate:"required"`
	ClaudeMaxTokens   int     `mapstructure:"claude_max_tokens" validate:"gt=0"`
	ClaudeTemperature float64 `mapstructure:"claude_temperature" validate:"gte=0,lte=1"`

	OllamaHost       string  `mapstructure:"ollama_host" validate:"required,url"`
	LlamaModel       string  `mapstructure:"llama_model" validate:"required"`
	LlamaTemperature float64 `mapstructure:"llama_temperature" validate:"gte=0,lte=2"`
	LlamaMaxTokens   int     `mapstructure:"llama_max_tokens" validate:"gt=0"`

	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFile  string `mapstructure:"log_file"`

	// Static holds the upper-case template fields (sender, career history, ...)
	Static StaticFields `mapstructure:"-"`
}

var defaults = map[string]any{
	"ai_provider":                   ProviderAuto,
	"ai_enable_fallback":            true,
	"generate_all_providers":        false,
	"output_structure":              OutputByModel,
	"include_generation_metadata":   true,
	"generate_documentation":        false,
	"generate_regeneration_scripts": true,
	"clear_cache_on_start":          false,
	"generate_cv_enhancements":      false,
	"anthropic_api_key":             "",
	"claude_model":                  "claude-3-5-sonnet-20241022",
	"claude_max_tokens":             1000,
	"claude_temperature":            0.3,
	"ollama_host":                   "http://localhost:11434",
	"llama_model":                   "llama3.2:3b",
	"llama_temperature":             0.3,
	"llama_max_tokens":              1000,
	"log_level":                     "info",
	"log_file":                      "",
}

// Load reads the configuration for the project rooted at baseDir.
func Load(baseDir string) (*Config, error) {
	if baseDir == "" {
		baseDir = "."
	}

	fileValues, err := ReadEnvFiles(baseDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	fromFiles := make(map[string]any, len(fileValues))
	for key, value := range fileValues {
		fromFiles[strings.ToLower(key)] = value
	}
	if err := v.MergeConfigMap(fromFiles); err != nil {
		return nil, fmt.Errorf("failed to merge env files: %w", err)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	cfg.OutputStructure = strings.ToLower(strings.TrimSpace(cfg.OutputStructure))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.BaseDir = baseDir
	cfg.Static = LoadStaticFields(fileValues, os.Environ())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// LegacyOutputRequested reports whether a deprecated output structure was configured.
// Only the by_model layout is produced.
func (c *Config) LegacyOutputRequested() bool {
	return c.OutputStructure == OutputLegacy || c.OutputStructure == OutputBoth
}

// ReadEnvFiles reads .env and then .env.local from baseDir. Values in .env.local win.
// Missing files are skipped.
func ReadEnvFiles(baseDir string) (map[string]string, error) {
	values := make(map[string]string)
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(baseDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fileValues, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	return values, nil
}

// Paths resolves the project directories relative to BaseDir.
func (c *Config) Paths() Paths {
	return NewPaths(c.BaseDir)
}

// Paths holds the fixed directory layout of a project
type Paths struct {
	Base         string
	Profiles     string
	Jobs         string
	Output       string
	Templates    string
	CSS          string
	Cache        string
	EnvFile      string
	EnvLocalFile string
}

// NewPaths returns the layout for a project rooted at base
func NewPaths(base string) Paths {
	output := filepath.Join(base, "Ausgabe")
	return Paths{
		Base:         base,
		Profiles:     filepath.Join(base, "profil"),
		Jobs:         filepath.Join(base, "Stellenbeschreibung"),
		Output:       output,
		Templates:    filepath.Join(output, "templates"),
		CSS:          filepath.Join(output, "css", "bewerbung.css"),
		Cache:        filepath.Join(base, ".cache"),
		EnvFile:      filepath.Join(base, ".env"),
		EnvLocalFile: filepath.Join(base, ".env.local"),
	}
}
