package texchew

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/texchew/texchew/tokenizer"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Environment variables overriding the configuration file.
const (
	EnvVerbatimEnvironments = "TEXCHEW_VERBATIM_ENVIRONMENTS"
	EnvCaptureVerbatims     = "TEXCHEW_CAPTURE_VERBATIMS"
)

// DefaultVerbatimEnvironments are the verbatim-like environments recognized
// when no configuration overrides them.
var DefaultVerbatimEnvironments = []string{"verbatim", "Verbatim", "semiverbatim"}

// Config represents the texchew configuration
type Config struct {
	// VerbatimEnvironments lists environments whose bodies are captured as
	// raw text instead of being parsed.
	VerbatimEnvironments []string `yaml:"verbatim_environments"`
	// CaptureVerbatims disables verbatim capture altogether when false.
	// A pointer distinguishes unset (defaults to true) from explicit false.
	CaptureVerbatims *bool `yaml:"capture_verbatims"`
}

// Environment names follow the tokenizer's grammar: letters plus an optional
// trailing star. Anything else could never match a parsed \begin{...}.
var envNamePattern = regexp.MustCompile(`^[A-Za-z]+\*?$`)

// LoadConfig loads configuration from the specified file. A missing file
// yields the default configuration. Environment variables (optionally via a
// .env file) override both.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	config := getDefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse YAML with strict mode to detect unknown fields
		err = yaml.UnmarshalWithOptions(data, config, yaml.Strict())
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if config.VerbatimEnvironments == nil {
		config.VerbatimEnvironments = append([]string{}, DefaultVerbatimEnvironments...)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// TokenizerOptions converts the configuration into the explicit options
// value consumed by the tokenizer.
func (c *Config) TokenizerOptions() tokenizer.Options {
	capture := true
	if c.CaptureVerbatims != nil {
		capture = *c.CaptureVerbatims
	}

	return tokenizer.Options{
		VerbatimEnvironments: append([]string{}, c.VerbatimEnvironments...),
		CaptureVerbatims:     capture,
	}
}

func getDefaultConfig() *Config {
	return &Config{}
}

func applyEnvOverrides(config *Config) {
	if v, ok := os.LookupEnv(EnvVerbatimEnvironments); ok {
		names := []string{}

		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				names = append(names, name)
			}
		}

		config.VerbatimEnvironments = names
	}

	if v, ok := os.LookupEnv(EnvCaptureVerbatims); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CaptureVerbatims = &b
		}
	}
}

func validateConfig(config *Config) error {
	for _, name := range config.VerbatimEnvironments {
		if !envNamePattern.MatchString(name) {
			return fmt.Errorf("%w: invalid verbatim environment name %q", ErrConfigValidation, name)
		}
	}

	return nil
}

func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
