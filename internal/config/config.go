// Package config loads the audit run configuration from command-line flags,
// environment variables, a .env file and an optional YAML file.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/validation"
)

// Defaults.
const (
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"
	DefaultBooksPath   = "books.csv"
	DefaultReviewsPath = "reviews.csv"
	DefaultFlagsPath   = "flags.txt"
	DefaultSubject     = "STU032"
	DefaultEnvFile     = ".env"
)

// Environment keys.
const (
	EnvEnvironment = "ENV"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvBooksPath   = "BOOKS_PATH"
	EnvReviewsPath = "REVIEWS_PATH"
	EnvFlagsPath   = "FLAGS_PATH"
	EnvSubject     = "SUBJECT_ID"
	EnvConfigFile  = "REVIEWAUDIT_CONFIG"
)

// Config holds the run configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Logger LoggerConfig `yaml:"logger"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Audit  AuditConfig  `yaml:"audit"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `yaml:"environment" validate:"required,oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	// Format overrides the environment default: json or pretty.
	Format string `yaml:"format" validate:"omitempty,oneof=json pretty"`
}

// InputConfig locates the two CSV tables.
type InputConfig struct {
	BooksPath   string `yaml:"books" validate:"required,file"`
	ReviewsPath string `yaml:"reviews" validate:"required,file"`
}

// OutputConfig locates the flags file.
type OutputConfig struct {
	FlagsPath string `yaml:"flags" validate:"required,parentdir"`
}

// AuditConfig holds the subject whose hash identifies the target book.
type AuditConfig struct {
	Subject string `yaml:"subject" validate:"required,max=256"`
}

// Flags carries command-line values. Empty strings mean "not set".
type Flags struct {
	Env         string
	LogLevel    string
	BooksPath   string
	ReviewsPath string
	FlagsPath   string
	Subject     string
	EnvFile     string
	ConfigFile  string
}

// Default returns the configuration used when no source sets a value.
func Default() *Config {
	return &Config{
		App:    AppConfig{Environment: DefaultEnvironment},
		Logger: LoggerConfig{Level: DefaultLogLevel},
		Input:  InputConfig{BooksPath: DefaultBooksPath, ReviewsPath: DefaultReviewsPath},
		Output: OutputConfig{FlagsPath: DefaultFlagsPath},
		Audit:  AuditConfig{Subject: DefaultSubject},
	}
}

// Load builds the configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. YAML config file.
// 5. Default values (lowest priority).
func Load(flags Flags, v *validation.Validator) (*Config, error) {
	cfg := Default()

	configFile := getConfigValue(flags.ConfigFile, EnvConfigFile, "")
	if configFile != "" {
		if err := cfg.mergeYAML(configFile); err != nil {
			return nil, err
		}
	}

	envFile := flags.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := loadEnvFile(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.CodeValidation, "read env file %s", envFile)
	}

	cfg.App.Environment = getConfigValue(flags.Env, EnvEnvironment, cfg.App.Environment)
	cfg.Logger.Level = strings.ToLower(getConfigValue(flags.LogLevel, EnvLogLevel, cfg.Logger.Level))
	cfg.Logger.Format = getConfigValue("", EnvLogFormat, cfg.Logger.Format)
	cfg.Input.BooksPath = getConfigValue(flags.BooksPath, EnvBooksPath, cfg.Input.BooksPath)
	cfg.Input.ReviewsPath = getConfigValue(flags.ReviewsPath, EnvReviewsPath, cfg.Input.ReviewsPath)
	cfg.Output.FlagsPath = getConfigValue(flags.FlagsPath, EnvFlagsPath, cfg.Output.FlagsPath)
	cfg.Audit.Subject = getConfigValue(flags.Subject, EnvSubject, cfg.Audit.Subject)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := v.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeYAML overlays the values present in the YAML file at path.
func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return errors.Wrapf(err, errors.CodeValidation, "read config file %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, errors.CodeValidation, "parse config file %s", path)
	}
	return nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Input.BooksPath, &c.Input.ReviewsPath, &c.Output.FlagsPath} {
		expanded, err := expandPath(*p)
		if err != nil {
			return errors.Wrapf(err, errors.CodeValidation, "expand path %q", *p)
		}
		*p = expanded
	}
	return nil
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or fallback.
func getConfigValue(flagValue, envKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return fallback
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments). Variables already set
// in the environment are left alone.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
