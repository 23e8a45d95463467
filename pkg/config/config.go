package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the run-level settings for the famlink CLI. The schedule
// itself lives in the CSV file; these settings control how a run talks to
// the service and reports its work.
type Config struct {
	CookieFile string        `mapstructure:"cookie_file"`
	AccountID  string        `mapstructure:"account_id"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	DryRun     bool          `mapstructure:"dry_run"`
	Verbose    bool          `mapstructure:"verbose"`
	Quiet      bool          `mapstructure:"quiet"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value '%v': %s", e.Field, e.Value, e.Message)
}

// ConfigSource represents where a configuration value came from
type ConfigSource int

const (
	SourceDefault ConfigSource = iota
	SourceConfigFile
	SourceEnvironment
	SourceCLIFlag
)

func (s ConfigSource) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceConfigFile:
		return "config file"
	case SourceEnvironment:
		return "environment variable"
	case SourceCLIFlag:
		return "CLI flag"
	default:
		return "unknown"
	}
}

// ConfigDebugInfo holds debugging information about configuration resolution
type ConfigDebugInfo struct {
	Sources map[string]ConfigSource
	Values  map[string]interface{}
}

// configKeys lists every settable key in resolution-report order.
var configKeys = []string{
	"cookie_file", "account_id", "base_url", "timeout", "dry_run", "verbose", "quiet",
}

// envMappings maps environment variables to config keys.
var envMappings = map[string]string{
	"FAMLINK_COOKIE_FILE": "cookie_file",
	"FAMLINK_ACCOUNT_ID":  "account_id",
	"FAMLINK_BASE_URL":    "base_url",
	"FAMLINK_TIMEOUT":     "timeout",
	"FAMLINK_DRY_RUN":     "dry_run",
	"FAMLINK_VERBOSE":     "verbose",
	"FAMLINK_QUIET":       "quiet",
}

// LoadWithDefaults returns a configuration with default values
func LoadWithDefaults() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	v.Unmarshal(&config)
	return &config
}

// LoadWithPrecedence loads configuration with full precedence support:
// CLI flags over environment variables over the config file over defaults.
// explicitFields marks which flag values were actually set on the command
// line, so zero values merge correctly.
func LoadWithPrecedence(configFile string, flagConfig *Config, explicitFields map[string]bool, debug bool) (*Config, *ConfigDebugInfo, error) {
	var debugInfo *ConfigDebugInfo
	if debug {
		debugInfo = &ConfigDebugInfo{
			Sources: make(map[string]ConfigSource),
			Values:  make(map[string]interface{}),
		}
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)
	if debug {
		recordDefaults(debugInfo, v)
	}

	// Load config file if specified
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, debugInfo, fmt.Errorf("failed to read config file: %w", err)
		}
		if debug {
			recordConfigFile(debugInfo, v)
		}
	}

	// Configure environment variable support
	v.SetEnvPrefix("FAMLINK")
	v.AutomaticEnv()
	for envVar, configKey := range envMappings {
		v.BindEnv(configKey, envVar)
	}
	if debug {
		recordEnvironment(debugInfo)
	}

	// Unmarshal into config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, debugInfo, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply CLI flag overrides with explicit field tracking
	if flagConfig != nil && explicitFields != nil {
		config = *config.MergeWithExplicitFlags(flagConfig, explicitFields)
		if debug {
			recordExplicitFlags(debugInfo, flagConfig, explicitFields)
		}
	}

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, debugInfo, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, debugInfo, nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("cookie_file", "cookies.txt")
	v.SetDefault("account_id", "")
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
}

// MergeWithExplicitFlags merges configuration with explicitly set flag values.
// Zero values merge correctly because the explicit field set records which
// flags were actually given on the command line.
func (c *Config) MergeWithExplicitFlags(flags *Config, explicitFields map[string]bool) *Config {
	result := *c // Copy base config

	if explicitFields["cookie_file"] {
		result.CookieFile = flags.CookieFile
	}
	if explicitFields["account_id"] {
		result.AccountID = flags.AccountID
	}
	if explicitFields["base_url"] {
		result.BaseURL = flags.BaseURL
	}
	if explicitFields["timeout"] {
		result.Timeout = flags.Timeout
	}
	if explicitFields["dry_run"] {
		result.DryRun = flags.DryRun
	}
	if explicitFields["verbose"] {
		result.Verbose = flags.Verbose
	}
	if explicitFields["quiet"] {
		result.Quiet = flags.Quiet
	}

	return &result
}

// FindConfigFile searches for a configuration file in the given directory.
// It looks for .famlink.toml and famlink.toml files.
func FindConfigFile(dir string) string {
	configNames := []string{".famlink.toml", "famlink.toml"}

	for _, name := range configNames {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	return ""
}

// Validate validates the configuration and returns detailed error messages
func (c *Config) Validate() error {
	var errors []ValidationError

	if c.CookieFile == "" {
		errors = append(errors, ValidationError{
			Field:   "cookie_file",
			Value:   c.CookieFile,
			Message: "must not be empty",
		})
	}

	if c.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "must be greater than 0",
		})
	}
	if c.Timeout > 10*time.Minute {
		errors = append(errors, ValidationError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "must be 10 minutes or less",
		})
	}

	// Verbose and quiet are mutually exclusive
	if c.Verbose && c.Quiet {
		errors = append(errors, ValidationError{
			Field:   "quiet",
			Value:   c.Quiet,
			Message: "cannot be combined with verbose",
		})
	}

	// Return combined error if any validation failed
	if len(errors) > 0 {
		var messages []string
		for _, err := range errors {
			messages = append(messages, err.Error())
		}
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(messages, "\n  - "))
	}

	return nil
}

// recordDefaults records default values in debug info
func recordDefaults(debug *ConfigDebugInfo, v *viper.Viper) {
	for _, key := range configKeys {
		debug.Sources[key] = SourceDefault
		debug.Values[key] = v.Get(key)
	}
}

// recordConfigFile records config file values in debug info
func recordConfigFile(debug *ConfigDebugInfo, v *viper.Viper) {
	for _, key := range configKeys {
		if v.InConfig(key) {
			debug.Sources[key] = SourceConfigFile
			debug.Values[key] = v.Get(key)
		}
	}
}

// recordEnvironment records environment variable values in debug info
func recordEnvironment(debug *ConfigDebugInfo) {
	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			debug.Sources[configKey] = SourceEnvironment
			debug.Values[configKey] = value
		}
	}
}

// recordExplicitFlags records CLI flag values that were explicitly set
func recordExplicitFlags(debug *ConfigDebugInfo, flags *Config, explicitFields map[string]bool) {
	record := func(key string, value interface{}) {
		if explicitFields[key] {
			debug.Sources[key] = SourceCLIFlag
			debug.Values[key] = value
		}
	}
	record("cookie_file", flags.CookieFile)
	record("account_id", flags.AccountID)
	record("base_url", flags.BaseURL)
	record("timeout", flags.Timeout)
	record("dry_run", flags.DryRun)
	record("verbose", flags.Verbose)
	record("quiet", flags.Quiet)
}

// PrintDebugInfo prints configuration debug information
func (debug *ConfigDebugInfo) PrintDebugInfo() {
	fmt.Println("Configuration Resolution Debug Info:")
	fmt.Println("===================================")

	for _, key := range configKeys {
		source := debug.Sources[key]
		value := debug.Values[key]
		fmt.Printf("%-20s: %-15v (from %s)\n", key, value, source)
	}
}
