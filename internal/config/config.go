package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Arxiv   Arxiv   `mapstructure:"arxiv"`
	Filters Filters `mapstructure:"filters"`
	Output  Output  `mapstructure:"output"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	Temperature float32 `mapstructure:"temperature"`
}

// Arxiv holds arXiv API client configuration
type Arxiv struct {
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
	SortBy     string `mapstructure:"sort_by"`
	SortOrder  string `mapstructure:"sort_order"`
	Timeout    string `mapstructure:"timeout"`
	MaxRetries int    `mapstructure:"max_retries"`
	RetryDelay string `mapstructure:"retry_delay"`
}

// Filters holds paper filtering configuration
type Filters struct {
	Months   int      `mapstructure:"months"`
	Keywords []string `mapstructure:"keywords"`
	TopN     int      `mapstructure:"top_n"`
}

// Output holds report output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".arxivscout")
		viper.SetConfigType("yaml")
	}

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvironmentVariables()

	// Enable automatic environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into struct
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.App.ConfigFile = viper.ConfigFileUsed()

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.temperature", 0.7)

	// arXiv defaults
	viper.SetDefault("arxiv.base_url", "http://export.arxiv.org/api/query")
	viper.SetDefault("arxiv.max_results", 50)
	viper.SetDefault("arxiv.sort_by", "submittedDate")
	viper.SetDefault("arxiv.sort_order", "descending")
	viper.SetDefault("arxiv.timeout", "30s")
	viper.SetDefault("arxiv.max_retries", 3)
	viper.SetDefault("arxiv.retry_delay", "2s")

	// Filter defaults
	viper.SetDefault("filters.months", 1)
	viper.SetDefault("filters.top_n", 5)

	// Output defaults
	viper.SetDefault("output.directory", "reports")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
}

// bindEnvKeys binds the first set environment variable to a config key
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}

// validateConfig checks that the loaded configuration is usable
func validateConfig(config *Config) error {
	if config.Arxiv.MaxResults <= 0 {
		return fmt.Errorf("arxiv.max_results must be positive, got %d", config.Arxiv.MaxResults)
	}
	if config.Arxiv.MaxRetries <= 0 {
		return fmt.Errorf("arxiv.max_retries must be positive, got %d", config.Arxiv.MaxRetries)
	}
	if config.Filters.Months < 0 {
		return fmt.Errorf("filters.months must not be negative, got %d", config.Filters.Months)
	}
	if config.Filters.TopN <= 0 {
		return fmt.Errorf("filters.top_n must be positive, got %d", config.Filters.TopN)
	}

	for key, value := range map[string]string{
		"ai.gemini.timeout": config.AI.Gemini.Timeout,
		"arxiv.timeout":     config.Arxiv.Timeout,
		"arxiv.retry_delay": config.Arxiv.RetryDelay,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s is not a valid duration: %w", key, err)
		}
	}

	return nil
}

// TimeoutDuration returns the arXiv HTTP timeout as a duration.
func (a Arxiv) TimeoutDuration() time.Duration {
	return parseDurationOr(a.Timeout, 30*time.Second)
}

// RetryDelayDuration returns the pause between arXiv fetch attempts.
func (a Arxiv) RetryDelayDuration() time.Duration {
	return parseDurationOr(a.RetryDelay, 2*time.Second)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
