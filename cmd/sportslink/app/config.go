package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default wiring for a local sync server.
const (
	DefaultServerURL = "http://localhost:8080"
	DefaultTokenTTL  = 24 * time.Hour
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Client configuration
	ServerURL     string
	SessionFile   string
	CachePath     string
	ExcludeHosted bool

	// Serve configuration
	ServeHost   string
	ServePort   int
	TokenSecret string
	TokenTTL    time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.sportslink.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// .env files load first so Viper's env binding sees them
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("sportslink")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".sportslink")
		}
	}

	// Config file is optional
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		ServerURL:     viper.GetString("server_url"),
		SessionFile:   viper.GetString("session_file"),
		CachePath:     viper.GetString("cache_path"),
		ExcludeHosted: viper.GetBool("exclude_hosted"),

		ServeHost:   viper.GetString("serve_host"),
		ServePort:   viper.GetInt("serve_port"),
		TokenSecret: viper.GetString("token_secret"),
		TokenTTL:    viper.GetDuration("token_ttl"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	config.applyDefaults()

	return config, nil
}

// applyDefaults fills in the values LoadConfig left empty.
func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.ServeHost == "" {
		c.ServeHost = "localhost"
	}
	if c.ServePort == 0 {
		c.ServePort = 8080
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = DefaultTokenTTL
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	if c.SessionFile == "" {
		c.SessionFile = filepath.Join(home, ".sportslink", "session.json")
	}
	if c.CachePath == "" {
		c.CachePath = filepath.Join(home, ".sportslink", "events.yaml")
	}
}

// UpdateFromFlags updates config values from parsed command flags. This
// runs after cobra parses flags so flag values take precedence over config
// file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
