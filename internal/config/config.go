package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
// Environment variables use the FIRETREE_ prefix (FIRETREE_LOG_LEVEL, FIRETREE_BASE_URI, ...).
type Config struct {
	AppName        string        `mapstructure:"app_name"`
	Env            string        `mapstructure:"app_env"`
	LogLevel       string        `mapstructure:"log_level"`
	BaseURI        string        `mapstructure:"base_uri"`
	AuthToken      string        `mapstructure:"auth_token"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	InsecureTLS    bool          `mapstructure:"insecure_tls"`

	ProfilesFile string `mapstructure:"profiles_file"`
	SinksFile    string `mapstructure:"sinks_file"`
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "firetree")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_uri", "")
	v.SetDefault("auth_token", "")
	v.SetDefault("timeout_seconds", 10) // seconds
	v.SetDefault("insecure_tls", false)
	v.SetDefault("profiles_file", "./configs/profiles.yaml")
	v.SetDefault("sinks_file", "./configs/sinks.yaml")
	v.SetDefault("snapshot_path", "./data/snapshot.db")

	v.SetEnvPrefix("firetree")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}
