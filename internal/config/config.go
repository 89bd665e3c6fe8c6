package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	DatabaseLog  bool   `mapstructure:"DATABASE_LOG"`

	// Backup. BackupCheckMinutes is the scheduler's wake-up cadence; how often
	// a backup is actually written follows the stored AppSettings frequency.
	BackupDir          string `mapstructure:"BACKUP_DIR"`
	StatementDir       string `mapstructure:"STATEMENT_DIR"`
	BackupCheckMinutes int    `mapstructure:"BACKUP_CHECK_MINUTES"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_PATH", "data/ledgerbook.db")
	viper.SetDefault("DATABASE_LOG", false)
	viper.SetDefault("BACKUP_DIR", "data/backups")
	viper.SetDefault("STATEMENT_DIR", "data/statements")
	viper.SetDefault("BACKUP_CHECK_MINUTES", 0) // 0 disables the scheduler

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
