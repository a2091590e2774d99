package models

type BrowserConfig struct {
	StartPath  string `mapstructure:"start_path"`
	Locale     string `mapstructure:"locale"`
	BatchSize  int    `mapstructure:"batch_size"` // entries per background scan batch
	Fullscreen bool   `mapstructure:"fullscreen"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
	Limit   int    `mapstructure:"limit"`
}

type LogConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"`
	Dir           string `mapstructure:"dir"` // empty = stderr only
	RetentionDays int    `mapstructure:"retention_days"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type AppConfig struct {
	Browser BrowserConfig `mapstructure:"browser"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}
