package app

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ogefest/fbrowser/models"
)

const DefaultConfigPath = "fbrowser.yaml"

var envReplacer = strings.NewReplacer(".", "_")

func setDefaults(v *viper.Viper) {
	v.SetDefault("browser.start_path", "")
	v.SetDefault("browser.locale", "")
	v.SetDefault("browser.batch_size", DefaultBatchSize)
	v.SetDefault("browser.fullscreen", false)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db_path", "./data/history.db")
	v.SetDefault("history.limit", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.dir", "./data/logs")
	v.SetDefault("log.retention_days", 14)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
}

// LoadConfig reads the YAML file at path. A missing file is not an error;
// every key has a default. Keys may be overridden with FBROWSER_* variables,
// e.g. FBROWSER_LOG_LEVEL.
func LoadConfig(path string) (*models.AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("fbrowser")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
