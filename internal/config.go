package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type NovaLiteConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Path        string `mapstructure:"path"`
		SyncOnClose bool   `mapstructure:"sync_on_close"`
	} `mapstructure:"storage"`

	REPL struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
	} `mapstructure:"repl"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novalite")
	v.SetDefault("storage.path", "novalite.db")
	v.SetDefault("storage.sync_on_close", true)
	v.SetDefault("repl.prompt", "db > ")
	v.SetDefault("repl.history_file", "")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
// NOVALITE_* environment variables override both, e.g. NOVALITE_LOG_LEVEL.
func LoadConfig(path string) (*NovaLiteConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("novalite")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaLiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
