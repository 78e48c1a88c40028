package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all todoboard settings.
type Config struct {
	Store   StoreConfig
	Logger  LoggerConfig
	Compose ComposeConfig
}

type StoreConfig struct {
	Driver string
	Path   string // empty: the driver's default file in $HOME
}

type LoggerConfig struct {
	Level    string
	Encoding string
	File     string // empty disables logging
}

type ComposeConfig struct {
	ResetDraft         bool
	MaxAttachmentBytes int64
	PickerDir          string
}

// Load reads config.yaml from path, or from ~/.config/todoboard and the
// working directory when path is empty. Environment variables prefixed with
// TODOBOARD_ override file values (store.driver => TODOBOARD_STORE_DRIVER).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("todoboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "todoboard"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}

	cfg.Store.Driver = v.GetString("store.driver")
	cfg.Store.Path = expandHome(v.GetString("store.path"))

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.File = expandHome(v.GetString("logger.file"))

	cfg.Compose.ResetDraft = v.GetBool("compose.reset_draft")
	cfg.Compose.MaxAttachmentBytes = v.GetInt64("compose.max_attachment_bytes")
	cfg.Compose.PickerDir = expandHome(v.GetString("compose.picker_dir"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "json")
	v.SetDefault("store.path", "")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.file", "")
	v.SetDefault("compose.reset_draft", true)
	v.SetDefault("compose.max_attachment_bytes", 10*1024*1024)
	v.SetDefault("compose.picker_dir", "")
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case "json", "sqlite":
	default:
		return fmt.Errorf("config: store.driver must be json or sqlite, got %q", c.Store.Driver)
	}
	switch strings.ToLower(c.Logger.Encoding) {
	case "json", "console":
	default:
		return fmt.Errorf("config: logger.encoding must be json or console, got %q", c.Logger.Encoding)
	}
	if c.Compose.MaxAttachmentBytes <= 0 {
		return fmt.Errorf("config: compose.max_attachment_bytes must be positive")
	}
	return nil
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
