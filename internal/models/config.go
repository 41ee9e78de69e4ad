package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// SheetURLs lists the published-spreadsheet CSV exports the storefront loads.
// An empty URL means that source is skipped.
type SheetURLs struct {
	Items         string `mapstructure:"items"`
	Categories    string `mapstructure:"categories"`
	Config        string `mapstructure:"config"`
	Hours         string `mapstructure:"hours"`
	Neighborhoods string `mapstructure:"neighborhoods"`
	Coupons       string `mapstructure:"coupons"`
}

// OrderLogConfig selects where finalized orders are recorded in addition to
// the WhatsApp handoff.
type OrderLogConfig struct {
	Output     string `mapstructure:"output"` // "console", "file" or "kafka"
	FilePath   string `mapstructure:"file_path"`
	BrokerList string `mapstructure:"broker_list"`
	Topic      string `mapstructure:"topic"`
}

type Config struct {
	Sheets        SheetURLs      `mapstructure:"sheets"`
	Timezone      string         `mapstructure:"timezone"`
	WhatsAppPhone string         `mapstructure:"whatsapp_phone"`
	FetchTimeout  time.Duration  `mapstructure:"fetch_timeout"`
	Storage       string         `mapstructure:"storage"` // "file" or "redis"
	StoragePath   string         `mapstructure:"storage_path"`
	RedisAddr     string         `mapstructure:"redis_addr"`
	RedisPassword string         `mapstructure:"redis_password"`
	RedisDB       int            `mapstructure:"redis_db"`
	CartSlot      string         `mapstructure:"cart_slot"`
	LogLevel      string         `mapstructure:"log_level"`
	OrderLog      OrderLogConfig `mapstructure:"order_log"`
	Demo          bool           `mapstructure:"demo"`
	DemoSeed      int64          `mapstructure:"demo_seed"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("timezone", "America/Sao_Paulo")
	viper.SetDefault("fetch_timeout", 30*time.Second)
	viper.SetDefault("storage", "file")
	viper.SetDefault("storage_path", ".cardapio")
	viper.SetDefault("cart_slot", "userCart")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("order_log.output", "console")
	viper.SetDefault("order_log.topic", "order_events")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// LogrusLevel resolves the configured level once at startup. Unknown values
// fall back to info.
func (cfg *Config) LogrusLevel() logrus.Level {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
