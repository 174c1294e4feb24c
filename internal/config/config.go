package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Browser BrowserConfig `yaml:"browser" mapstructure:"browser"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Scrape  ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// BrowserConfig configures the page renderer.
type BrowserConfig struct {
	// Engine selects the renderer: "chromedp" or "static".
	Engine           string `yaml:"engine" mapstructure:"engine"`
	Headless         bool   `yaml:"headless" mapstructure:"headless"`
	UserAgent        string `yaml:"user_agent" mapstructure:"user_agent"`
	NavTimeoutSecs   int    `yaml:"nav_timeout_secs" mapstructure:"nav_timeout_secs"`
	SettleDelayMs    int    `yaml:"settle_delay_ms" mapstructure:"settle_delay_ms"`
	RendersPerMinute int    `yaml:"renders_per_minute" mapstructure:"renders_per_minute"`
}

// NavTimeout returns the navigation timeout as a duration.
func (b BrowserConfig) NavTimeout() time.Duration {
	return time.Duration(b.NavTimeoutSecs) * time.Second
}

// SettleDelay returns the post-load settle delay as a duration.
func (b BrowserConfig) SettleDelay() time.Duration {
	return time.Duration(b.SettleDelayMs) * time.Millisecond
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// ScrapeConfig configures retry behavior around renders.
type ScrapeConfig struct {
	RetryAttempts int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BIWENGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("browser.engine", "chromedp")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.user_agent", "Mozilla/5.0 (compatible; TodoBiwengerBot/1.0)")
	v.SetDefault("browser.nav_timeout_secs", 30)
	v.SetDefault("browser.settle_delay_ms", 2000)
	v.SetDefault("browser.renders_per_minute", 6)
	v.SetDefault("cache.ttl_minutes", 10)
	v.SetDefault("scrape.retry_attempts", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
