package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the browser identity sent with page-scrape and direct
// caption requests. API gateway requests carry per-profile user agents
// instead.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	// YouTubeDomain and MobileDomain exist so tests can point the client at
	// a local server; production leaves the defaults.
	YouTubeDomain string `mapstructure:"youtube_domain"`
	MobileDomain  string `mapstructure:"mobile_domain"`
	ClientTimeout string `mapstructure:"client_timeout"` // Go duration string like "30s"
	UserAgent     string `mapstructure:"user_agent"`
	SentryDSN     string `mapstructure:"sentry_dsn"`
	LogLevel      string `mapstructure:"log_level"`
	Metrics       struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"metrics"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("YTCAPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetDefault("youtube_domain", "https://www.youtube.com")
	viper.SetDefault("mobile_domain", "https://m.youtube.com")
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("proxy_connection_string", "")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.address", "localhost")
	viper.SetDefault("metrics.port", 9090)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}
	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
