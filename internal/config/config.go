package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// App holds application metadata.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	// File is where the terminal UI writes logs; stdout belongs to the UI.
	File string `mapstructure:"file"`
}

// Lookup selects how queries are turned into analyses.
type Lookup struct {
	// Mode is one of fixture, catalog, remote or live.
	Mode      string        `mapstructure:"mode"`
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Redis holds the optional shared cache tier.
type Redis struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	Prefix   string `mapstructure:"prefix"`
}

// Cache configures lookup result caching.
type Cache struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           Redis         `mapstructure:"redis"`
}

// Gemini configures the synthesizer.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Brave configures web and news search.
type Brave struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Freshness           string `mapstructure:"freshness"`
	WebResults          int    `mapstructure:"web_results"`
	NewsResults         int    `mapstructure:"news_results"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Datura configures the tweet search.
type Datura struct {
	APIKey              string   `mapstructure:"api_key"`
	URL                 string   `mapstructure:"url"`
	Model               string   `mapstructure:"model"`
	DateFilter          string   `mapstructure:"date_filter"`
	Tools               []string `mapstructure:"tools"`
	MaxRequestPerMinute int      `mapstructure:"max_request_per_minute"`
}

// Server holds API server configuration.
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Telegram configures the share notifier. Sharing is disabled without a token.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Export configures where exported analyses are written.
type Export struct {
	Dir string `mapstructure:"dir"`
}

// UI holds terminal UI settings.
type UI struct {
	RefreshDelay time.Duration `mapstructure:"refresh_delay"`
	Suggestions  []string      `mapstructure:"suggestions"`
	HistorySize  int           `mapstructure:"history_size"`
}

// Config is the full CryptoScope configuration.
type Config struct {
	App      App      `mapstructure:"app"`
	Logger   Logger   `mapstructure:"logger"`
	Lookup   Lookup   `mapstructure:"lookup"`
	Cache    Cache    `mapstructure:"cache"`
	Gemini   Gemini   `mapstructure:"gemini"`
	Brave    Brave    `mapstructure:"brave"`
	Datura   Datura   `mapstructure:"datura"`
	Server   Server   `mapstructure:"server"`
	Telegram Telegram `mapstructure:"telegram"`
	Export   Export   `mapstructure:"export"`
	UI       UI       `mapstructure:"ui"`
}

// Lookup modes.
const (
	ModeFixture = "fixture"
	ModeCatalog = "catalog"
	ModeRemote  = "remote"
	ModeLive    = "live"
)

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		App:    App{Name: "cryptoscope", Env: "development", Version: "dev"},
		Logger: Logger{Level: "info", Encoding: "json", File: "cryptoscope.log"},
		Lookup: Lookup{
			Mode:      ModeFixture,
			RemoteURL: "http://localhost:8080",
			Timeout:   90 * time.Second,
		},
		Cache: Cache{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
			Redis: Redis{
				Host:     "localhost",
				Port:     6379,
				PoolSize: 10,
				Prefix:   "cryptoscope:analysis:",
			},
		},
		Gemini: Gemini{Model: "gemini-2.0-flash", MaxRequestPerMinute: 10},
		Brave: Brave{
			BaseURL:             "https://api.search.brave.com",
			Freshness:           "pd",
			WebResults:          5,
			NewsResults:         20,
			MaxRequestPerMinute: 30,
		},
		Datura: Datura{
			URL:                 "https://apis.datura.ai/desearch/ai/search",
			Model:               "ORBIT",
			DateFilter:          "PAST_24_HOURS",
			Tools:               []string{"Twitter Search"},
			MaxRequestPerMinute: 10,
		},
		Server: Server{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 10 * time.Second},
		Export: Export{Dir: "exports"},
		UI: UI{
			RefreshDelay: time.Second,
			Suggestions:  []string{"Bitcoin Analysis", "Ethereum Trends", "DeFi Projects", "NFT Market"},
			HistorySize:  8,
		},
	}
}

// Load reads configuration from path (optional) and the environment.
// A .env file in the working directory is loaded first if present. Every key
// can be overridden with CRYPTOSCOPE_<SECTION>_<KEY>, e.g. CRYPTOSCOPE_GEMINI_API_KEY.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("cryptoscope")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	switch c.Lookup.Mode {
	case ModeFixture, ModeCatalog, ModeRemote, ModeLive:
	default:
		return fmt.Errorf("unknown lookup mode %q", c.Lookup.Mode)
	}
	if c.Lookup.Mode == ModeRemote && c.Lookup.RemoteURL == "" {
		return errors.New("lookup.remote_url is required in remote mode")
	}
	if c.UI.RefreshDelay <= 0 {
		return errors.New("ui.refresh_delay must be positive")
	}
	return nil
}

// Addr returns the listen address of the API server.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// setDefaults registers every key of cfg with viper so AutomaticEnv can
// override keys that are absent from the file.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("app.name", cfg.App.Name)
	v.SetDefault("app.env", cfg.App.Env)
	v.SetDefault("app.version", cfg.App.Version)

	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.encoding", cfg.Logger.Encoding)
	v.SetDefault("logger.file", cfg.Logger.File)

	v.SetDefault("lookup.mode", cfg.Lookup.Mode)
	v.SetDefault("lookup.remote_url", cfg.Lookup.RemoteURL)
	v.SetDefault("lookup.timeout", cfg.Lookup.Timeout)

	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	v.SetDefault("cache.redis.enabled", cfg.Cache.Redis.Enabled)
	v.SetDefault("cache.redis.host", cfg.Cache.Redis.Host)
	v.SetDefault("cache.redis.port", cfg.Cache.Redis.Port)
	v.SetDefault("cache.redis.password", cfg.Cache.Redis.Password)
	v.SetDefault("cache.redis.db", cfg.Cache.Redis.DB)
	v.SetDefault("cache.redis.pool_size", cfg.Cache.Redis.PoolSize)
	v.SetDefault("cache.redis.prefix", cfg.Cache.Redis.Prefix)

	v.SetDefault("gemini.api_key", cfg.Gemini.APIKey)
	v.SetDefault("gemini.model", cfg.Gemini.Model)
	v.SetDefault("gemini.max_request_per_minute", cfg.Gemini.MaxRequestPerMinute)

	v.SetDefault("brave.api_key", cfg.Brave.APIKey)
	v.SetDefault("brave.base_url", cfg.Brave.BaseURL)
	v.SetDefault("brave.freshness", cfg.Brave.Freshness)
	v.SetDefault("brave.web_results", cfg.Brave.WebResults)
	v.SetDefault("brave.news_results", cfg.Brave.NewsResults)
	v.SetDefault("brave.max_request_per_minute", cfg.Brave.MaxRequestPerMinute)

	v.SetDefault("datura.api_key", cfg.Datura.APIKey)
	v.SetDefault("datura.url", cfg.Datura.URL)
	v.SetDefault("datura.model", cfg.Datura.Model)
	v.SetDefault("datura.date_filter", cfg.Datura.DateFilter)
	v.SetDefault("datura.tools", cfg.Datura.Tools)
	v.SetDefault("datura.max_request_per_minute", cfg.Datura.MaxRequestPerMinute)

	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	v.SetDefault("telegram.bot_token", cfg.Telegram.BotToken)
	v.SetDefault("telegram.chat_id", cfg.Telegram.ChatID)

	v.SetDefault("export.dir", cfg.Export.Dir)

	v.SetDefault("ui.refresh_delay", cfg.UI.RefreshDelay)
	v.SetDefault("ui.suggestions", cfg.UI.Suggestions)
	v.SetDefault("ui.history_size", cfg.UI.HistorySize)
}
