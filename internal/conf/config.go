package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	AI       AIConfig       `mapstructure:"ai"`
	Cache    CacheConfig    `mapstructure:"cache"`
	News     NewsConfig     `mapstructure:"news"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	FrontendOrigin string `mapstructure:"frontend_origin"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DatabaseConfig configures the optional preferences/analytics store.
// The news surface works without it.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SearchConfig struct {
	Provider string `mapstructure:"provider"` // "exa" or "tavily"
	APIHost  string `mapstructure:"api_host"`
	APIKey   string `mapstructure:"api_key"`
	Timeout  int    `mapstructure:"timeout"` // seconds, per provider call
}

type AIConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens"` // token budget for prompt content
}

type CacheConfig struct {
	Backend    string        `mapstructure:"backend"`     // "memory" or "redis"
	ResultTTL  time.Duration `mapstructure:"result_ttl"`  // search/bias/summary results
	SourceTTL  time.Duration `mapstructure:"source_ttl"`  // source-level bias estimates
	MaxEntries int           `mapstructure:"max_entries"` // memory backend cap
}

type NewsConfig struct {
	MaxLimit       int           `mapstructure:"max_limit"`
	SearchTimeout  time.Duration `mapstructure:"search_timeout"`
	SampleFallback bool          `mapstructure:"sample_fallback"`
}

type PipelineConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = 3000
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.ResultTTL == 0 {
		c.Cache.ResultTTL = 1800 * time.Second
	}
	if c.Cache.SourceTTL == 0 {
		c.Cache.SourceTTL = 24 * time.Hour
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 10000
	}
	if c.News.MaxLimit == 0 {
		c.News.MaxLimit = 20
	}
	if c.News.SearchTimeout == 0 {
		c.News.SearchTimeout = 10 * time.Second
	}
	if c.Pipeline.MaxConcurrency == 0 {
		c.Pipeline.MaxConcurrency = 4
	}
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
