package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"RankPull/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"production"`
	Service     struct {
		Name string `yaml:"name" default:"rankpull"`
	} `yaml:"service"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Schedule struct {
		Enabled  bool          `yaml:"enabled" default:"true"`
		Interval time.Duration `yaml:"interval" default:"1h"`
	} `yaml:"schedule"`
	Leaderboard struct {
		BaseURL        string        `yaml:"base_url" default:"https://www.binance.com/bapi/futures/v3/public/future/leaderboard" validate:"url"`
		TradeType      string        `yaml:"trade_type" default:"PERPETUAL"`
		StatisticsType string        `yaml:"statistics_type" default:"PNL" validate:"oneof=ROI PNL"`
		PeriodType     string        `yaml:"period_type" default:"DAILY" validate:"oneof=DAILY WEEKLY MONTHLY ALL"`
		TopN           int           `yaml:"top_n" default:"10" validate:"gte=1,lte=10"`
		Timeout        time.Duration `yaml:"timeout" default:"15s"`
		SideConvention string        `yaml:"side_convention" default:"long_positive" validate:"oneof=long_positive short_positive"`
	} `yaml:"leaderboard"`
	Telegram struct {
		Enabled    bool          `yaml:"enabled" default:"true"`
		BotToken   string        `yaml:"bot_token" validate:"required_if=Enabled true"`
		ChatID     string        `yaml:"chat_id" validate:"required_if=Enabled true"`
		RetryDelay time.Duration `yaml:"retry_delay" default:"1s"`
		Timeout    time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"telegram"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"rankpull.reports"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip"`
	} `yaml:"kafka"`
	Cache struct {
		Type  string        `yaml:"type" default:"memory" validate:"oneof=memory redis none"`
		TTL   time.Duration `yaml:"ttl" default:"2h"`
		Redis struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"rankpull"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Logger struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logger"`
}

// Load reads and parses a YAML configuration file. Defaults are applied first
// so explicit file values, including false booleans, always win.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			// missing file is fine: env-only deployments carry no config file
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("SERVICE_NAME"); v != "" {
		c.Service.Name = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("TELEGRAM_BOT_API_KEY"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitCSV(v)
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Cache.Redis.Port = util.ParseIntDefault(v, c.Cache.Redis.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
