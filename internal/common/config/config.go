package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string  `env:"BOT_TOKEN"`
		AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`
		// Chat that receives batch reports; zero disables Telegram reporting.
		ReportChatID int64         `env:"REPORT_CHAT_ID" envDefault:"0"`
		InitDataTTL  time.Duration `env:"INIT_DATA_TTL" envDefault:"20m"`
	}

	Platform struct {
		APIURL string `env:"PLATFORM_API_URL" envDefault:"https://api.crew3.xyz/"`
		// {subdomain} is replaced with the community subdomain, "root" for the main site.
		SiteURL string `env:"PLATFORM_SITE_URL" envDefault:"https://{subdomain}.crew3.xyz"`
		// Opaque anti-automation token attached to claim submissions. Empty means omitted.
		ClaimToken  string        `env:"PLATFORM_CLAIM_TOKEN" envDefault:""`
		HTTPTimeout time.Duration `env:"PLATFORM_HTTP_TIMEOUT" envDefault:"30s"`
		UserAgent   string        `env:"PLATFORM_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	}

	Pacing struct {
		Claim     time.Duration `env:"CLAIM_TIMEOUT" envDefault:"10s"`
		Short     time.Duration `env:"SHORT_TIMEOUT" envDefault:"3s"`
		Page      time.Duration `env:"PAGE_TIMEOUT" envDefault:"2s"`
		Community time.Duration `env:"COMMUNITY_TIMEOUT" envDefault:"2s"`
	}

	Answers struct {
		Backend  string `env:"ANSWERS_BACKEND" envDefault:"redis"` // redis, memory
		Location string `env:"ANSWERS_LOCATION" envDefault:"redis://answers"`
	}

	Schedule struct {
		// Zero disables the scheduled daily claim.
		DailyClaim time.Duration `env:"DAILY_CLAIM_INTERVAL" envDefault:"0"`
	}
}

// Load reads .env (when present) and the process environment into Config.
func Load() (*Config, error) {
	// .env is optional, production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Answers.Backend != "redis" && cfg.Answers.Backend != "memory" {
		return nil, fmt.Errorf("invalid ANSWERS_BACKEND: %q", cfg.Answers.Backend)
	}
	return cfg, nil
}

// RedisAddr returns host:port for the go-redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsAdmin reports whether the Telegram user id may operate the bot.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
