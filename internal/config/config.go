package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds process configuration read from the environment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	GuildID      string `env:"DISCORD_GUILD_ID"` // empty registers global commands

	Port     string `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	ConfigFile   string `env:"CONFIG_FILE" envDefault:"config.json"`
	DBPath       string `env:"DB_PATH" envDefault:"./data/chainbot.db"`

	PrimaryWords   string `env:"WORDS_PRIMARY_FILE" envDefault:"czech.txt"`
	SecondaryWords string `env:"WORDS_SECONDARY_FILE" envDefault:"sk.txt"`

	NoticeTTL    time.Duration `env:"NOTICE_TTL" envDefault:"5s"`
	StartupDelay time.Duration `env:"STARTUP_DELAY" envDefault:"5s"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND: unknown backend %q", c.StoreBackend)
	}
	if c.PrimaryWords == "" {
		return fmt.Errorf("WORDS_PRIMARY_FILE must not be empty")
	}
	if c.NoticeTTL <= 0 {
		return fmt.Errorf("NOTICE_TTL must be positive, got %s", c.NoticeTTL)
	}
	return nil
}
