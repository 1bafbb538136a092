package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	TableSourceFile   = "file"
	TableSourceSQLite = "sqlite"
	TableSourceRedis  = "redis"

	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SessionStore string        `yaml:"session-store" env:"SESSION_STORE" env-default:"redis"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Redis        Redis         `yaml:"redis"`
	Table        Table         `yaml:"table"`
	Policy       Policy        `yaml:"policy"`
	Game         Game          `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Table struct {
	Source string `yaml:"source" env:"TABLE_SOURCE" env-default:"file"`
	Path   string `yaml:"path" env:"TABLE_PATH" env-default:"./value_table.json"`
}

type Policy struct {
	Seed int64 `yaml:"seed" env:"POLICY_SEED" env-default:"0"`
}

type Game struct {
	AgentMark  string `yaml:"agent-mark" env:"AGENT_MARK" env-default:"X"`
	AgentFirst bool   `yaml:"agent-first" env:"AGENT_FIRST" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Table.Source {
	case TableSourceFile, TableSourceSQLite, TableSourceRedis:
	default:
		return fmt.Errorf("unknown table source %q", that.Table.Source)
	}

	switch that.SessionStore {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("unknown session store %q", that.SessionStore)
	}

	if that.Game.AgentMark != "X" && that.Game.AgentMark != "O" {
		return fmt.Errorf("agent mark must be X or O, got %q", that.Game.AgentMark)
	}

	return nil
}

// NeedsRedis reports whether any configured backend lives in Redis.
func (that *Config) NeedsRedis() bool {
	return that.SessionStore == SessionStoreRedis || that.Table.Source == TableSourceRedis
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
