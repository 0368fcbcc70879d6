package config

import (
	"time"

	pkgconfig "github.com/weiawesome/wes-io-live/uid-service/pkg/config"
)

type Config struct {
	Server    ServerConfig
	GRPC      GRPCConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Ledger    LedgerConfig
	Snowflake SnowflakeConfig
	Batch     BatchConfig
	Log       LogConfig
	Profiles  map[string]ProfileConfig `mapstructure:"profiles"`
}

type ServerConfig struct {
	Host string
	Port int
}

type GRPCConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// Ledger backends.
const (
	LedgerBackendRedis    = "redis"
	LedgerBackendDatabase = "database"
)

type LedgerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Backend     string        `mapstructure:"backend"`
	Prefix      string        `mapstructure:"prefix"`
	TTL         time.Duration `mapstructure:"ttl"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type SnowflakeConfig struct {
	MachineID int64 `mapstructure:"machine_id"`
	Epoch     int64
}

type BatchConfig struct {
	MaxCount int `mapstructure:"max_count"`
	// MaxBitStrength caps custom IDs requested through POST /api/v1/ids.
	MaxBitStrength int `mapstructure:"max_bit_strength"`
}

type LogConfig struct {
	Level string
}

// ProfileConfig describes one named ID profile. Alphabet is left untyped so
// a misconfigured value is reported by the alphabet resolver instead of the
// decoder.
type ProfileConfig struct {
	Kind        string `mapstructure:"kind"`
	Alphabet    any    `mapstructure:"alphabet"`
	BitStrength *int   `mapstructure:"bit_strength"`
	Length      *int   `mapstructure:"length"`
	Unique      bool   `mapstructure:"unique"`
}

// DefaultProfiles are available unless the config file overrides them.
var DefaultProfiles = map[string]any{
	"default":     map[string]any{"kind": "random", "alphabet": "base58", "bit_strength": 128},
	"session":     map[string]any{"kind": "random", "alphabet": "base62", "bit_strength": 256, "unique": true},
	"cookie":      map[string]any{"kind": "random", "alphabet": "base71", "length": 32},
	"correlation": map[string]any{"kind": "random", "alphabet": "hex16", "bit_strength": 64},
	"short":       map[string]any{"kind": "random", "alphabet": "lower36", "length": 8},
	"uuid":        map[string]any{"kind": "uuid"},
	"ulid":        map[string]any{"kind": "ulid"},
	"ksuid":       map[string]any{"kind": "ksuid"},
	"nanoid":      map[string]any{"kind": "nanoid", "length": 21},
	"cuid2":       map[string]any{"kind": "cuid2", "length": 24},
	"snowflake":   map[string]any{"kind": "snowflake"},
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50053)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "uid_service")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/uid.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("ledger.enabled", false)
	v.SetDefault("ledger.backend", LedgerBackendRedis)
	v.SetDefault("ledger.prefix", "uid")
	v.SetDefault("ledger.ttl", 24*time.Hour)
	v.SetDefault("ledger.max_attempts", 3)
	v.SetDefault("snowflake.machine_id", 1)
	v.SetDefault("snowflake.epoch", 1704067200000)
	v.SetDefault("batch.max_count", 1000)
	v.SetDefault("batch.max_bit_strength", 4096)
	v.SetDefault("log.level", "info")
	v.SetDefault("profiles", DefaultProfiles)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("grpc.port", "GRPC_PORT")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("ledger.enabled", "LEDGER_ENABLED")
	v.BindEnv("ledger.backend", "LEDGER_BACKEND")
	v.BindEnv("ledger.ttl", "LEDGER_TTL")
	v.BindEnv("snowflake.machine_id", "SNOWFLAKE_MACHINE_ID")
	v.BindEnv("batch.max_bit_strength", "BATCH_MAX_BIT_STRENGTH")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
