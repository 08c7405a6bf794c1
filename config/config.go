package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Booking  Booking  `envconfig:"BOOKING"`
	Cache    Cache    `envconfig:"CACHE"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	Port     string `envconfig:"PORT"      default:"3000"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string      `envconfig:"NAME"     default:"reserva"`
	Timezone    string      `envconfig:"TIMEZONE"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
}

type CORS struct {
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Content-Type,Authorization"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,DELETE"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"   default:"*"`
	Enable           bool     `envconfig:"ENABLE"            default:"true"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

// Booking is the bookable window of a day. Availability lists one slot per
// hour from OpenHour to CloseHour, both included.
type Booking struct {
	OpenHour  int `envconfig:"OPEN_HOUR"  default:"6"`
	CloseHour int `envconfig:"CLOSE_HOUR" default:"19"`
}

type Cache struct {
	Redis struct {
		Primary struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	TTL int `envconfig:"TTL" default:"60"`
}

type DB struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

type Postgres struct {
	MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
	RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
	MigrationPath  string `envconfig:"MIGRATION_PATH"  default:"migrations/postgres"`
	AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
	Prefix         string `envconfig:"PREFIX"`
	Read           Node   `envconfig:"READ"`
	Write          Node   `envconfig:"WRITE"`
}

// Node is one postgres endpoint. Reads and writes may point at different
// servers.
type Node struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type Kafka struct {
	Enable  bool     `envconfig:"ENABLE"`
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC"   default:"reservas"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Load reads the environment into a fresh Config. Variables already set win
// over the ones in the .env file.
func Load(envFile string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(envFile); err != nil {
		log.Warn().Err(err).Str("file", envFile).Msg("env file not loaded, using process environment")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("loading environment: %w", err)
	}

	return cfg, nil
}

func Init() error {
	once.Do(func() {
		conf, loadErr = Load(".env")
		if loadErr == nil {
			log.Info().Str("app", conf.App.Name).Str("env", conf.Server.Env).Msg("configuration loaded")
		}
	})

	return loadErr
}

// Get returns the process configuration, loading it on first use.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize configuration")
	}

	return &conf
}
