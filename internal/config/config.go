package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	AuthSecret       string
	TokenTTL         time.Duration
	LogLevel         string
	KafkaBrokers     []string
	OrderEventsTopic string
	OTLPEndpoint     string
	AutoMigrate      bool
	ReservationTTL   time.Duration
	SweepInterval    time.Duration
	SweepBatch       int
	WorkerPoolSize   int
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress = ":8080"
	// DefaultAuthSecret is only suitable for local development.
	DefaultAuthSecret       = "change-me-in-production"
	defaultTokenTTL         = 24 * time.Hour
	defaultLogLevel         = "info"
	defaultOrderEventsTopic = "order-events"
	defaultReservationTTL   = 72 * time.Hour
	defaultSweepInterval    = time.Minute
	defaultSweepBatch       = 32
	defaultWorkerPoolSize   = 4
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		AuthSecret:       getString(lookup, "AUTH_SECRET", DefaultAuthSecret),
		TokenTTL:         getDuration(lookup, "AUTH_TOKEN_TTL", defaultTokenTTL),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
		OrderEventsTopic: getString(lookup, "ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),
		OTLPEndpoint:     getString(lookup, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		AutoMigrate:      getBool(lookup, "AUTO_MIGRATE", true),
		ReservationTTL:   getDuration(lookup, "RESERVATION_TTL", defaultReservationTTL),
		SweepInterval:    getDuration(lookup, "RESERVATION_SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatch:       getInt(lookup, "RESERVATION_SWEEP_BATCH", defaultSweepBatch),
		WorkerPoolSize:   getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("marketplace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr         = getString(lookup, "KAFKA_BROKERS", "")
		tokenTTLStr        = cfg.TokenTTL.String()
		reservationTTLStr  = cfg.ReservationTTL.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")
	fs.StringVar(&cfg.OrderEventsTopic, "events-topic", cfg.OrderEventsTopic, "Kafka topic for order events")
	fs.BoolVar(&cfg.AutoMigrate, "auto-migrate", cfg.AutoMigrate, "Apply database migrations on start")
	fs.StringVar(&reservationTTLStr, "reservation-ttl", reservationTTLStr, "Age after which open orders are expired, 0 disables")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between reservation sweeps")
	fs.IntVar(&cfg.SweepBatch, "sweep-batch", cfg.SweepBatch, "Maximum orders expired per sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweeper workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ReservationTTL, err = time.ParseDuration(reservationTTLStr); err != nil {
		return nil, fmt.Errorf("invalid reservation ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatch <= 0 {
		cfg.SweepBatch = defaultSweepBatch
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ReservationTTL < 0 {
		cfg.ReservationTTL = 0
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.OrderEventsTopic == "" {
		cfg.OrderEventsTopic = defaultOrderEventsTopic
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("auth secret must not be empty")
	}

	return cfg, nil
}

// EventsEnabled reports whether order events are published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// SweeperEnabled reports whether stale reservations are expired in the background.
func (c *Config) SweeperEnabled() bool {
	return c.ReservationTTL > 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
