package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/ballot-box/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TxTimeout    time.Duration
	MaxOpenConns int
	EnvFile      string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballot-box", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")

	// Store tuning
	fs.DurationVar(&cfg.TxTimeout, "tx-timeout", 0, "Upper bound on a single transaction")
	fs.IntVar(&cfg.MaxOpenConns, "max-conns", 0, "Maximum open database connections")

	fs.StringVar(&cfg.EnvFile, "env", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the file
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	_, dialect, err := db.Driver(cfg.DatabaseType)
	if err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if dialect != db.SQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:ballot.db"
	}

	if cfg.TxTimeout == 0 {
		if s := os.Getenv("TX_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid TX_TIMEOUT env variable")
			}
			cfg.TxTimeout = d
		} else {
			cfg.TxTimeout = 5 * time.Second
		}
	}
	if cfg.TxTimeout < 0 {
		return Config{}, errors.New("transaction timeout must be positive")
	}

	if cfg.MaxOpenConns == 0 {
		if s := os.Getenv("DB_MAX_OPEN_CONNS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid DB_MAX_OPEN_CONNS env variable")
			}
			cfg.MaxOpenConns = n
		} else {
			cfg.MaxOpenConns = 10
		}
	}

	return cfg, nil
}
