// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:ballot.db)
  - TxTimeout: bound on one transaction (default: 5s)
  - MaxOpenConns: connection pool size (default: 10)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--tx-timeout  Transaction timeout
	--max-conns   Pool size
	--env         dotenv file (default .env, "" to skip)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	TX_TIMEOUT        → --tx-timeout
	DB_MAX_OPEN_CONNS → --max-conns

The dotenv file is loaded with github.com/joho/godotenv before the fallback
and never overrides variables that are already set. A missing file is fine.

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - the database type is not sqlite, postgres or pgx
  - a postgres/pgx database has no DATABASE_URL
  - PORT, TX_TIMEOUT or DB_MAX_OPEN_CONNS do not parse
*/
package cliparse
