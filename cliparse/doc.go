// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

Loading happens in three steps so cobra can own flag parsing:

	cfg, err := cliparse.LoadEnv()
	cfg.RegisterFlags(rootCmd.PersistentFlags())
	// later, once flags are parsed
	err = cfg.Validate()

# Sources

Values are resolved in this order, later sources winning:

 1. env-default tags (PORT=8000, LOG_LEVEL=info)
 2. a .env file in the working directory (github.com/joho/godotenv)
 3. the YAML file named by CONFIG_PATH, or the process environment
    (github.com/ilyakaznacheev/cleanenv)
 4. command-line flags (github.com/spf13/pflag)

# CLI Flags

	-p, --port          Server port
	-d, --database-url  Database URL
	-t, --database-type Database type (sqlite or postgres)
	--admin-key         Admin API key
	--log-level         debug, info, warn or error

# Environment Variables

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → --admin-key
	LOG_LEVEL     → --log-level

# Validation

DATABASE_URL must be provided. When DATABASE_TYPE is empty it is inferred:
postgres:// and postgresql:// URLs select PostgreSQL, anything else SQLite.
An empty ADMIN_KEY is allowed and disables the admin API.
*/
package cliparse
