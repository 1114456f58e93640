// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the premios command: a small polls site where visitors
see recently published questions, vote on one of their choices and view the
tallies, plus a JSON administration API.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=premios.db go run .

Or with flags:

	go run . serve -p 8000 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (inferred from the URL)
  - ADMIN_KEY (--admin-key): enables /admin when set
  - LOG_LEVEL (--log-level): debug, info, warn, error (default: info)
  - CONFIG_PATH: YAML file read instead of the environment

A .env file in the working directory is loaded first when present.

# Commands

	premios serve                       Run the HTTP server (default)
	premios migrate                     Create the schema
	premios createquestion --text T --minutes -60 --choice A --choice B
	premios loaddata polls.yaml ...     Load YAML fixtures
	premios genkey                      Print a random admin key
	premios version

# Graceful Shutdown

SIGINT and SIGTERM stop accepting connections and let in-flight requests
finish for up to ten seconds.
*/
package main
