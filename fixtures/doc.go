// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package fixtures loads questions and choices from YAML files, used by the
// loaddata command to seed a database.
package fixtures
