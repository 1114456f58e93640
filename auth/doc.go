// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin API.

# Admin Keys

The server is configured with a single admin key (ADMIN_KEY). Generate one
with the genkey command or directly:

	key, err := auth.GenerateAdminKey()

Keys are 24 random bytes, URL-safe base64 encoded without padding.

# Validation

Admin requests send the key in the X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey)

Comparison is constant time. An empty configured key never validates.
*/
package auth
