// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists questions and choices.

A Store wraps an *sqlx.DB opened by package db and works on both PostgreSQL
and SQLite. Every method takes the request context:

	st := store.New(conn, log)
	latest, err := st.LatestQuestions(ctx, now, models.LatestQuestionsLimit)

Missing rows surface as ErrNotFound, wrapped with the failing operation:

	if errors.Is(err, store.ErrNotFound) {
		// 404
	}

Timestamps are written through Timestamp (UTC, whole seconds).
*/
package store
