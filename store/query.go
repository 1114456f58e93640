// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"strconv"
	"strings"
)

// where accumulates AND-ed conditions with numbered placeholders, so the same
// query text runs on PostgreSQL and SQLite.
type where struct {
	chunks []string
	args   []interface{}
}

// arg registers a value and returns its placeholder.
func (w *where) arg(v interface{}) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *where) add(cond string) {
	w.chunks = append(w.chunks, cond)
}

func (w *where) String() string {
	if len(w.chunks) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.chunks, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
