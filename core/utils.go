package core

import (
	"strings"
	"time"
)

// DateFormat is the calendar date layout used across all collections.
const DateFormat = "2006-01-02"

// NowFunc is the clock used for "today" computations and generated ids; mockable.
var NowFunc = time.Now

// Today returns the current calendar date as YYYY-MM-DD.
func Today() string {
	return NowFunc().Format(DateFormat)
}

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
