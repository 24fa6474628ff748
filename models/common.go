package models

import (
	"time"
)

// Common date helpers used by the audit filter and report paths.

// FormatFechaHora formats a timestamp the way the report displays it
func FormatFechaHora(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

// FormatFecha formats a date as dd/mm/yyyy
func FormatFecha(t time.Time) string {
	return t.Format("02/01/2006")
}

// ParseFecha parses a date from filter input, accepting RFC3339 timestamps
// and bare YYYY-MM-DD dates. Returns nil on anything it cannot parse, so
// malformed filter input degrades to "no bound" instead of failing.
func ParseFecha(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
