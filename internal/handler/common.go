package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// isoTimeLayout is the timezone-less timestamp form accepted alongside
// RFC3339 on check-in and exit, e.g. "2025-06-01T14:30:00".
const isoTimeLayout = "2006-01-02T15:04:05"

// parseEntryTime parses a caller-supplied timestamp.  RFC3339 is tried
// first; a bare ISO timestamp without offset is read as UTC.
func parseEntryTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(isoTimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// isoFormat renders timestamps the way the API exposes them.
func isoFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// dayBounds returns the inclusive [00:00:00, 23:59:59.999…] window of the
// UTC calendar day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
