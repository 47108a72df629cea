package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ReportStore provides the per-day entry counts behind the usage report.
type ReportStore interface {
	DailyCounts(ctx context.Context, start, end time.Time) (map[string]int, error)
}

// ReportHandler serves the lounge usage report.
type ReportHandler struct {
	Entries ReportStore
	Now     func() time.Time
}

func NewReportHandler(entries ReportStore) *ReportHandler {
	return &ReportHandler{Entries: entries, Now: time.Now}
}

const dateLayout = "2006-01-02"

// dayCount is one bucket of the usage report.
type dayCount struct {
	Date         string `json:"date"`
	TotalEntries int    `json:"total_entries"`
}

// LoungeUsage reports entries per calendar day over a date range.  The range
// comes from explicit start_date/end_date params or from date_range
// ("last_7_days", "last_30_days"); unknown range values silently fall back
// to the 7-day window while "specific_month" is rejected outright, both as
// the frontend has always expected.  Every day in the range appears in the
// output, zero-filled, ascending.
func (h *ReportHandler) LoungeUsage(c echo.Context) error {
	rangeKind := c.QueryParam("date_range")
	if rangeKind == "" {
		rangeKind = "last_7_days"
	}

	end := h.Now().UTC().Truncate(24 * time.Hour)
	if s := c.QueryParam("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid end_date format. Use YYYY-MM-DD."})
		}
		end = t
	}

	var start time.Time
	if s := c.QueryParam("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid start_date format. Use YYYY-MM-DD."})
		}
		start = t
	} else {
		var ok bool
		start, ok = rangeStart(rangeKind, end)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Specific month not fully implemented, use start/end dates or other ranges."})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	queryStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	queryEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).
		Add(24*time.Hour - time.Nanosecond)

	counts, err := h.Entries.DailyCounts(ctx, queryStart, queryEnd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to build usage report", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"report_name": "Lounge Usage Over Time",
		"start_date":  start.Format(dateLayout),
		"end_date":    end.Format(dateLayout),
		"data":        fillDailyCounts(start, end, counts),
	})
}

// rangeStart derives the report start date from the range kind, relative to
// the end date.  ok is false only for "specific_month", which was never
// implemented; any other unknown value falls back to the 7-day window.
func rangeStart(rangeKind string, end time.Time) (start time.Time, ok bool) {
	switch rangeKind {
	case "last_30_days":
		return end.AddDate(0, 0, -29), true
	case "specific_month":
		return time.Time{}, false
	default: // "last_7_days" and anything unrecognized
		return end.AddDate(0, 0, -6), true
	}
}

// fillDailyCounts produces exactly one bucket per calendar day in the
// inclusive [start, end] range, ascending, taking counts from the map and
// zero for absent days.
func fillDailyCounts(start, end time.Time, counts map[string]int) []dayCount {
	out := make([]dayCount, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		out = append(out, dayCount{Date: key, TotalEntries: counts[key]})
	}
	return out
}
