package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/primavista/lounge-backend/internal/repository"
)

// recentEntriesLimit caps the dashboard activity feed.
const recentEntriesLimit = 10

// DashboardStore provides the aggregates behind the dashboard.
type DashboardStore interface {
	CountActive(ctx context.Context) (int, error)
	CountEntriesBetween(ctx context.Context, start, end time.Time) (int, error)
	CompletedStaysBetween(ctx context.Context, start, end time.Time) ([]repository.StayWindow, error)
	Recent(ctx context.Context, limit int) ([]repository.EntrySummary, error)
}

// DashboardHandler serves occupancy statistics and the recent activity feed.
type DashboardHandler struct {
	Entries DashboardStore
	// Now is the clock used for "today"; tests override it.
	Now func() time.Time
}

func NewDashboardHandler(entries DashboardStore) *DashboardHandler {
	return &DashboardHandler{Entries: entries, Now: time.Now}
}

// Stats reports current occupancy (all active entries, any day), today's
// entry count, and the mean stay over visits completed today.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	todayStart, todayEnd := dayBounds(h.Now())

	occupancy, err := h.Entries.CountActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load dashboard stats", "error": err.Error()})
	}
	entriesToday, err := h.Entries.CountEntriesBetween(ctx, todayStart, todayEnd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load dashboard stats", "error": err.Error()})
	}
	stays, err := h.Entries.CompletedStaysBetween(ctx, todayStart, todayEnd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load dashboard stats", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"current_occupancy":             occupancy,
		"total_entries_today":           entriesToday,
		"average_stay_duration_minutes": averageStayMinutes(stays),
	})
}

// RecentEntries returns the ten most recent lounge entries, newest first.
func (h *DashboardHandler) RecentEntries(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Entries.Recent(ctx, recentEntriesLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load recent entries", "error": err.Error()})
	}
	out := make([]echo.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, echo.Map{
			"id":             e.ID,
			"passenger_name": e.PassengerName,
			"flight_number":  e.FlightNumber,
			"entry_time":     isoFormat(e.EntryTime),
			"status":         e.Status,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// averageStayMinutes is the mean (exit − entry) duration in minutes rounded
// to two decimals, 0 when no stays are given.  Durations are taken as-is:
// an exit recorded before its entry contributes negatively.
func averageStayMinutes(stays []repository.StayWindow) float64 {
	if len(stays) == 0 {
		return 0
	}
	var totalSeconds float64
	for _, s := range stays {
		totalSeconds += s.ExitTime.Sub(s.EntryTime).Seconds()
	}
	minutes := totalSeconds / float64(len(stays)) / 60
	return math.Round(minutes*100) / 100
}
