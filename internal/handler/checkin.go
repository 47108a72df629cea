package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/primavista/lounge-backend/internal/queue"
	"github.com/primavista/lounge-backend/internal/repository"
)

// CheckinStore performs the transactional check-in.
type CheckinStore interface {
	CheckIn(ctx context.Context, name, flight string, entryTime time.Time) (repository.EntrySummary, error)
}

// CheckinHandler records lounge check-ins and announces them on the event
// queue.  Publish may be nil, in which case events are skipped.
type CheckinHandler struct {
	Entries CheckinStore
	Publish func(ctx context.Context, ev queue.CheckinEvent) error
}

func NewCheckinHandler(entries CheckinStore, publish func(context.Context, queue.CheckinEvent) error) *CheckinHandler {
	return &CheckinHandler{Entries: entries, Publish: publish}
}

type checkinReq struct {
	PassengerName string `json:"passenger_name"`
	FlightNumber  string `json:"flight_number"`
	EntryTime     string `json:"entry_time"`
}

// CheckIn resolves or creates the passenger and opens a new active entry.
// entry_time defaults to now (UTC) and accepts RFC3339 or a bare ISO
// timestamp when supplied.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Passenger name and flight number are required"})
	}
	if req.PassengerName == "" || req.FlightNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Passenger name and flight number are required"})
	}

	entryTime := time.Now().UTC()
	if req.EntryTime != "" {
		t, err := parseEntryTime(req.EntryTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid entry_time format. Use ISO format e.g. YYYY-MM-DDTHH:MM:SS"})
		}
		entryTime = t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.Entries.CheckIn(ctx, req.PassengerName, req.FlightNumber, entryTime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to check-in passenger", "error": err.Error()})
	}

	if h.Publish != nil {
		ev := queue.CheckinEvent{
			EntryID:       entry.ID,
			PassengerName: entry.PassengerName,
			FlightNumber:  entry.FlightNumber,
			EntryTime:     isoFormat(entry.EntryTime),
			CheckedInAt:   isoFormat(time.Now()),
		}
		// Best effort: the check-in already committed, a broker outage must
		// not fail the request.
		go func() {
			pctx, pcancel := context.WithTimeout(context.Background(), dbTimeout)
			defer pcancel()
			_ = h.Publish(pctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Passenger checked in successfully",
		"lounge_entry": echo.Map{
			"id":             entry.ID,
			"passenger_name": entry.PassengerName,
			"flight_number":  entry.FlightNumber,
			"entry_time":     isoFormat(entry.EntryTime),
			"status":         entry.Status,
		},
	})
}
