package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/primavista/lounge-backend/internal/model"
	"github.com/primavista/lounge-backend/internal/repository"
)

// PassengerStore lists passengers with their visit history.
type PassengerStore interface {
	Search(ctx context.Context, query string) ([]repository.PassengerEntries, error)
}

// ExitStore performs the active→exited transition.
type ExitStore interface {
	Exit(ctx context.Context, entryID uint64, exitTime time.Time) (model.LoungeEntry, error)
}

// PassengerHandler serves the passenger directory and the exit operation.
type PassengerHandler struct {
	Passengers PassengerStore
	Entries    ExitStore
}

func NewPassengerHandler(p PassengerStore, e ExitStore) *PassengerHandler {
	return &PassengerHandler{Passengers: p, Entries: e}
}

// List returns passengers that have visited the lounge, newest entries
// first, optionally filtered by ?search_query= on name or flight number.
func (h *PassengerHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	passengers, err := h.Passengers.Search(ctx, c.QueryParam("search_query"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list passengers", "error": err.Error()})
	}

	out := make([]echo.Map, 0, len(passengers))
	for _, p := range passengers {
		entries := make([]echo.Map, 0, len(p.Entries))
		for _, e := range p.Entries {
			var exit interface{}
			if e.ExitTime != nil {
				exit = isoFormat(*e.ExitTime)
			}
			entries = append(entries, echo.Map{
				"id":         e.ID,
				"entry_time": isoFormat(e.EntryTime),
				"exit_time":  exit,
				"status":     e.Status,
			})
		}
		out = append(out, echo.Map{
			"id":             p.ID,
			"name":           p.Name,
			"flight_number":  p.FlightNumber,
			"lounge_entries": entries,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type exitReq struct {
	ExitTime string `json:"exit_time"`
}

// Exit closes a lounge entry.  The exit time defaults to now (UTC); a
// supplied value is accepted as-is, even before the entry time.
func (h *PassengerHandler) Exit(c echo.Context) error {
	entryID, err := strconv.ParseUint(c.Param("entry_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Lounge entry not found"})
	}

	var req exitReq
	_ = c.Bind(&req) // empty body means "exit now"

	exitTime := time.Now().UTC()
	if req.ExitTime != "" {
		t, perr := parseEntryTime(req.ExitTime)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid exit_time format. Use ISO format e.g. YYYY-MM-DDTHH:MM:SS"})
		}
		exitTime = t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.Entries.Exit(ctx, entryID, exitTime)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Lounge entry not found"})
		case errors.Is(err, repository.ErrAlreadyExited):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Passenger already exited"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update lounge entry", "error": err.Error()})
		}
	}

	var exitISO interface{}
	if entry.ExitTime != nil {
		exitISO = isoFormat(*entry.ExitTime)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Passenger exited successfully",
		"lounge_entry": echo.Map{
			"id":           entry.ID,
			"passenger_id": entry.PassengerID,
			"entry_time":   isoFormat(entry.EntryTime),
			"exit_time":    exitISO,
			"status":       entry.Status,
		},
	})
}
