package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/primavista/lounge-backend/internal/model"
)

// ReservationStore provides reservation persistence.
type ReservationStore interface {
	Create(ctx context.Context, res model.Reservation) (model.Reservation, error)
	List(ctx context.Context, filter string, today time.Time) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (model.Reservation, error)
}

// ReservationHandler serves reservation creation, listing and status updates.
type ReservationHandler struct {
	Reservations ReservationStore
	Now          func() time.Time
}

func NewReservationHandler(r ReservationStore) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Now: time.Now}
}

type createReservationReq struct {
	PassengerName   string `json:"passenger_name"`
	FlightNumber    string `json:"flight_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	NumberOfGuests  *int   `json:"number_of_guests"`
}

// Create books a lounge visit.  The reservation time is truncated to
// hour:minute even when seconds are supplied; guests default to 1 only when
// the field is absent.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields (passenger_name, flight_number, reservation_date, reservation_time)"})
	}
	if req.PassengerName == "" || req.FlightNumber == "" || req.ReservationDate == "" || req.ReservationTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields (passenger_name, flight_number, reservation_date, reservation_time)"})
	}

	date, derr := time.Parse(dateLayout, req.ReservationDate)
	tm, terr := parseReservationTime(req.ReservationTime)
	if derr != nil || terr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date or time format. Use YYYY-MM-DD for date and HH:MM for time."})
	}

	guests := 1
	if req.NumberOfGuests != nil {
		guests = *req.NumberOfGuests
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Reservations.Create(ctx, model.Reservation{
		PassengerName:  req.PassengerName,
		FlightNumber:   req.FlightNumber,
		Date:           date.Format(dateLayout),
		Time:           tm,
		NumberOfGuests: guests,
		Status:         model.ReservationConfirmed,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create reservation", "error": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "Reservation created successfully",
		"reservation": reservationJSON(res),
	})
}

// List returns reservations ordered by date then time, newest first, with
// the optional ?status_filter= semantics (upcoming / past / cancelled;
// anything else lists all).
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reservations, err := h.Reservations.List(ctx, c.QueryParam("status_filter"), h.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list reservations", "error": err.Error()})
	}
	out := make([]echo.Map, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, reservationJSON(r))
	}
	return c.JSON(http.StatusOK, out)
}

type updateStatusReq struct {
	NewStatus string `json:"new_status"`
}

// UpdateStatus overwrites a reservation's status.  Any of the three allowed
// statuses may be set from any other; only membership in the set is checked.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Reservation not found"})
	}

	var req updateStatusReq
	if err := c.Bind(&req); err != nil || req.NewStatus == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "New status is required"})
	}
	if !model.ValidReservationStatus(req.NewStatus) {
		allowed := strings.Join([]string{model.ReservationConfirmed, model.ReservationCancelled, model.ReservationCompleted}, ", ")
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status. Allowed statuses are: " + allowed})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Reservations.UpdateStatus(ctx, id, req.NewStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update reservation status", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Reservation status updated successfully",
		"reservation": echo.Map{
			"id":     res.ID,
			"status": res.Status,
		},
	})
}

// parseReservationTime reads the first two colon-separated components of a
// clock time and renders them as "HH:MM:00".  Seconds in the input are
// deliberately dropped.
func parseReservationTime(s string) (string, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("time out of range %q", s)
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

func reservationJSON(r model.Reservation) echo.Map {
	return echo.Map{
		"id":               r.ID,
		"passenger_name":   r.PassengerName,
		"flight_number":    r.FlightNumber,
		"reservation_date": r.Date,
		"reservation_time": r.Time,
		"number_of_guests": r.NumberOfGuests,
		"status":           r.Status,
	}
}
