package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/primavista/lounge-backend/internal/config"
	"github.com/primavista/lounge-backend/internal/model"
	"github.com/primavista/lounge-backend/internal/repository"
	"github.com/primavista/lounge-backend/internal/utils"
)

// SettingStore reads and writes the singleton lounge settings row.
type SettingStore interface {
	Get(ctx context.Context) (model.LoungeSetting, error)
	Save(ctx context.Context, s model.LoungeSetting) error
}

// UserAdminStore is the slice of the user repository the admin endpoints
// need.
type UserAdminStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Create(ctx context.Context, username, password, role string, cost int) (uint64, error)
	Update(ctx context.Context, id uint64, username, role, passwordHash string) error
}

// SettingsHandler serves lounge configuration and user management.  The
// router gates every route except GetLounge behind the admin role.
type SettingsHandler struct {
	Cfg      config.Config
	Settings SettingStore
	Users    UserAdminStore
}

func NewSettingsHandler(cfg config.Config, s SettingStore, u UserAdminStore) *SettingsHandler {
	return &SettingsHandler{Cfg: cfg, Settings: s, Users: u}
}

// GetLounge returns the stored settings, or the built-in defaults (without
// an id, unpersisted) when none have been saved yet.  Any authenticated
// user may read settings.
func (h *SettingsHandler) GetLounge(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			d := model.DefaultLoungeSetting()
			return c.JSON(http.StatusOK, echo.Map{
				"lounge_name":           d.LoungeName,
				"lounge_address":        d.LoungeAddress,
				"lounge_capacity":       d.LoungeCapacity,
				"entry_tracking_method": d.EntryTrackingMethod,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load lounge settings", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                    s.ID,
		"lounge_name":           s.LoungeName,
		"lounge_address":        s.LoungeAddress,
		"lounge_capacity":       s.LoungeCapacity,
		"entry_tracking_method": s.EntryTrackingMethod,
	})
}

type updateSettingsReq struct {
	LoungeName          *string `json:"lounge_name"`
	LoungeAddress       *string `json:"lounge_address"`
	LoungeCapacity      *int    `json:"lounge_capacity"`
	EntryTrackingMethod *string `json:"entry_tracking_method"`
}

// UpdateLounge applies a partial update to the settings row, creating it on
// first write.  Absent fields keep their current (or default) values.
func (h *SettingsHandler) UpdateLounge(c echo.Context) error {
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Settings.Get(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update lounge settings", "error": err.Error()})
		}
		s = model.DefaultLoungeSetting() // first write creates the row
	}
	if req.LoungeName != nil {
		s.LoungeName = *req.LoungeName
	}
	if req.LoungeAddress != nil {
		s.LoungeAddress = *req.LoungeAddress
	}
	if req.LoungeCapacity != nil {
		s.LoungeCapacity = *req.LoungeCapacity
	}
	if req.EntryTrackingMethod != nil {
		s.EntryTrackingMethod = *req.EntryTrackingMethod
	}

	if err := h.Settings.Save(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update lounge settings", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Lounge settings updated successfully"})
}

// ListUsers returns every account without password material.
func (h *SettingsHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list users", "error": err.Error()})
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{"id": u.ID, "username": u.Username, "role": u.Role})
	}
	return c.JSON(http.StatusOK, out)
}

type createUserReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions an account with the given role, defaulting to staff.
func (h *SettingsHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}
	role := req.Role
	if role == "" {
		role = model.RoleStaff
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Username, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create user", "error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"user":    echo.Map{"id": id, "username": req.Username, "role": role},
	})
}

type updateUserReq struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// UpdateUser rewrites username and role (absent fields keep the current
// value) and resets the password only when a non-empty one is supplied.
func (h *SettingsHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update user", "error": err.Error()})
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Password != nil && *req.Password != "" {
		hash, herr := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if herr != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update user", "error": herr.Error()})
		}
		u.PasswordHash = hash
	}

	if err := h.Users.Update(ctx, u.ID, u.Username, u.Role, u.PasswordHash); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update user", "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user":    echo.Map{"id": u.ID, "username": u.Username, "role": u.Role},
	})
}
