package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/primavista/lounge-backend/internal/model"
	"github.com/primavista/lounge-backend/internal/repository"
	"github.com/primavista/lounge-backend/internal/utils"
)

type mockSettingStore struct {
	getFunc  func(ctx context.Context) (model.LoungeSetting, error)
	saveFunc func(ctx context.Context, s model.LoungeSetting) error
}

func (m *mockSettingStore) Get(ctx context.Context) (model.LoungeSetting, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return model.LoungeSetting{}, sql.ErrNoRows
}

func (m *mockSettingStore) Save(ctx context.Context, s model.LoungeSetting) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, s)
	}
	return nil
}

type mockUserAdminStore struct {
	listFunc    func(ctx context.Context) ([]model.User, error)
	getByIDFunc func(ctx context.Context, id uint64) (model.User, error)
	createFunc  func(ctx context.Context, username, password, role string, cost int) (uint64, error)
	updateFunc  func(ctx context.Context, id uint64, username, role, passwordHash string) error
}

func (m *mockUserAdminStore) List(ctx context.Context) ([]model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserAdminStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return model.User{}, sql.ErrNoRows
}

func (m *mockUserAdminStore) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, username, password, role, cost)
	}
	return 1, nil
}

func (m *mockUserAdminStore) Update(ctx context.Context, id uint64, username, role, passwordHash string) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, username, role, passwordHash)
	}
	return nil
}

func getRequest(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetLoungeSettings(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, &mockUserAdminStore{})
		c, rec := getRequest(t, "/settings/lounge")
		if err := h.GetLounge(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["lounge_name"] != "Prima Vista Lounge" {
			t.Errorf("lounge_name = %v", body["lounge_name"])
		}
		if body["entry_tracking_method"] != "manual" {
			t.Errorf("entry_tracking_method = %v", body["entry_tracking_method"])
		}
		if _, ok := body["id"]; ok {
			t.Error("defaults must not carry an id")
		}
	})

	t.Run("stored row", func(t *testing.T) {
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{
			getFunc: func(ctx context.Context) (model.LoungeSetting, error) {
				return model.LoungeSetting{ID: 1, LoungeName: "Sky Club", LoungeAddress: "Terminal 2", LoungeCapacity: 80, EntryTrackingMethod: "automatic"}, nil
			},
		}, &mockUserAdminStore{})
		c, rec := getRequest(t, "/settings/lounge")
		if err := h.GetLounge(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["id"].(float64) != 1 || body["lounge_capacity"].(float64) != 80 {
			t.Errorf("unexpected body: %v", body)
		}
	})
}

func TestUpdateLoungeSettings(t *testing.T) {
	t.Run("partial update keeps absent fields", func(t *testing.T) {
		var saved model.LoungeSetting
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{
			getFunc: func(ctx context.Context) (model.LoungeSetting, error) {
				return model.LoungeSetting{ID: 1, LoungeName: "Sky Club", LoungeAddress: "Terminal 2", LoungeCapacity: 80, EntryTrackingMethod: "automatic"}, nil
			},
			saveFunc: func(ctx context.Context, s model.LoungeSetting) error {
				saved = s
				return nil
			},
		}, &mockUserAdminStore{})

		c, rec := postJSON(t, "/settings/lounge", `{"lounge_capacity":120}`)
		if err := h.UpdateLounge(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if saved.LoungeCapacity != 120 {
			t.Errorf("capacity = %d, want 120", saved.LoungeCapacity)
		}
		if saved.LoungeName != "Sky Club" || saved.EntryTrackingMethod != "automatic" {
			t.Errorf("absent fields were overwritten: %+v", saved)
		}
	})

	t.Run("first write starts from defaults", func(t *testing.T) {
		var saved model.LoungeSetting
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{
			saveFunc: func(ctx context.Context, s model.LoungeSetting) error {
				saved = s
				return nil
			},
		}, &mockUserAdminStore{})

		c, rec := postJSON(t, "/settings/lounge", `{"lounge_name":"North Star"}`)
		if err := h.UpdateLounge(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if saved.ID != 0 {
			t.Errorf("id = %d, want 0 for a fresh row", saved.ID)
		}
		if saved.LoungeName != "North Star" {
			t.Errorf("lounge_name = %q", saved.LoungeName)
		}
		if saved.EntryTrackingMethod != "manual" {
			t.Errorf("tracking method = %q, want default manual", saved.EntryTrackingMethod)
		}
	})
}

func TestListUsersOmitsPasswordMaterial(t *testing.T) {
	h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, &mockUserAdminStore{
		listFunc: func(ctx context.Context) ([]model.User, error) {
			return []model.User{
				{ID: 1, Username: "alice", PasswordHash: "$2a$bogus", Role: "admin"},
			}, nil
		},
	})
	c, rec := getRequest(t, "/settings/users")
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body) != 1 || body[0]["username"] != "alice" {
		t.Fatalf("unexpected body: %v", body)
	}
	for _, k := range []string{"password", "password_hash"} {
		if _, ok := body[0][k]; ok {
			t.Errorf("response leaked %q", k)
		}
	}
}

func TestCreateUser(t *testing.T) {
	t.Run("role defaults to staff", func(t *testing.T) {
		var gotRole string
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, &mockUserAdminStore{
			createFunc: func(ctx context.Context, username, password, role string, cost int) (uint64, error) {
				gotRole = role
				return 5, nil
			},
		})
		c, rec := postJSON(t, "/settings/users", `{"username":"bob","password":"pw"}`)
		if err := h.CreateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if gotRole != model.RoleStaff {
			t.Errorf("role = %q, want staff", gotRole)
		}
	})

	t.Run("explicit admin role", func(t *testing.T) {
		var gotRole string
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, &mockUserAdminStore{
			createFunc: func(ctx context.Context, username, password, role string, cost int) (uint64, error) {
				gotRole = role
				return 6, nil
			},
		})
		c, rec := postJSON(t, "/settings/users", `{"username":"carol","password":"pw","role":"admin"}`)
		if err := h.CreateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if gotRole != model.RoleAdmin {
			t.Errorf("role = %q, want admin", gotRole)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, &mockUserAdminStore{
			createFunc: func(ctx context.Context, username, password, role string, cost int) (uint64, error) {
				return 0, repository.ErrUsernameExists
			},
		})
		c, rec := postJSON(t, "/settings/users", `{"username":"bob","password":"pw"}`)
		if err := h.CreateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestUpdateUser(t *testing.T) {
	existingHash, err := utils.HashPassword("old-pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	existing := model.User{ID: 2, Username: "bob", PasswordHash: existingHash, Role: model.RoleStaff}

	newStore := func(captured *struct {
		username, role, hash string
	}) *mockUserAdminStore {
		return &mockUserAdminStore{
			getByIDFunc: func(ctx context.Context, id uint64) (model.User, error) {
				if id != existing.ID {
					return model.User{}, sql.ErrNoRows
				}
				return existing, nil
			},
			updateFunc: func(ctx context.Context, id uint64, username, role, passwordHash string) error {
				captured.username, captured.role, captured.hash = username, role, passwordHash
				return nil
			},
		}
	}

	t.Run("absent fields keep current values", func(t *testing.T) {
		var captured struct{ username, role, hash string }
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, newStore(&captured))
		c, rec := putJSON(t, "/settings/users/2", `{"role":"admin"}`, "id", "2")
		if err := h.UpdateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if captured.username != "bob" || captured.role != "admin" {
			t.Errorf("stored %q/%q", captured.username, captured.role)
		}
		if captured.hash != existingHash {
			t.Error("password hash changed without a new password")
		}
	})

	t.Run("empty password keeps current hash", func(t *testing.T) {
		var captured struct{ username, role, hash string }
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, newStore(&captured))
		c, rec := putJSON(t, "/settings/users/2", `{"password":""}`, "id", "2")
		if err := h.UpdateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.hash != existingHash {
			t.Error("empty password must not rehash")
		}
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		var captured struct{ username, role, hash string }
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, newStore(&captured))
		c, rec := putJSON(t, "/settings/users/2", `{"password":"new-pw"}`, "id", "2")
		if err := h.UpdateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.hash == existingHash {
			t.Error("hash unchanged after password update")
		}
		if !utils.VerifyPassword(captured.hash, "new-pw") {
			t.Error("stored hash does not verify the new password")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		var captured struct{ username, role, hash string }
		h := NewSettingsHandler(testAuthConfig(), &mockSettingStore{}, newStore(&captured))
		c, rec := putJSON(t, "/settings/users/99", `{"role":"admin"}`, "id", "99")
		if err := h.UpdateUser(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp["message"] != "User not found" {
			t.Errorf("message = %q", resp["message"])
		}
	})
}
