package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/services"
	"github.com/upb/auth-gateway/utils"
	"go.uber.org/zap"
)

func TestHandleListRoles(t *testing.T) {
	roleService := new(MockRoleService)
	h := NewRoleHandler(roleService, zap.NewNop())

	roleService.On("ListRoles", mock.Anything).
		Return([]models.Role{models.RoleAdmin, models.RoleUser}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/roles", nil)
	w := httptest.NewRecorder()
	h.HandleListRoles(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []string{"Admin", "User"}, body.Data)
}

func TestHandleCreateRole(t *testing.T) {
	t.Run("defines a role", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("CreateRole", mock.Anything, models.Role("Auditor")).Return(nil)

		w := postJSON(t, h.HandleCreateRole, "/api/roles", CreateRoleRequest{Name: "Auditor"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		w := postJSON(t, h.HandleCreateRole, "/api/roles", CreateRoleRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		roleService.AssertNotCalled(t, "CreateRole", mock.Anything, mock.Anything)
	})
}

func TestHandleAssignRole(t *testing.T) {
	assignment := RoleAssignmentRequest{Email: "user@example.com", Role: "Admin"}

	t.Run("assigns", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("AssignRole", mock.Anything, "user@example.com", models.RoleAdmin).Return(nil)

		w := postJSON(t, h.HandleAssignRole, "/api/roles/assign", assignment)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role already held maps to conflict", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("AssignRole", mock.Anything, "user@example.com", models.RoleAdmin).
			Return(services.ErrAlreadyInRole)

		w := postJSON(t, h.HandleAssignRole, "/api/roles/assign", assignment)

		assert.Equal(t, http.StatusConflict, w.Code)

		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "User already has this role", body.Message)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("AssignRole", mock.Anything, "user@example.com", models.RoleAdmin).
			Return(services.ErrUserNotFound)

		w := postJSON(t, h.HandleAssignRole, "/api/roles/assign", assignment)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		w := postJSON(t, h.HandleAssignRole, "/api/roles/assign",
			RoleAssignmentRequest{Email: "not-an-email", Role: "Admin"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		roleService.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleRemoveRole(t *testing.T) {
	assignment := RoleAssignmentRequest{Email: "user@example.com", Role: "Admin"}

	t.Run("removes", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("RemoveRole", mock.Anything, "user@example.com", models.RoleAdmin).Return(nil)

		w := postJSON(t, h.HandleRemoveRole, "/api/roles/remove", assignment)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role not held maps to conflict", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("RemoveRole", mock.Anything, "user@example.com", models.RoleAdmin).
			Return(services.ErrNotInRole)

		w := postJSON(t, h.HandleRemoveRole, "/api/roles/remove", assignment)

		assert.Equal(t, http.StatusConflict, w.Code)

		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "User does not have this role", body.Message)
	})

	t.Run("unknown role maps to not found", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("RemoveRole", mock.Anything, "user@example.com", models.RoleAdmin).
			Return(services.ErrRoleNotFound)

		w := postJSON(t, h.HandleRemoveRole, "/api/roles/remove", assignment)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleUserRoles(t *testing.T) {
	t.Run("lists the user's roles", func(t *testing.T) {
		roleService := new(MockRoleService)
		h := NewRoleHandler(roleService, zap.NewNop())

		roleService.On("UserRoles", mock.Anything, "user@example.com").
			Return(models.NewRoleSet("User"), nil)

		r := httptest.NewRequest(http.MethodGet, "/api/roles/user?email=user%40example.com", nil)
		w := httptest.NewRecorder()
		h.HandleUserRoles(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data UserRolesResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body.Data.Email)
		assert.Equal(t, []string{"User"}, body.Data.Roles)
	})

	t.Run("missing email parameter", func(t *testing.T) {
		h := NewRoleHandler(new(MockRoleService), zap.NewNop())

		r := httptest.NewRequest(http.MethodGet, "/api/roles/user", nil)
		w := httptest.NewRecorder()
		h.HandleUserRoles(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
