package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tunegen/internal/apperror"
	"tunegen/internal/logger"
	"tunegen/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	user      *model.User
	lastPatch *model.ProfilePatch
}

func (m *mockUserService) Get(ctx context.Context, userID string) (*model.User, error) {
	if m.user == nil {
		return nil, apperror.NotFound("user profile not found")
	}
	return m.user, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (*model.User, error) {
	m.lastPatch = &patch
	if patch.DisplayName != nil {
		m.user.DisplayName = *patch.DisplayName
	}
	return m.user, nil
}

func newProfileHandler(svc *mockUserService) *ProfileHandler {
	return NewProfileHandler(svc, validator.New(validator.WithRequiredStructEnabled()), logger.New())
}

func TestProfileHandler_Get(t *testing.T) {
	t.Run("returns the caller's row with the plan limit", func(t *testing.T) {
		svc := &mockUserService{user: &model.User{UserID: "user-1", DisplayName: "Ada", Plan: model.PlanPro, TotalPoints: 40}}
		h := newProfileHandler(svc)

		rr := httptest.NewRecorder()
		h.handleProfile(rr, authedRequest(http.MethodGet, "/api/profile", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Ada", resp["display_name"])
		assert.Equal(t, float64(25), resp["daily_limit"])
	})

	t.Run("missing row is a 404", func(t *testing.T) {
		h := newProfileHandler(&mockUserService{})
		rr := httptest.NewRecorder()
		h.handleProfile(rr, authedRequest(http.MethodGet, "/api/profile", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestProfileHandler_Patch(t *testing.T) {
	t.Run("credit and identity fields in the payload are ignored", func(t *testing.T) {
		svc := &mockUserService{user: &model.User{UserID: "user-1", DisplayName: "Ada", Plan: model.PlanFree, TotalPoints: 3}}
		h := newProfileHandler(svc)

		body := []byte(`{"display_name":"Grace","total_points":9999,"id":"someone-else","email":"evil@x.com"}`)
		rr := httptest.NewRecorder()
		h.handleProfile(rr, authedRequest(http.MethodPatch, "/api/profile", body))

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, svc.lastPatch)
		require.NotNil(t, svc.lastPatch.DisplayName)
		assert.Equal(t, "Grace", *svc.lastPatch.DisplayName)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Grace", resp["display_name"])
		assert.Equal(t, float64(3), resp["total_points"])
	})

	t.Run("empty display name fails validation", func(t *testing.T) {
		svc := &mockUserService{user: &model.User{UserID: "user-1"}}
		h := newProfileHandler(svc)

		rr := httptest.NewRecorder()
		h.handleProfile(rr, authedRequest(http.MethodPatch, "/api/profile", []byte(`{"display_name":""}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, svc.lastPatch)
	})
}
