package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tunegen/internal/identity"
	"tunegen/internal/logger"
	"tunegen/internal/middleware"
	"tunegen/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type staticVerifier struct {
	calls int
}

func (s *staticVerifier) VerifyToken(ctx context.Context, token string) (*identity.Identity, error) {
	s.calls++
	if token == "good" {
		return &identity.Identity{Subject: "user-1"}, nil
	}
	return nil, identity.ErrInvalidToken
}

func buildMux(verifier identity.Verifier, trackSvc *mockTrackService) *http.ServeMux {
	v := validator.New(validator.WithRequiredStructEnabled())
	log := logger.New()
	authMw := middleware.Auth(verifier, log)

	mux := http.NewServeMux()
	NewTrackHandler(trackSvc, v, log).RegisterRoutes(mux, authMw)
	NewProfileHandler(&mockUserService{user: &model.User{UserID: "user-1"}}, v, log).RegisterRoutes(mux, authMw)
	return mux
}

func TestRoutes_AuthGate(t *testing.T) {
	t.Run("protected routes reject missing tokens before any service work", func(t *testing.T) {
		verifier := &staticVerifier{}
		svc := &mockTrackService{}
		mux := buildMux(verifier, svc)

		for _, target := range []struct {
			method, path string
		}{
			{http.MethodGet, "/api/tracks"},
			{http.MethodPost, "/api/tracks/trk-1/like"},
			{http.MethodDelete, "/api/tracks/trk-1"},
			{http.MethodGet, "/api/profile"},
		} {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(target.method, target.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", target.method, target.path)
		}
		assert.Zero(t, verifier.calls)
		assert.Empty(t, svc.deleted)
		assert.Zero(t, svc.toggles)
	})

	t.Run("feed needs no token", func(t *testing.T) {
		mux := buildMux(&staticVerifier{}, &mockTrackService{})
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/feed", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("valid token flows through to the handler", func(t *testing.T) {
		mux := buildMux(&staticVerifier{}, &mockTrackService{})
		req := httptest.NewRequest(http.MethodGet, "/api/tracks", nil)
		req.Header.Set("Authorization", "Bearer good")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
