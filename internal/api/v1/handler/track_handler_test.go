package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tunegen/internal/apperror"
	"tunegen/internal/logger"
	"tunegen/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTrackService struct {
	saved      *model.Track
	tracks     []model.Track
	feedItems  []model.FeedItem
	deleteErr  error
	publishErr error
	deleted    []string
	published  []string
	liked      bool
	likes      int
	toggles    int
}

func (m *mockTrackService) Save(ctx context.Context, t *model.Track) (*model.Track, error) {
	t.ID = "trk-1"
	t.CreatedAt = time.Now()
	m.saved = t
	return t, nil
}

func (m *mockTrackService) List(ctx context.Context, userID string) ([]model.Track, error) {
	return m.tracks, nil
}

func (m *mockTrackService) Delete(ctx context.Context, trackID, userID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, trackID)
	return nil
}

func (m *mockTrackService) Publish(ctx context.Context, trackID, userID string) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, trackID)
	return nil
}

func (m *mockTrackService) ToggleLike(ctx context.Context, trackID, userID string) (bool, int, error) {
	m.toggles++
	m.liked = !m.liked
	if m.liked {
		m.likes++
	} else {
		m.likes--
	}
	return m.liked, m.likes, nil
}

func (m *mockTrackService) Feed(ctx context.Context) ([]model.FeedItem, error) {
	return m.feedItems, nil
}

func newTrackHandler(svc *mockTrackService) *TrackHandler {
	return NewTrackHandler(svc, validator.New(validator.WithRequiredStructEnabled()), logger.New())
}

func TestTrackHandler_Create(t *testing.T) {
	t.Run("valid body creates the track for the caller", func(t *testing.T) {
		svc := &mockTrackService{}
		h := newTrackHandler(svc)

		body := []byte(`{"title":"Rain","genre":"Lo-Fi","mood":"Chill","audio_url":"https://cdn/1.mp3"}`)
		rr := httptest.NewRecorder()
		h.handleTracks(rr, authedRequest(http.MethodPost, "/api/tracks", body))

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, svc.saved)
		assert.Equal(t, "user-1", svc.saved.UserID)
	})

	t.Run("missing audio url fails validation", func(t *testing.T) {
		svc := &mockTrackService{}
		h := newTrackHandler(svc)

		body := []byte(`{"title":"Rain","genre":"Lo-Fi","mood":"Chill"}`)
		rr := httptest.NewRecorder()
		h.handleTracks(rr, authedRequest(http.MethodPost, "/api/tracks", body))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Nil(t, svc.saved)
	})
}

func TestTrackHandler_OwnershipErrors(t *testing.T) {
	t.Run("delete of someone else's track returns 403", func(t *testing.T) {
		svc := &mockTrackService{deleteErr: apperror.Forbidden("not your track")}
		h := newTrackHandler(svc)

		rr := httptest.NewRecorder()
		h.handleTrack(rr, authedRequest(http.MethodDelete, "/api/tracks/trk-9", nil))

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "not your track")
		assert.Empty(t, svc.deleted)
	})

	t.Run("publish of someone else's track returns 403", func(t *testing.T) {
		svc := &mockTrackService{publishErr: apperror.Forbidden("not your track")}
		h := newTrackHandler(svc)

		rr := httptest.NewRecorder()
		h.handleTrack(rr, authedRequest(http.MethodPost, "/api/tracks/trk-9/publish", nil))

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Empty(t, svc.published)
	})
}

func TestTrackHandler_Like(t *testing.T) {
	svc := &mockTrackService{}
	h := newTrackHandler(svc)

	rr := httptest.NewRecorder()
	h.handleTrack(rr, authedRequest(http.MethodPost, "/api/tracks/trk-9/like", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, true, resp["liked"])

	// Toggling again returns to the original state.
	rr = httptest.NewRecorder()
	h.handleTrack(rr, authedRequest(http.MethodPost, "/api/tracks/trk-9/like", nil))
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, false, resp["liked"])
	assert.Equal(t, 2, svc.toggles)
}

func TestTrackHandler_Feed(t *testing.T) {
	t.Run("feed is public and carries the owner name", func(t *testing.T) {
		svc := &mockTrackService{feedItems: []model.FeedItem{
			{Track: model.Track{ID: "trk-1", Title: "Rain", IsPublished: true}, OwnerName: "Ada"},
		}}
		h := newTrackHandler(svc)

		// No user in context: the feed needs none.
		rr := httptest.NewRecorder()
		h.feed(rr, httptest.NewRequest(http.MethodGet, "/api/feed", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp []map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Ada", resp[0]["owner_name"])
	})

	t.Run("empty feed is an empty array, not null", func(t *testing.T) {
		h := newTrackHandler(&mockTrackService{})
		rr := httptest.NewRecorder()
		h.feed(rr, httptest.NewRequest(http.MethodGet, "/api/feed", nil))
		assert.Equal(t, "[]\n", rr.Body.String())
	})
}
