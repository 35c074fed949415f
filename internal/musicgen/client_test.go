package musicgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	t.Run("returns task id and pins the model version", func(t *testing.T) {
		var got GenerateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/generate", r.URL.Path)
			assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-42"}}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "key-1")
		taskID, err := c.Generate(context.Background(), GenerateRequest{
			Prompt: "lofi rain", Style: "lofi", Title: "Rain",
		})
		require.NoError(t, err)
		assert.Equal(t, "task-42", taskID)
		assert.Equal(t, "V4_5", got.Model)
	})

	t.Run("vendor error message is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":429,"msg":"insufficient vendor credits"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "key-1")
		_, err := c.Generate(context.Background(), GenerateRequest{Prompt: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient vendor credits")
	})

	t.Run("missing task id is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":200,"msg":"success","data":{}}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "key-1")
		_, err := c.Generate(context.Background(), GenerateRequest{Prompt: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no task id")
	})
}

func TestClient_Record(t *testing.T) {
	t.Run("flattens the nested vendor payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/generate/record-info", r.URL.Path)
			assert.Equal(t, "task-42", r.URL.Query().Get("taskId"))
			_, _ = w.Write([]byte(`{"code":200,"msg":"success","data":{
				"taskId":"task-42","status":"SUCCESS","response":{"sunoData":[
					{"id":"s1","title":"Rain","audioUrl":"https://cdn/a1.mp3","streamAudioUrl":"https://cdn/s1","imageUrl":"https://cdn/i1.png","tags":"lofi, chill","duration":184.2},
					{"id":"s2","title":"Rain (alt)","audioUrl":"https://cdn/a2.mp3","streamAudioUrl":"https://cdn/s2","imageUrl":"https://cdn/i2.png","tags":"lofi","duration":190.0}
				]}}}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "key-1")
		rec, err := c.Record(context.Background(), "task-42")
		require.NoError(t, err)
		assert.Equal(t, "task-42", rec.TaskID)
		assert.Equal(t, "SUCCESS", rec.Status)
		require.Len(t, rec.Songs, 2)
		assert.Equal(t, "https://cdn/a1.mp3", rec.Songs[0].AudioURL)
		assert.Equal(t, 190.0, rec.Songs[1].Duration)
	})

	t.Run("pending task with no songs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":200,"msg":"success","data":{"taskId":"task-42","status":"PENDING"}}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "key-1")
		rec, err := c.Record(context.Background(), "task-42")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", rec.Status)
		assert.Empty(t, rec.Songs)
	})
}
