package musicgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	generateEndpoint = "/api/v1/generate"
	recordEndpoint   = "/api/v1/generate/record-info"

	// Model identifier sent with every generation request.
	modelVersion = "V4_5"

	generateTimeout = 30 * time.Second
	recordTimeout   = 10 * time.Second
)

// GenerateRequest is the vendor-facing generation payload.
type GenerateRequest struct {
	Prompt       string `json:"prompt"`
	Style        string `json:"style"`
	Title        string `json:"title"`
	CustomMode   bool   `json:"customMode"`
	Instrumental bool   `json:"instrumental"`
	Model        string `json:"model"`
}

// Song is one generated variant within a task.
type Song struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	AudioURL       string  `json:"audio_url"`
	StreamAudioURL string  `json:"stream_audio_url"`
	ImageURL       string  `json:"image_url"`
	Tags           string  `json:"tags"`
	Duration       float64 `json:"duration"`
}

// TaskRecord is the flattened view of a vendor task lookup.
type TaskRecord struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Songs  []Song `json:"songs"`
}

// API is the outbound surface of the music-generation vendor.
type API interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Record(ctx context.Context, taskID string) (*TaskRecord, error)
}

// Client calls the generation vendor over HTTPS/JSON. Calls carry fixed
// timeouts and are never retried; vendor errors surface to the caller
// with the vendor's own message when one is present.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		client:  &http.Client{},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// vendorEnvelope is the wrapper the vendor puts around every response.
type vendorEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Generate submits a generation task and returns the vendor task id.
func (c *Client) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	genReq.Model = modelVersion

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	env, err := c.do(ctx, http.MethodPost, generateEndpoint, genReq)
	if err != nil {
		return "", err
	}

	var data struct {
		TaskID string `json:"taskId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}
	if data.TaskID == "" {
		return "", fmt.Errorf("generation failed: vendor returned no task id")
	}
	return data.TaskID, nil
}

// Record fetches the current state of a generation task.
func (c *Client) Record(ctx context.Context, taskID string) (*TaskRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	env, err := c.do(ctx, http.MethodGet, recordEndpoint+"?taskId="+taskID, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		TaskID   string `json:"taskId"`
		Status   string `json:"status"`
		Response struct {
			SunoData []struct {
				ID             string  `json:"id"`
				Title          string  `json:"title"`
				AudioURL       string  `json:"audioUrl"`
				StreamAudioURL string  `json:"streamAudioUrl"`
				ImageURL       string  `json:"imageUrl"`
				Tags           string  `json:"tags"`
				Duration       float64 `json:"duration"`
			} `json:"sunoData"`
		} `json:"response"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decoding task record: %w", err)
	}

	record := &TaskRecord{TaskID: data.TaskID, Status: data.Status}
	for _, s := range data.Response.SunoData {
		record.Songs = append(record.Songs, Song{
			ID:             s.ID,
			Title:          s.Title,
			AudioURL:       s.AudioURL,
			StreamAudioURL: s.StreamAudioURL,
			ImageURL:       s.ImageURL,
			Tags:           s.Tags,
			Duration:       s.Duration,
		})
	}
	return record, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*vendorEnvelope, error) {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling vendor request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating vendor request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling music API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading vendor response: %w", err)
	}

	var env vendorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("music API returned HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding vendor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || env.Code != http.StatusOK {
		if env.Msg != "" {
			return nil, fmt.Errorf("music API error: %s", env.Msg)
		}
		return nil, fmt.Errorf("music API returned HTTP %d", resp.StatusCode)
	}
	return &env, nil
}
