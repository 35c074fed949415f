package dto

import "tunegen/internal/musicgen"

// GenerateRequestDTO is the body of POST /api/generate-music.
type GenerateRequestDTO struct {
	Genre        string `json:"genre" validate:"required,max=100"`
	Mood         string `json:"mood" validate:"required,max=100"`
	Prompt       string `json:"prompt" validate:"max=2000"`
	Duration     int    `json:"duration" validate:"omitempty,min=10,max=480"`
	Instrumental bool   `json:"instrumental"`
	CustomLyrics string `json:"custom_lyrics" validate:"max=5000"`
}

// GenerateResponseDTO reports the created vendor task and the balance
// the client should display.
type GenerateResponseDTO struct {
	Success          bool   `json:"success"`
	TaskID           string `json:"task_id"`
	RemainingCredits int    `json:"remaining_credits"`
}

// SongDTO is one generated variant.
type SongDTO struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	AudioURL       string  `json:"audio_url"`
	StreamAudioURL string  `json:"stream_audio_url"`
	ImageURL       string  `json:"image_url"`
	Tags           string  `json:"tags"`
	Duration       float64 `json:"duration"`
}

// TaskStatusResponseDTO flattens the vendor's task record: the first
// two variants get dedicated slots, the full list rides along.
type TaskStatusResponseDTO struct {
	TaskID     string    `json:"task_id"`
	Status     string    `json:"status"`
	FirstSong  *SongDTO  `json:"first_song,omitempty"`
	SecondSong *SongDTO  `json:"second_song,omitempty"`
	Songs      []SongDTO `json:"songs"`
}

// NewTaskStatusResponse maps a vendor record into the response shape.
func NewTaskStatusResponse(rec *musicgen.TaskRecord) TaskStatusResponseDTO {
	resp := TaskStatusResponseDTO{TaskID: rec.TaskID, Status: rec.Status}
	for _, s := range rec.Songs {
		resp.Songs = append(resp.Songs, SongDTO{
			ID:             s.ID,
			Title:          s.Title,
			AudioURL:       s.AudioURL,
			StreamAudioURL: s.StreamAudioURL,
			ImageURL:       s.ImageURL,
			Tags:           s.Tags,
			Duration:       s.Duration,
		})
	}
	if len(resp.Songs) > 0 {
		resp.FirstSong = &resp.Songs[0]
	}
	if len(resp.Songs) > 1 {
		resp.SecondSong = &resp.Songs[1]
	}
	return resp
}
