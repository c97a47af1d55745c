package communication

import (
	"GestureTalk/internal/entity"
	"GestureTalk/pkg/gesture"
)

type GestureRequest struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// GestureResponse reports how a swipe resolved. Played is false when the
// trajectory was below threshold or the active page has no phrase for the
// resolved direction; both are silent no-ops, not errors.
type GestureResponse struct {
	Direction gesture.Direction `json:"direction"`
	Phrase    *entity.Phrase    `json:"phrase,omitempty"`
	AudioURL  string            `json:"audio_url,omitempty"`
	Haptic    bool              `json:"haptic"`
	Played    bool              `json:"played"`
}

type SuggestionRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}

type SuggestionResponse struct {
	Suggestions *entity.SuggestionBatch `json:"suggestions"`
	PageCount   int                     `json:"page_count"`
	Fallback    bool                    `json:"fallback"`
}

type SessionResponse struct {
	Session    *entity.CommSession `json:"session"`
	ActivePage []entity.Phrase     `json:"active_page"`
	PageCount  int                 `json:"page_count"`
}

type WSGestureFrame struct {
	SessionID string  `json:"session_id"`
	StartX    float64 `json:"start_x"`
	StartY    float64 `json:"start_y"`
	EndX      float64 `json:"end_x"`
	EndY      float64 `json:"end_y"`
}
