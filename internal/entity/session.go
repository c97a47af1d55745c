package entity

import (
	"time"

	"GestureTalk/pkg/gesture"
)

type SessionMode string

const (
	ModeOffline SessionMode = "offline"
	ModeOnline  SessionMode = "online"
)

// PlaybackState is the transient feedback surfaced after a resolved gesture.
// It auto-clears after the feedback window or on the next play.
type PlaybackState struct {
	ActiveDirection gesture.Direction `json:"active_direction,omitempty"`
	FeedbackText    string            `json:"feedback_text,omitempty"`
	IsPlaying       bool              `json:"is_playing"`
}

// CommSession holds the mode/pagination state of one communication session.
// CurrentPageIndex drives Offline (catalog) paging, SuggestionsPageIndex
// drives Online (batch) paging; each cursor belongs to its own mode.
type CommSession struct {
	ID                   string           `json:"id"`
	Mode                 SessionMode      `json:"mode"`
	CurrentPageIndex     int              `json:"current_page_index"`
	SuggestionsPageIndex int              `json:"suggestions_page_index"`
	Suggestions          *SuggestionBatch `json:"suggestions,omitempty"`
	Playback             PlaybackState    `json:"playback"`
	GatewayError         string           `json:"gateway_error,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	LastActivity         time.Time        `json:"last_activity"`
}
