package entity

import (
	"GestureTalk/pkg/gesture"
)

type Phrase struct {
	ID        string            `json:"id" db:"id"`
	Direction gesture.Direction `json:"direction" db:"direction"`
	Message   string            `json:"message" db:"message"`
}

// SuggestionBatch is the reconciled output of a personalization request:
// exactly eight phrases laid out as two direction-complete pages of four.
// A batch is replaced wholesale on the next request, never patched.
type SuggestionBatch struct {
	Phrases   []Phrase `json:"phrases"`
	Fallback  bool     `json:"fallback"`
	CreatedAt int64    `json:"created_at"`
}

const SuggestionPageSize = 4

func (b *SuggestionBatch) PageCount() int {
	if b == nil || len(b.Phrases) == 0 {
		return 0
	}
	return (len(b.Phrases) + SuggestionPageSize - 1) / SuggestionPageSize
}

// Page returns the batch's page window, or nil when the index is out of
// bounds. Pages are views over the batch slice, not copies.
func (b *SuggestionBatch) Page(index int) []Phrase {
	if b == nil || index < 0 || index*SuggestionPageSize >= len(b.Phrases) {
		return nil
	}
	start := index * SuggestionPageSize
	end := start + SuggestionPageSize
	if end > len(b.Phrases) {
		end = len(b.Phrases)
	}
	return b.Phrases[start:end]
}
