package llm

import "context"

// PhraseCandidate is a raw phrase as produced by a language model. Direction
// and ID may be missing or malformed; the suggestion reconciler repairs both.
type PhraseCandidate struct {
	ID        string `json:"id,omitempty"`
	Direction string `json:"direction,omitempty"`
	Message   string `json:"message"`
}

// IPhraseGenerator is the personalization gateway contract. Implementations
// never surface their own parse/HTTP failures as errors: any internal
// failure yields FallbackPhrases(). An error return means the provider
// itself could not be reached, which callers handle with their own local
// fallback.
type IPhraseGenerator interface {
	GenerateAdaptedPhrases(ctx context.Context, description string) ([]PhraseCandidate, error)
}

// FallbackPhrases is the fixed hand-authored set returned when a provider
// responds but its output cannot be used: two phrases per direction covering
// urgent, comfort, medical and emotional needs. The set is fixed, never
// derived from the catalog.
func FallbackPhrases() []PhraseCandidate {
	return []PhraseCandidate{
		{ID: "ai-1", Direction: "up", Message: "Need urgent help"},
		{ID: "ai-2", Direction: "down", Message: "Please reposition me"},
		{ID: "ai-3", Direction: "left", Message: "I need my medication"},
		{ID: "ai-4", Direction: "right", Message: "I feel anxious"},
		{ID: "ai-5", Direction: "up", Message: "Call a nurse"},
		{ID: "ai-6", Direction: "down", Message: "Uncomfortable, need adjustment"},
		{ID: "ai-7", Direction: "left", Message: "In pain, need relief"},
		{ID: "ai-8", Direction: "right", Message: "I would like to talk"},
	}
}
