package communicationService

import (
	"testing"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"
	"GestureTalk/pkg/gesture"
	"GestureTalk/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCandidates_FullSet(t *testing.T) {
	candidates := llm.FallbackPhrases()

	phrases, err := reconcileCandidates(candidates)
	require.NoError(t, err)
	require.Len(t, phrases, 8)

	for page := 0; page < 2; page++ {
		for i, direction := range gesture.CanonicalDirections {
			got := phrases[page*4+i]
			assert.Equal(t, direction, got.Direction, "page %d slot %d", page+1, i)
		}
	}

	// A full well-formed set needs no placeholders.
	for _, p := range phrases {
		assert.NotContains(t, p.ID, "page1-")
		assert.NotContains(t, p.ID, "page2-")
	}
}

func TestReconcileCandidates_EmptyInput(t *testing.T) {
	_, err := reconcileCandidates(nil)
	assert.ErrorIs(t, err, communication.ErrInsufficientData)

	_, err = reconcileCandidates([]llm.PhraseCandidate{})
	assert.ErrorIs(t, err, communication.ErrInsufficientData)
}

func TestReconcileCandidates_SingleCandidate(t *testing.T) {
	candidates := []llm.PhraseCandidate{
		{ID: "ai-1", Direction: "up", Message: "Need urgent help"},
	}

	phrases, err := reconcileCandidates(candidates)
	require.NoError(t, err)
	require.Len(t, phrases, 8)

	// Slot 0 holds the real candidate, every other slot a placeholder clone
	// of it carrying that slot's direction.
	assert.Equal(t, "ai-1", phrases[0].ID)
	for page := 0; page < 2; page++ {
		for i, direction := range gesture.CanonicalDirections {
			got := phrases[page*4+i]
			assert.Equal(t, direction, got.Direction)
			assert.Equal(t, "Need urgent help", got.Message)
		}
	}
	assert.Equal(t, "page1-down", phrases[1].ID)
	assert.Equal(t, "page2-up", phrases[4].ID)
}

func TestReconcileCandidates_AllSameDirection(t *testing.T) {
	candidates := []llm.PhraseCandidate{
		{ID: "a", Direction: "left", Message: "one"},
		{ID: "b", Direction: "left", Message: "two"},
		{ID: "c", Direction: "left", Message: "three"},
	}

	phrases, err := reconcileCandidates(candidates)
	require.NoError(t, err)
	require.Len(t, phrases, 8)

	// Page 1 places the first left candidate; page 2 the second. The third
	// stays unplaced and seeds the remaining placeholders.
	assert.Equal(t, "a", phrases[2].ID)
	assert.Equal(t, "b", phrases[6].ID)

	for page := 0; page < 2; page++ {
		for i, direction := range gesture.CanonicalDirections {
			assert.Equal(t, direction, phrases[page*4+i].Direction)
		}
	}
}

func TestReconcileCandidates_Deterministic(t *testing.T) {
	candidates := []llm.PhraseCandidate{
		{ID: "x", Direction: "down", Message: "first"},
		{ID: "y", Direction: "up", Message: "second"},
		{ID: "z", Direction: "sideways", Message: "third"},
	}

	first, err := reconcileCandidates(candidates)
	require.NoError(t, err)
	second, err := reconcileCandidates(candidates)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReconcileCandidates_DuplicateDirections(t *testing.T) {
	candidates := []llm.PhraseCandidate{
		{ID: "u1", Direction: "up", Message: "up one"},
		{ID: "u2", Direction: "up", Message: "up two"},
		{ID: "d1", Direction: "down", Message: "down one"},
		{ID: "l1", Direction: "left", Message: "left one"},
		{ID: "r1", Direction: "right", Message: "right one"},
	}

	phrases, err := reconcileCandidates(candidates)
	require.NoError(t, err)

	// The second up lands on page 2, not a placeholder.
	assert.Equal(t, "u2", phrases[4].ID)
	assert.Equal(t, gesture.DirectionUp, phrases[4].Direction)
}

func TestReconcilePhrases_SkewedCatalogSample(t *testing.T) {
	sample := []entity.Phrase{
		{ID: "s1", Direction: gesture.DirectionUp, Message: "I need help"},
		{ID: "s2", Direction: gesture.DirectionUp, Message: "I am thirsty"},
		{ID: "s3", Direction: gesture.DirectionUp, Message: "Thank you"},
	}

	phrases, err := reconcilePhrases(sample)
	require.NoError(t, err)
	require.Len(t, phrases, 8)

	for page := 0; page < 2; page++ {
		for i, direction := range gesture.CanonicalDirections {
			assert.Equal(t, direction, phrases[page*4+i].Direction, "page %d slot %d", page+1, i)
		}
	}

	_, err = reconcilePhrases(nil)
	assert.ErrorIs(t, err, communication.ErrInsufficientData)
}

func TestNormalizeCandidates(t *testing.T) {
	candidates := []llm.PhraseCandidate{
		{Direction: "UP ", Message: "shouted"},
		{ID: "keep", Direction: "diagonal", Message: "odd direction"},
		{ID: "blank", Direction: "left"},
	}

	normalized := normalizeCandidates(candidates)
	require.Len(t, normalized, 3)

	assert.Equal(t, "ai-0", normalized[0].ID)
	assert.Equal(t, gesture.DirectionUp, normalized[0].Direction)

	// Invalid direction falls round-robin on the canonical order by index.
	assert.Equal(t, "keep", normalized[1].ID)
	assert.Equal(t, gesture.CanonicalDirections[1], normalized[1].Direction)

	assert.Equal(t, "Swipe left message", normalized[2].Message)
}
