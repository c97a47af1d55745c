package communicationService

import (
	"fmt"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"
	"GestureTalk/pkg/gesture"
	"GestureTalk/pkg/llm"
)

// normalizeCandidates repairs every raw candidate in place: directions are
// lowercased and validated, with invalid or missing ones assigned
// round-robin over the canonical order so each candidate ends up somewhere;
// missing ids become synthetic ai-<index> ids.
func normalizeCandidates(candidates []llm.PhraseCandidate) []entity.Phrase {
	normalized := make([]entity.Phrase, 0, len(candidates))

	for i, candidate := range candidates {
		direction, ok := gesture.ParseDirection(candidate.Direction)
		if !ok {
			direction = gesture.CanonicalDirections[i%len(gesture.CanonicalDirections)]
		}

		id := candidate.ID
		if id == "" {
			id = fmt.Sprintf("ai-%d", i)
		}

		message := candidate.Message
		if message == "" {
			message = fmt.Sprintf("Swipe %s message", direction)
		}

		normalized = append(normalized, entity.Phrase{
			ID:        id,
			Direction: direction,
			Message:   message,
		})
	}

	return normalized
}

// reconcileCandidates turns an arbitrary candidate list into exactly one
// suggestion batch: two sequential pages of four, each containing one phrase
// per direction in canonical order. When a direction has no unplaced match,
// a placeholder is synthesized by cloning the first unplaced candidate (or
// the first candidate overall once the pool is exhausted) under a
// page<n>-<direction> id. Cloning does not consume the source, so page 2
// can still place it. Input order fully determines output: reconciling the
// same list twice yields identical batches.
func reconcileCandidates(candidates []llm.PhraseCandidate) ([]entity.Phrase, error) {
	if len(candidates) == 0 {
		return nil, communication.ErrInsufficientData
	}
	return reconcilePhrases(normalizeCandidates(candidates))
}

// reconcilePhrases is the placement half of reconciliation, shared with the
// fallback paths: catalog samples go through the same direction-complete
// layout as gateway candidates, so a skewed sample never installs a page
// with unreachable swipe directions.
func reconcilePhrases(normalized []entity.Phrase) ([]entity.Phrase, error) {
	if len(normalized) == 0 {
		return nil, communication.ErrInsufficientData
	}

	placed := make([]bool, len(normalized))
	organized := make([]entity.Phrase, 0, 2*len(gesture.CanonicalDirections))

	for page := 1; page <= 2; page++ {
		for _, direction := range gesture.CanonicalDirections {
			idx := findUnplaced(normalized, placed, direction)
			if idx >= 0 {
				placed[idx] = true
				organized = append(organized, normalized[idx])
				continue
			}

			template := firstUnplaced(normalized, placed)
			if template < 0 {
				template = 0
			}

			placeholder := normalized[template]
			placeholder.ID = fmt.Sprintf("page%d-%s", page, direction)
			placeholder.Direction = direction
			organized = append(organized, placeholder)
		}
	}

	return organized, nil
}

func findUnplaced(phrases []entity.Phrase, placed []bool, direction gesture.Direction) int {
	for i, p := range phrases {
		if !placed[i] && p.Direction == direction {
			return i
		}
	}
	return -1
}

func firstUnplaced(phrases []entity.Phrase, placed []bool) int {
	for i := range phrases {
		if !placed[i] {
			return i
		}
	}
	return -1
}
