package llm

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var ErrNoJSONArray = errors.New("no JSON array found in model response")

// ExtractCandidates pulls the first JSON array out of a free-form completion
// (models routinely wrap the payload in prose or a code fence) and decodes
// it into candidates. Entries without a message are kept; the reconciler
// decides what to do with them.
func ExtractCandidates(responseText string) ([]PhraseCandidate, error) {
	start := strings.Index(responseText, "[")
	end := strings.LastIndex(responseText, "]")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONArray
	}

	var candidates []PhraseCandidate
	if err := jsoniter.Unmarshal([]byte(responseText[start:end+1]), &candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}
