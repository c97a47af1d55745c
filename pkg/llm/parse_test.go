package llm

import "testing"

func TestExtractCandidates(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "bare array",
			response:  `[{"id":"ai-1","direction":"up","message":"Help"}]`,
			wantCount: 1,
		},
		{
			name: "array wrapped in prose",
			response: `Here are the phrases you requested:
[{"id":"ai-1","direction":"up","message":"Help"},{"id":"ai-2","direction":"down","message":"Rest"}]
Let me know if you need more.`,
			wantCount: 2,
		},
		{
			name: "fenced code block",
			response: "```json\n" +
				`[{"direction":"LEFT","message":"Water please"}]` +
				"\n```",
			wantCount: 1,
		},
		{
			name:     "no array at all",
			response: "I'm sorry, I can't help with that.",
			wantErr:  true,
		},
		{
			name:     "malformed array",
			response: `[{"id":"ai-1","direction":}]`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractCandidates(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractCandidates(%q) expected error, got %v", tt.response, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractCandidates(%q) error: %v", tt.response, err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("ExtractCandidates count = %d, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestFallbackPhrasesShape(t *testing.T) {
	phrases := FallbackPhrases()
	if len(phrases) != 8 {
		t.Fatalf("fallback set has %d phrases, want 8", len(phrases))
	}

	perDirection := map[string]int{}
	for _, p := range phrases {
		if p.ID == "" || p.Message == "" {
			t.Errorf("fallback phrase %+v missing id or message", p)
		}
		perDirection[p.Direction]++
	}

	for _, dir := range []string{"up", "down", "left", "right"} {
		if perDirection[dir] != 2 {
			t.Errorf("fallback set has %d %q phrases, want 2", perDirection[dir], dir)
		}
	}
}
