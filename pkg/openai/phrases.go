package openai

import (
	"context"
	"fmt"
	"os"

	"GestureTalk/pkg/llm"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

type phraseService struct {
	client *openai.Client
	model  string
	log    *logrus.Logger
}

func NewPhraseGenerator(log *logrus.Logger) llm.IPhraseGenerator {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4Turbo
	}

	return &phraseService{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}
}

const systemPrompt = "You are a helpful assistant specializing in accessibility and communication needs."

func buildPrompt(description string) string {
	return fmt.Sprintf(`You are assisting someone with generating communication suggestions tailored specifically for a person with the following condition or disability: %q

Create 8 simple, clear, and useful phrases that help this person communicate basic needs, feelings, or requests. Each phrase should be concise (under 8 words if possible) and directly relevant to the condition described.

Divide the phrases evenly among four directional gestures with 2 phrases per direction, grouped so the system is easy to remember:
- UP: most urgent physical/medical needs
- DOWN: comfort and positioning needs
- LEFT: medical assistance and treatment needs
- RIGHT: emotional and social needs

Return ONLY a JSON array in this format:
[
  {"id": "ai-1", "direction": "up", "message": "Phrase addressing primary need"},
  {"id": "ai-2", "direction": "down", "message": "Phrase addressing comfort need"},
  {"id": "ai-3", "direction": "left", "message": "Phrase addressing medical need"},
  {"id": "ai-4", "direction": "right", "message": "Phrase addressing emotional need"},
  {"id": "ai-5", "direction": "up", "message": "Alternative primary need"},
  {"id": "ai-6", "direction": "down", "message": "Alternative comfort need"},
  {"id": "ai-7", "direction": "left", "message": "Alternative medical need"},
  {"id": "ai-8", "direction": "right", "message": "Alternative emotional need"}
]`, description)
}

// GenerateAdaptedPhrases asks the model for a personalized phrase set. A
// response that cannot be parsed into a JSON array degrades to the fixed
// fallback set; only a failed API call itself is returned as an error.
func (c *phraseService) GenerateAdaptedPhrases(ctx context.Context, description string) ([]llm.PhraseCandidate, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildPrompt(description),
				},
			},
			Temperature: 0.7,
			MaxTokens:   1500,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.Warn("OpenAI returned no choices, using fallback phrase set")
		return llm.FallbackPhrases(), nil
	}

	candidates, err := llm.ExtractCandidates(resp.Choices[0].Message.Content)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to parse phrases from OpenAI response, using fallback phrase set")
		return llm.FallbackPhrases(), nil
	}

	return candidates, nil
}
