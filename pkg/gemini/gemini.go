package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"

	"GestureTalk/pkg/llm"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// geminiClient is the alternate personalization gateway, selected with
// LLM_PROVIDER=gemini. It honors the same contract as the OpenAI provider:
// unusable model output degrades to the fixed fallback set, only an
// unreachable API is an error.
type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
	log       *logrus.Logger
}

func NewPhraseGenerator(log *logrus.Logger) (llm.IPhraseGenerator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
		log:       log,
	}, nil
}

const phrasePrompt = `You are assisting someone with generating communication suggestions tailored for a person with the following condition or disability: %q

Create 8 simple, clear, useful phrases (under 8 words each) that help this person communicate basic needs. Assign 2 phrases per swipe direction: up for urgent physical/medical needs, down for comfort and positioning, left for medical assistance, right for emotional and social needs.

Return ONLY a JSON array of objects with "id", "direction" and "message" fields, ids "ai-1" through "ai-8".`

func (g *geminiClient) GenerateAdaptedPhrases(ctx context.Context, description string) ([]llm.PhraseCandidate, error) {
	model := g.client.GenerativeModel(g.modelName)

	res, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(phrasePrompt, description)))
	if err != nil {
		return nil, err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		g.log.Warn("Gemini returned no candidates, using fallback phrase set")
		return llm.FallbackPhrases(), nil
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		g.log.Warn("Unexpected response format from Gemini API, using fallback phrase set")
		return llm.FallbackPhrases(), nil
	}

	candidates, err := llm.ExtractCandidates(string(text))
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to parse phrases from Gemini response, using fallback phrase set")
		return llm.FallbackPhrases(), nil
	}

	return candidates, nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
