package audio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// TTSService synthesizes speech for phrases that have no pre-recorded clip
// (AI-generated suggestions in particular). A missing API key is not an
// error at construction time: callers treat synthesis failure as a
// non-fatal, visual-only degradation.
type ITTSService interface {
	GenerateAudio(text string) ([]byte, error)
}

type TTSService struct {
	apiKey  string
	voiceID string
}

func NewTTSService() ITTSService {
	return &TTSService{
		apiKey:  os.Getenv("ELEVEN_LABS_API_KEY"),
		voiceID: os.Getenv("ELEVEN_LABS_VOICE_ID"),
	}
}

func (tts *TTSService) GenerateAudio(text string) ([]byte, error) {
	if tts.apiKey == "" || tts.voiceID == "" {
		return nil, errors.New("TTS is not configured")
	}

	url := "https://api.elevenlabs.io/v1/text-to-speech/" + tts.voiceID

	requestBody := map[string]interface{}{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.8,
			"style":             0.0,
			"use_speaker_boost": true,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", tts.apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ElevenLabs API error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
