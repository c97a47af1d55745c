package communicationService

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	communicationRepository "GestureTalk/internal/api/communication/repository"
	"GestureTalk/internal/entity"
	"GestureTalk/pkg/audio"
	"GestureTalk/pkg/gesture"
	"GestureTalk/pkg/llm"
	"GestureTalk/pkg/redis"
	"GestureTalk/pkg/s3"
	"GestureTalk/pkg/utils"

	"github.com/sirupsen/logrus"
)

type fakePhraseSource struct {
	phrases []entity.Phrase
	err     error
}

func (f *fakePhraseSource) GetAllPhrases(ctx context.Context) ([]entity.Phrase, error) {
	return f.phrases, f.err
}

type fakeRepository struct {
	source *fakePhraseSource
}

func (f *fakeRepository) NewClient(tx bool) (communicationRepository.Client, error) {
	return communicationRepository.Client{
		Phrases:  f.source,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeGenerator struct {
	candidates []llm.PhraseCandidate
	err        error
	delay      time.Duration
	calls      int
}

func (f *fakeGenerator) GenerateAdaptedPhrases(ctx context.Context, description string) ([]llm.PhraseCandidate, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

type fakeTTS struct {
	data []byte
	err  error
}

func (f *fakeTTS) GenerateAudio(text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) UploadAudio(phraseID string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[phraseID] = data
	return "s3://bucket/" + phraseID, nil
}

func (f *fakeS3) DownloadAudio(phraseID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[phraseID]
	if !ok {
		return nil, io.EOF
	}
	return data, nil
}

func (f *fakeS3) object(phraseID string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[phraseID]
}

type fakeCache struct {
	entries map[string]string
}

func (f *fakeCache) SetSuggestionBatch(ctx context.Context, key string, payload string, expiration time.Duration) error {
	if f.entries == nil {
		f.entries = make(map[string]string)
	}
	f.entries[key] = payload
	return nil
}

func (f *fakeCache) GetSuggestionBatch(ctx context.Context, key string) (string, error) {
	payload, ok := f.entries[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return payload, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(audioDir string) *CommunicationConfig {
	config := DefaultConfig()
	config.GatewayTimeout = 200 * time.Millisecond
	config.FeedbackClearAfter = 30 * time.Millisecond
	config.ErrorRevertAfter = 40 * time.Millisecond
	config.LocalAudioDir = audioDir
	return config
}

// catalogPhrases builds n phrases cycling through the directions in
// canonical order, so every full page of four is direction-complete.
func catalogPhrases(n int) []entity.Phrase {
	messages := []string{
		"I need help", "I am thirsty", "I am in pain", "Thank you",
		"Please call the nurse", "I am hungry", "I need my medication", "Yes",
		"Something is wrong", "I want to rest", "I feel dizzy", "No",
	}

	phrases := make([]entity.Phrase, 0, n)
	for i := 0; i < n; i++ {
		phrases = append(phrases, entity.Phrase{
			ID:        fmt.Sprintf("c%d", i+1),
			Direction: gesture.CanonicalDirections[i%len(gesture.CanonicalDirections)],
			Message:   messages[i%len(messages)],
		})
	}
	return phrases
}

type testServiceOptions struct {
	catalog    []entity.Phrase
	catalogErr error
	generator  *fakeGenerator
	tts        *fakeTTS
	s3         *fakeS3
	cache      *fakeCache
	audioDir   string
}

func newTestService(t *testing.T, opts testServiceOptions) *communicationService {
	t.Helper()

	if opts.audioDir == "" {
		opts.audioDir = t.TempDir()
	}
	if opts.generator == nil {
		opts.generator = &fakeGenerator{candidates: llm.FallbackPhrases()}
	}

	repo := &fakeRepository{source: &fakePhraseSource{phrases: opts.catalog, err: opts.catalogErr}}

	svc := NewCommunicationService(
		testLogger(),
		repo,
		utils.New(),
		opts.generator,
		ttsOrNil(opts.tts),
		s3OrNil(opts.s3),
		cacheOrNil(opts.cache),
		testConfig(opts.audioDir),
	).(*communicationService)

	if err := svc.LoadCatalog(context.Background()); err != nil && opts.catalogErr == nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return svc
}

// The *OrNil helpers keep a nil fake from becoming a non-nil interface.

func ttsOrNil(f *fakeTTS) audio.ITTSService {
	if f == nil {
		return nil
	}
	return f
}

func s3OrNil(f *fakeS3) s3.ItfS3 {
	if f == nil {
		return nil
	}
	return f
}

func cacheOrNil(f *fakeCache) redis.IRedis {
	if f == nil {
		return nil
	}
	return f
}
