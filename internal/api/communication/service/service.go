package communicationService

import (
	"context"
	"sync"
	"time"

	"GestureTalk/internal/api/communication"
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

type ICommunicationService interface {
	LoadCatalog(ctx context.Context) error

	CreateSession(ctx context.Context) (*communication.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*communication.SessionResponse, error)

	ToggleMode(ctx context.Context, sessionID string) (*communication.SessionResponse, error)
	NextPage(ctx context.Context, sessionID string) (*communication.SessionResponse, error)
	PrevPage(ctx context.Context, sessionID string) (*communication.SessionResponse, error)

	ResolveGesture(ctx context.Context, sessionID string, req communication.GestureRequest) (*communication.GestureResponse, error)

	RequestSuggestions(ctx context.Context, sessionID string, prompt string) (*communication.SuggestionResponse, error)
	ResetSuggestions(ctx context.Context, sessionID string) (*communication.SessionResponse, error)
	DismissError(ctx context.Context, sessionID string) (*communication.SessionResponse, error)

	ServeAudioFile(ctx context.Context, phraseID string) ([]byte, error)
}

type CommunicationConfig struct {
	PageSize           int           `json:"page_size"`
	GestureThreshold   float64       `json:"gesture_threshold"`
	GatewayTimeout     time.Duration `json:"gateway_timeout"`
	FeedbackClearAfter time.Duration `json:"feedback_clear_after"`
	ErrorRevertAfter   time.Duration `json:"error_revert_after"`
	SuggestionCacheTTL time.Duration `json:"suggestion_cache_ttl"`
	LocalAudioDir      string        `json:"local_audio_dir"`
	AudioRoutePrefix   string        `json:"audio_route_prefix"`
}

func DefaultConfig() *CommunicationConfig {
	return &CommunicationConfig{
		PageSize:           4,
		GestureThreshold:   gesture.DefaultThreshold,
		GatewayTimeout:     10 * time.Second,
		FeedbackClearAfter: 2 * time.Second,
		ErrorRevertAfter:   5 * time.Second,
		SuggestionCacheTTL: time.Hour,
		LocalAudioDir:      "./storage/audio",
		AudioRoutePrefix:   "/api/v1/communication/audio/",
	}
}

// commSession wraps the session entity with its coordination state: the
// cancellable feedback-clear and error-revert timers, the generation counter
// that invalidates stale gateway responses, and the set of started audio
// handles.
type commSession struct {
	mu sync.Mutex

	data entity.CommSession

	clearTimer *time.Timer
	errorTimer *time.Timer

	// generation is bumped on every mode toggle and suggestion reset; a
	// gateway response tagged with an older generation is discarded.
	generation uint64
	inFlight   bool

	// playing tracks which cached audio handles have been started; play()
	// stops every tracked handle before starting the next one.
	playing map[string]bool
}

type communicationService struct {
	log       *logrus.Logger
	repo      communicationRepository.Repository
	utils     utils.IUtils
	generator llm.IPhraseGenerator
	tts       audio.ITTSService
	s3Client  s3.ItfS3
	cache     redis.IRedis
	config    *CommunicationConfig

	catalogMu sync.RWMutex
	catalog   *Catalog

	sessionsMu sync.RWMutex
	sessions   map[string]*commSession

	// audioMu guards the per-phrase-id audio byte cache. Entries are lazily
	// created on first use and never evicted while the process lives.
	audioMu    sync.Mutex
	audioCache map[string][]byte
}

func NewCommunicationService(
	log *logrus.Logger,
	repo communicationRepository.Repository,
	utils utils.IUtils,
	generator llm.IPhraseGenerator,
	tts audio.ITTSService,
	s3Client s3.ItfS3,
	cache redis.IRedis,
	config *CommunicationConfig,
) ICommunicationService {
	if config == nil {
		config = DefaultConfig()
	}

	return &communicationService{
		log:        log,
		repo:       repo,
		utils:      utils,
		generator:  generator,
		tts:        tts,
		s3Client:   s3Client,
		cache:      cache,
		config:     config,
		sessions:   make(map[string]*commSession),
		audioCache: make(map[string][]byte),
	}
}

func (s *communicationService) getSession(sessionID string) (*commSession, error) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, communication.ErrSessionNotFound
	}
	return session, nil
}
