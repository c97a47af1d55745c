package communicationService

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"
	contextPkg "GestureTalk/pkg/context"
	"GestureTalk/pkg/gesture"

	"github.com/sirupsen/logrus"
)

// ResolveGesture classifies a swipe trajectory and, when it resolves to a
// cardinal direction with a phrase on the active page, plays that phrase.
// Sub-threshold swipes and directions without a phrase are silent no-ops.
func (s *communicationService) ResolveGesture(ctx context.Context, sessionID string, req communication.GestureRequest) (*communication.GestureResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	direction := gesture.Classify(req.EndX-req.StartX, req.EndY-req.StartY, s.config.GestureThreshold)
	if !direction.IsCardinal() {
		return &communication.GestureResponse{Direction: gesture.DirectionNone}, nil
	}

	session.mu.Lock()
	page := s.activePageLocked(session)
	var phrase *entity.Phrase
	for i := range page {
		if page[i].Direction == direction {
			phrase = &page[i]
			break
		}
	}

	if phrase == nil {
		session.data.LastActivity = time.Now()
		session.mu.Unlock()
		return &communication.GestureResponse{Direction: direction, Haptic: true}, nil
	}

	s.playLocked(session, *phrase)
	session.mu.Unlock()

	audioURL := ""
	if data, err := s.ensureAudio(ctx, *phrase); err != nil {
		// Visual feedback already happened; missing audio degrades, not fails.
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"phrase_id":  phrase.ID,
			"error":      err.Error(),
		}).Warn("No audio available for phrase")
	} else if len(data) > 0 {
		audioURL = s.config.AudioRoutePrefix + phrase.ID
	}

	return &communication.GestureResponse{
		Direction: direction,
		Phrase:    phrase,
		AudioURL:  audioURL,
		Haptic:    true,
		Played:    true,
	}, nil
}

// playLocked starts playback of a phrase with mutual exclusion: every
// previously started handle is stopped first, so two rapid swipes never
// overlap audio. The visual feedback is armed to clear itself after the
// configured delay, and a newer play cancels the older clear so it cannot
// wipe fresher feedback. Caller holds session.mu.
func (s *communicationService) playLocked(session *commSession, phrase entity.Phrase) {
	for id := range session.playing {
		delete(session.playing, id)
	}
	session.playing[phrase.ID] = true

	session.data.Playback = entity.PlaybackState{
		ActiveDirection: phrase.Direction,
		FeedbackText:    phrase.Message,
		IsPlaying:       true,
	}
	session.data.LastActivity = time.Now()

	if session.clearTimer != nil {
		session.clearTimer.Stop()
	}

	phraseID := phrase.ID
	session.clearTimer = time.AfterFunc(s.config.FeedbackClearAfter, func() {
		session.mu.Lock()
		// Only clear if this phrase is still the one playing.
		if session.playing[phraseID] {
			delete(session.playing, phraseID)
			session.data.Playback = entity.PlaybackState{}
		}
		session.mu.Unlock()
	})
}

// preloadPageAudio warms the audio cache for every phrase on a page so the
// first swipe does not wait on a fetch. Runs in the background; failures
// are dropped, the gesture path retries on demand.
func (s *communicationService) preloadPageAudio(page []entity.Phrase) {
	if len(page) == 0 {
		return
	}

	phrases := make([]entity.Phrase, len(page))
	copy(phrases, page)

	go func() {
		for _, p := range phrases {
			_, _ = s.ensureAudio(context.Background(), p)
		}
	}()
}

// ensureAudio resolves the audio bytes for a phrase, fastest source first:
// the process cache, then the bundled local file, then object storage,
// then synthesis for generated phrases. Whatever is found is cached for
// the life of the process.
func (s *communicationService) ensureAudio(ctx context.Context, phrase entity.Phrase) ([]byte, error) {
	s.audioMu.Lock()
	if data, ok := s.audioCache[phrase.ID]; ok {
		s.audioMu.Unlock()
		return data, nil
	}
	s.audioMu.Unlock()

	data, err := s.fetchAudio(ctx, phrase)
	if err != nil {
		return nil, err
	}

	s.audioMu.Lock()
	if existing, ok := s.audioCache[phrase.ID]; ok {
		data = existing
	} else {
		s.audioCache[phrase.ID] = data
	}
	s.audioMu.Unlock()

	return data, nil
}

func (s *communicationService) fetchAudio(ctx context.Context, phrase entity.Phrase) ([]byte, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if data, err := s.readLocalAudio(phrase.ID); err == nil {
		return data, nil
	}

	if s.s3Client != nil {
		if data, err := s.s3Client.DownloadAudio(phrase.ID); err == nil {
			return data, nil
		}
	}

	// Generated phrases have no pre-recorded clip; synthesize one.
	if s.tts != nil && isGeneratedPhrase(phrase.ID) {
		data, err := s.tts.GenerateAudio(phrase.Message)
		if err != nil {
			return nil, err
		}

		if s.s3Client != nil {
			if _, err := s.s3Client.UploadAudio(phrase.ID, data); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"phrase_id":  phrase.ID,
					"error":      err.Error(),
				}).Warn("Failed to persist synthesized audio")
			}
		}
		return data, nil
	}

	return nil, communication.ErrAudioNotFound
}

func (s *communicationService) readLocalAudio(phraseID string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.config.LocalAudioDir, phraseID+".mp3"))
}

// isGeneratedPhrase reports whether the id belongs to a gateway-produced
// phrase (ai-<n> or a page<n>-<direction> placeholder) rather than the
// static catalog.
func isGeneratedPhrase(phraseID string) bool {
	return strings.HasPrefix(phraseID, "ai-") || strings.HasPrefix(phraseID, "page")
}

// ServeAudioFile returns the raw audio clip for a phrase id, for the
// playback endpoint. The id is rejected outright if it could escape the
// audio directory.
func (s *communicationService) ServeAudioFile(ctx context.Context, phraseID string) ([]byte, error) {
	if phraseID == "" || strings.ContainsAny(phraseID, "/\\") || strings.Contains(phraseID, "..") {
		return nil, communication.ErrAudioNotFound
	}

	s.audioMu.Lock()
	if data, ok := s.audioCache[phraseID]; ok {
		s.audioMu.Unlock()
		return data, nil
	}
	s.audioMu.Unlock()

	if data, err := s.readLocalAudio(phraseID); err == nil {
		return data, nil
	}

	if s.s3Client != nil {
		if data, err := s.s3Client.DownloadAudio(phraseID); err == nil {
			return data, nil
		}
	}

	return nil, communication.ErrAudioNotFound
}
