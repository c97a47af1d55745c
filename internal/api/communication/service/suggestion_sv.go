package communicationService

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"
	contextPkg "GestureTalk/pkg/context"
	"GestureTalk/pkg/redis"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const suggestionCachePrefix = "suggestion:"

// RequestSuggestions runs the personalization flow: validate the prompt,
// consult the cache, otherwise call the generation gateway under a deadline,
// reconcile the candidates into a two-page batch, and install it on the
// session. A gateway transport failure does not dead-end the user: a random
// catalog sample is substituted and a transient error is surfaced that
// auto-reverts the session to Offline after the configured delay.
func (s *communicationService) RequestSuggestions(ctx context.Context, sessionID string, prompt string) (*communication.SuggestionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, communication.ErrEmptyPrompt
	}

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.data.Mode != entity.ModeOnline {
		session.mu.Unlock()
		return nil, communication.ErrNotOnline
	}
	if session.data.Suggestions != nil {
		session.mu.Unlock()
		return nil, communication.ErrBatchAlreadyActive
	}
	if session.inFlight {
		session.mu.Unlock()
		return nil, communication.ErrSuggestionInProgress
	}
	session.inFlight = true
	generation := session.generation
	session.mu.Unlock()

	defer func() {
		session.mu.Lock()
		session.inFlight = false
		session.mu.Unlock()
	}()

	if cached, ok := s.cachedPhrases(ctx, prompt); ok {
		return s.commitBatch(session, generation, cached, false)
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()

	candidates, err := s.generator.GenerateAdaptedPhrases(gatewayCtx, prompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Suggestion gateway unreachable, substituting catalog sample")

		return s.commitGatewayFailure(session, generation)
	}

	if len(candidates) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
		}).Warn("Gateway returned no candidates, substituting catalog sample")

		sample, sampleErr := reconcilePhrases(s.catalogSample(2 * entity.SuggestionPageSize))
		if sampleErr != nil {
			return nil, communication.ErrInsufficientData
		}
		return s.commitBatch(session, generation, sample, true)
	}

	phrases, err := reconcileCandidates(candidates)
	if err != nil {
		return nil, err
	}

	s.storePhrases(ctx, prompt, phrases)

	return s.commitBatch(session, generation, phrases, false)
}

// commitBatch installs the reconciled phrases on the session, unless the
// session moved on while the gateway call was in flight (generation bumped
// by a mode toggle or reset), in which case the result is discarded.
func (s *communicationService) commitBatch(session *commSession, generation uint64, phrases []entity.Phrase, fallback bool) (*communication.SuggestionResponse, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.generation != generation || session.data.Mode != entity.ModeOnline {
		s.log.WithFields(logrus.Fields{
			"session_id": session.data.ID,
		}).Debug("Discarding stale suggestion batch")
		return nil, communication.ErrNotOnline
	}

	batch := &entity.SuggestionBatch{
		Phrases:   phrases,
		Fallback:  fallback,
		CreatedAt: time.Now().Unix(),
	}

	session.data.Suggestions = batch
	session.data.SuggestionsPageIndex = 0
	session.data.LastActivity = time.Now()

	s.preloadPageAudio(batch.Page(0))

	return &communication.SuggestionResponse{
		Suggestions: batch,
		PageCount:   batch.PageCount(),
		Fallback:    batch.Fallback,
	}, nil
}

// commitGatewayFailure is the transport-failure path: install a random
// catalog sample so the user still has spatially mapped phrases, surface a
// transient error, and arm the timer that reverts the session to Offline.
func (s *communicationService) commitGatewayFailure(session *commSession, generation uint64) (*communication.SuggestionResponse, error) {
	sample, err := reconcilePhrases(s.catalogSample(2 * entity.SuggestionPageSize))
	if err != nil {
		return nil, communication.ErrGatewayUnreachable
	}

	resp, err := s.commitBatch(session, generation, sample, true)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.clearErrorLocked()
	session.data.GatewayError = "AI suggestions unavailable, showing saved phrases"
	session.errorTimer = time.AfterFunc(s.config.ErrorRevertAfter, func() {
		session.mu.Lock()
		if session.data.GatewayError != "" {
			session.revertToOfflineLocked()
		}
		session.mu.Unlock()
	})
	session.mu.Unlock()

	return resp, nil
}

func suggestionCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return suggestionCachePrefix + hex.EncodeToString(sum[:])
}

func (s *communicationService) cachedPhrases(ctx context.Context, prompt string) ([]entity.Phrase, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.GetSuggestionBatch(ctx, suggestionCacheKey(prompt))
	if err != nil {
		if err != redis.ErrCacheMiss {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Suggestion cache lookup failed")
		}
		return nil, false
	}

	var phrases []entity.Phrase
	if err := jsoniter.UnmarshalFromString(payload, &phrases); err != nil || len(phrases) == 0 {
		return nil, false
	}
	return phrases, true
}

func (s *communicationService) storePhrases(ctx context.Context, prompt string, phrases []entity.Phrase) {
	if s.cache == nil {
		return
	}

	payload, err := jsoniter.MarshalToString(phrases)
	if err != nil {
		return
	}

	if err := s.cache.SetSuggestionBatch(ctx, suggestionCacheKey(prompt), payload, s.config.SuggestionCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Suggestion cache store failed")
	}
}
