package communicationService

import (
	"context"
	"time"

	"GestureTalk/internal/api/communication"
	"GestureTalk/internal/entity"
	contextPkg "GestureTalk/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *communicationService) CreateSession(ctx context.Context) (*communication.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session ID")
		return nil, err
	}

	now := time.Now()
	session := &commSession{
		data: entity.CommSession{
			ID:           sessionID,
			Mode:         entity.ModeOffline,
			CreatedAt:    now,
			LastActivity: now,
		},
		playing: make(map[string]bool),
	}

	s.sessionsMu.Lock()
	s.sessions[sessionID] = session
	s.sessionsMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Debug("Communication session created")

	s.preloadPageAudio(s.getCatalog().Page(0))

	return s.sessionResponse(session), nil
}

func (s *communicationService) GetSession(ctx context.Context, sessionID string) (*communication.SessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionResponse(session), nil
}

// ToggleMode flips the session between Offline and Online. Entering Online
// discards any previous suggestion batch; returning to Offline rewinds the
// catalog cursor to the first page. Either way the generation counter is
// bumped so an in-flight suggestion request cannot land on the new state.
func (s *communicationService) ToggleMode(ctx context.Context, sessionID string) (*communication.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.generation++
	session.clearErrorLocked()

	if session.data.Mode == entity.ModeOffline {
		session.data.Mode = entity.ModeOnline
		session.data.Suggestions = nil
		session.data.SuggestionsPageIndex = 0
	} else {
		session.data.Mode = entity.ModeOffline
		session.data.CurrentPageIndex = 0
	}

	session.data.LastActivity = time.Now()
	mode := session.data.Mode
	page := s.activePageLocked(session)
	session.mu.Unlock()

	s.preloadPageAudio(page)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"mode":       mode,
	}).Debug("Session mode toggled")

	return s.sessionResponse(session), nil
}

func (s *communicationService) NextPage(ctx context.Context, sessionID string) (*communication.SessionResponse, error) {
	return s.movePage(ctx, sessionID, 1)
}

func (s *communicationService) PrevPage(ctx context.Context, sessionID string) (*communication.SessionResponse, error) {
	return s.movePage(ctx, sessionID, -1)
}

// movePage advances the mode-appropriate cursor. Requests beyond either
// boundary are silent no-ops, mirroring disabled arrow buttons rather than
// raising errors.
func (s *communicationService) movePage(ctx context.Context, sessionID string, delta int) (*communication.SessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	switch session.data.Mode {
	case entity.ModeOffline:
		next := session.data.CurrentPageIndex + delta
		if next >= 0 && next < s.getCatalog().PageCount() {
			session.data.CurrentPageIndex = next
		}
	case entity.ModeOnline:
		next := session.data.SuggestionsPageIndex + delta
		if next >= 0 && next < session.data.Suggestions.PageCount() {
			session.data.SuggestionsPageIndex = next
		}
	}
	session.data.LastActivity = time.Now()
	page := s.activePageLocked(session)
	session.mu.Unlock()

	s.preloadPageAudio(page)

	return s.sessionResponse(session), nil
}

// DismissError performs the same transition the 5-second timer would:
// clear the transient gateway error and fall back to Offline mode.
func (s *communicationService) DismissError(ctx context.Context, sessionID string) (*communication.SessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.revertToOfflineLocked()
	session.mu.Unlock()

	return s.sessionResponse(session), nil
}

func (s *communicationService) ResetSuggestions(ctx context.Context, sessionID string) (*communication.SessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if session.data.Mode != entity.ModeOnline {
		session.mu.Unlock()
		return nil, communication.ErrNotOnline
	}
	if session.data.Suggestions == nil {
		session.mu.Unlock()
		return nil, communication.ErrNoActiveSuggestions
	}

	session.generation++
	session.data.Suggestions = nil
	session.data.SuggestionsPageIndex = 0
	session.data.LastActivity = time.Now()
	session.mu.Unlock()

	return s.sessionResponse(session), nil
}

// activePageLocked implements the active-page selection rule: the catalog
// window in Offline mode, the batch window in Online mode with a batch, and
// nothing in Online mode without one. Callers must hold session.mu.
func (s *communicationService) activePageLocked(session *commSession) []entity.Phrase {
	switch session.data.Mode {
	case entity.ModeOffline:
		return s.getCatalog().Page(session.data.CurrentPageIndex)
	case entity.ModeOnline:
		if session.data.Suggestions == nil {
			return nil
		}
		return session.data.Suggestions.Page(session.data.SuggestionsPageIndex)
	}
	return nil
}

func (s *communicationService) sessionResponse(session *commSession) *communication.SessionResponse {
	session.mu.Lock()
	defer session.mu.Unlock()

	data := session.data
	activePage := s.activePageLocked(session)

	pageCount := s.getCatalog().PageCount()
	if data.Mode == entity.ModeOnline {
		pageCount = data.Suggestions.PageCount()
	}

	return &communication.SessionResponse{
		Session:    &data,
		ActivePage: activePage,
		PageCount:  pageCount,
	}
}

// clearErrorLocked drops the transient gateway error and stops its pending
// reversion timer. Caller holds session.mu.
func (session *commSession) clearErrorLocked() {
	session.data.GatewayError = ""
	if session.errorTimer != nil {
		session.errorTimer.Stop()
		session.errorTimer = nil
	}
}

// revertToOfflineLocked is the shared tail of dismissError and the error
// timer: clear the error and return to Offline mode with the catalog cursor
// rewound. Caller holds session.mu.
func (session *commSession) revertToOfflineLocked() {
	session.clearErrorLocked()
	if session.data.Mode == entity.ModeOnline {
		session.generation++
		session.data.Mode = entity.ModeOffline
		session.data.CurrentPageIndex = 0
	}
	session.data.LastActivity = time.Now()
}
