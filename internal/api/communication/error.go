package communication

import (
	"errors"

	"GestureTalk/pkg/response"
)

var (
	ErrSessionNotFound      = response.NewError(404, "session not found")
	ErrCatalogUnavailable   = response.NewError(503, "phrase catalog could not be loaded")
	ErrEmptyPrompt          = response.NewError(400, "prompt must not be empty")
	ErrNotOnline            = response.NewError(409, "session is not in online mode")
	ErrBatchAlreadyActive   = response.NewError(409, "a suggestion batch is already active")
	ErrNoActiveSuggestions  = response.NewError(404, "no active suggestion batch")
	ErrAudioNotFound        = response.NewError(404, "audio resource not found")
	ErrSuggestionInProgress = response.NewError(409, "a suggestion request is already in flight")
)

// ErrInsufficientData marks a reconciler call with an empty candidate list.
// Callers always substitute a non-empty fallback list first, so seeing this
// error indicates a programming error, not a user-facing condition.
var ErrInsufficientData = errors.New("reconciler requires at least one candidate phrase")

// ErrGatewayUnreachable means the personalization provider itself could not
// be contacted (timeout, transport failure). Distinct from a provider that
// answered with garbage: that case is absorbed inside the gateway as the
// fixed fallback set and never surfaces here.
var ErrGatewayUnreachable = errors.New("personalization gateway unreachable")
