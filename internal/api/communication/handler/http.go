package communicationHandler

import (
	communicationService "GestureTalk/internal/api/communication/service"
	"GestureTalk/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommunicationHandler struct {
	log                  *logrus.Logger
	validator            *validator.Validate
	middleware           middleware.Middleware
	communicationService communicationService.ICommunicationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs communicationService.ICommunicationService,
) *CommunicationHandler {
	return &CommunicationHandler{
		log:                  log,
		validator:            validate,
		middleware:           middleware,
		communicationService: cs,
	}
}

func (h *CommunicationHandler) Start(srv fiber.Router) {
	communication := srv.Group("/communication")

	communication.Use(h.middleware.NewRateLimiter)

	// Session lifecycle and paging
	communication.Post("/sessions", h.CreateSession)
	communication.Get("/sessions/:id", h.GetSession)
	communication.Post("/sessions/:id/mode", h.ToggleMode)
	communication.Post("/sessions/:id/pages/next", h.NextPage)
	communication.Post("/sessions/:id/pages/prev", h.PrevPage)

	// Gesture resolution
	communication.Post("/sessions/:id/gesture", h.ResolveGesture)

	// AI personalization
	communication.Post("/sessions/:id/suggestions", h.RequestSuggestions)
	communication.Delete("/sessions/:id/suggestions", h.ResetSuggestions)
	communication.Post("/sessions/:id/error/dismiss", h.DismissError)

	// Audio serving
	communication.Get("/audio/:phrase_id", h.ServeAudio)

	// Realtime gesture stream
	h.RegisterGestureStream(communication)
}
