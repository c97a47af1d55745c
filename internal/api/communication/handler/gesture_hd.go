package communicationHandler

import (
	"GestureTalk/internal/api/communication"
	contextPkg "GestureTalk/pkg/context"
	"GestureTalk/pkg/handlerUtil"
	"GestureTalk/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CommunicationHandler) ResolveGesture(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req communication.GestureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Resolving gesture")

	response, err := h.communicationService.ResolveGesture(c, ctx.Params("id"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "resolve_gesture")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommunicationHandler) ServeAudio(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	data, err := h.communicationService.ServeAudioFile(c, ctx.Params("phrase_id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "serve_audio")
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return ctx.Status(fiber.StatusOK).Send(data)
}
