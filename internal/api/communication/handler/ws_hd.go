package communicationHandler

import (
	"GestureTalk/internal/api/communication"
	"GestureTalk/pkg/gesture"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterGestureStream mounts the realtime gesture endpoint. Each text
// frame is a gesture trajectory; the resolution result is written back on
// the same connection so a client can stream swipes without per-request
// overhead.
func (h *CommunicationHandler) RegisterGestureStream(router fiber.Router) {
	ws := router.Group("/ws")

	ws.Use(func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	ws.Get("/gesture", websocket.New(h.handleGestureStream))
}

func (h *CommunicationHandler) handleGestureStream(c *websocket.Conn) {
	h.log.Info("Gesture stream client connected")
	defer h.log.Info("Gesture stream client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		var frame communication.WSGestureFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Gesture stream error: %v", err)
			} else {
				h.log.Info("Gesture stream connection closed")
			}
			break
		}

		// Sub-threshold jitter is answered on the connection without
		// touching the session.
		if gesture.ClassifyPoints(frame.StartX, frame.StartY, frame.EndX, frame.EndY) == gesture.DirectionNone {
			if err := c.WriteJSON(communication.GestureResponse{Direction: gesture.DirectionNone}); err != nil {
				h.log.Errorf("Error writing resolution result: %v", err)
				break
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		result, err := h.communicationService.ResolveGesture(ctx, frame.SessionID, communication.GestureRequest{
			StartX: frame.StartX,
			StartY: frame.StartY,
			EndX:   frame.EndX,
			EndY:   frame.EndY,
		})
		cancel()

		if err != nil {
			if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(result); err != nil {
			h.log.Errorf("Error writing resolution result: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
