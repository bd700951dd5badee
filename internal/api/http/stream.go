package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roomserver/internal/shared"
	"roomserver/internal/subscription"
)

// roomSubscriber is the slice of a game Coordinator the SSE handler needs:
// every game's Coordinator.Subscribe/Unsubscribe share this exact
// signature, so one handler serves all four games.
type roomSubscriber interface {
	Subscribe(caller shared.Identity, code string, sink shared.SinkHandle) error
	Unsubscribe(code string, userID string, sink shared.SinkHandle)
}

// @Summary Stream a room's state
// @Description Server-Sent Events stream of the room's public snapshot
// @Produce text/event-stream
// @Param game path string true "Game kind"
// @Param code path string true "Room code"
// @Success 200 {string} string "event stream"
// @Router /stream/{game}/{code} [get]
func streamHandler(coord roomSubscriber) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CallerIdentity(c)
		code := c.Param("code")

		sink := subscription.NewSink(identity.UserID)
		if err := coord.Subscribe(identity, code, sink); err != nil {
			respondError(c, err)
			return
		}
		defer coord.Unsubscribe(code, identity.UserID, sink)
		defer sink.Close()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Writer.WriteHeader(nethttp.StatusOK)

		flusher, ok := c.Writer.(nethttp.Flusher)
		if !ok {
			return
		}
		flusher.Flush()

		for {
			select {
			case frame, open := <-sink.Frames():
				if !open {
					return
				}
				if frame.Heartbeat {
					c.Writer.Write([]byte(": heartbeat " + frame.At.UTC().Format(time.RFC3339) + "\n\n"))
				} else {
					c.Writer.Write([]byte("event: " + frame.Event + "\ndata: " + string(frame.Data) + "\n\n"))
				}
				flusher.Flush()
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
