// Package subscription implements the per-client live-stream side of the
// Room Coordination Engine: a buffered, non-blocking Sink that the HTTP
// transport loop drains, plus the broadcast/heartbeat helpers every
// coordinator calls under its room lock.
package subscription

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Frame is one wire-ready unit pushed through a Sink: either a named
// "state" event carrying a JSON snapshot, or a commentary heartbeat.
type Frame struct {
	Heartbeat bool
	Event     string
	Data      []byte
	At        time.Time
}

const sinkBuffer = 8

// Sink is the concrete, transport-agnostic subscriber handle. It satisfies
// shared.SinkHandle. Frames() is read by exactly one goroutine: the SSE
// writer loop that owns the HTTP response for this connection.
type Sink struct {
	id       uuid.UUID
	userID   string
	frames   chan Frame
	closeOne sync.Once
	closed   chan struct{}

	heartbeatOnce sync.Once
	stopHeartbeat chan struct{}
}

// NewSink allocates a Sink for userID. It is not yet attached to any room;
// the coordinator does that under the room lock in Subscribe.
func NewSink(userID string) *Sink {
	return &Sink{
		id:            uuid.New(),
		userID:        userID,
		frames:        make(chan Frame, sinkBuffer),
		closed:        make(chan struct{}),
		stopHeartbeat: make(chan struct{}),
	}
}

// ID returns the opaque identity of this stream instance (not the user).
func (s *Sink) ID() uuid.UUID { return s.id }

// UserID implements shared.SinkHandle.
func (s *Sink) UserID() string { return s.userID }

// Send implements shared.SinkHandle. It never blocks: a full buffer means
// the consumer is slow or gone, and the frame is dropped rather than
// stalling the room lock held by the caller.
func (s *Sink) Send(event string, data []byte) bool {
	select {
	case <-s.closed:
		return false
	default:
	}
	select {
	case s.frames <- Frame{Event: event, Data: data}:
		return true
	default:
		return false
	}
}

func (s *Sink) sendHeartbeat(at time.Time) bool {
	select {
	case <-s.closed:
		return false
	default:
	}
	select {
	case s.frames <- Frame{Heartbeat: true, At: at}:
		return true
	default:
		return false
	}
}

// Frames exposes the read side for the transport loop.
func (s *Sink) Frames() <-chan Frame { return s.frames }

// Close implements shared.SinkHandle. Safe to call multiple times and
// concurrently with Send.
func (s *Sink) Close() {
	s.closeOne.Do(func() {
		close(s.stopHeartbeat)
		close(s.closed)
	})
}

// StartHeartbeat launches the periodic comment-heartbeat goroutine for this
// sink, as required by subscribe() in the component design. It stops
// automatically once Close is called.
func (s *Sink) StartHeartbeat(interval time.Duration) {
	s.heartbeatOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-s.stopHeartbeat:
					return
				case t := <-ticker.C:
					s.sendHeartbeat(t)
				}
			}
		}()
	})
}
