package shared

import (
	"sync"
	"time"
)

// RoomStatus is one of the three points on the lobby -> playing -> ended DAG.
type RoomStatus string

const (
	StatusLobby   RoomStatus = "lobby"
	StatusPlaying RoomStatus = "playing"
	StatusEnded   RoomStatus = "ended"
)

// PlayerCommon holds the fields every game's player record shares.
// Game packages embed this and add their own fields (Board, Stone, Alive, ...).
type PlayerCommon struct {
	UserID   string
	Username string
	JoinedAt time.Time
	Online   bool
}

// RoomCommon holds the fields every game's room shares: identity, lifecycle,
// membership bookkeeping, turn order and the room's exclusive lock. Game
// packages embed this as the first field of their Room struct.
type RoomCommon struct {
	Mu sync.Mutex

	Code       string
	Status     RoomStatus
	HostUserID string
	CreatedAt  time.Time

	// Order is the insertion order of userIDs; it is the canonical join
	// order and the seed for TurnOrder at Start.
	Order []string
	// Connections counts live subscriber streams per userID.
	Connections map[string]int

	Subscribers map[SinkHandle]struct{}

	TurnOrder   []string
	TurnCursor  int
}

// NewRoomCommon returns a RoomCommon ready to be embedded and populated by
// a game's Coordinator.Create.
func NewRoomCommon(code string, host Identity, now time.Time) RoomCommon {
	return RoomCommon{
		Code:        code,
		Status:      StatusLobby,
		HostUserID:  host.UserID,
		CreatedAt:   now,
		Order:       nil,
		Connections: make(map[string]int),
		Subscribers: make(map[SinkHandle]struct{}),
	}
}

// TurnUserID derives the current turn holder from TurnOrder/TurnCursor, or
// "" if the room isn't playing or has no players left.
func (r *RoomCommon) TurnUserID() string {
	if r.Status != StatusPlaying || len(r.TurnOrder) == 0 {
		return ""
	}
	return r.TurnOrder[r.TurnCursor%len(r.TurnOrder)]
}

// IsEmpty reports whether the room has zero entries in Order. The Bingo
// coordinator does not use it: it prunes on its human count instead, so a
// bot-only Bingo room is removed too.
func (r *RoomCommon) IsEmpty() bool {
	return len(r.Order) == 0
}

// AddPlayer appends a userID to the insertion order if not already present.
func (r *RoomCommon) AddPlayer(userID string) {
	for _, id := range r.Order {
		if id == userID {
			return
		}
	}
	r.Order = append(r.Order, userID)
}

// RemovePlayer removes a userID from the insertion order.
func (r *RoomCommon) RemovePlayer(userID string) {
	for i, id := range r.Order {
		if id == userID {
			r.Order = append(r.Order[:i:i], r.Order[i+1:]...)
			return
		}
	}
}

// HasPlayer reports whether userID is a current member (by insertion
// order, independent of connection count).
func (r *RoomCommon) HasPlayer(userID string) bool {
	for _, id := range r.Order {
		if id == userID {
			return true
		}
	}
	return false
}

// IsOnline reports whether userID currently has at least one live stream.
func (r *RoomCommon) IsOnline(userID string) bool {
	return r.Connections[userID] > 0
}

// Incref increments the connection count for userID.
func (r *RoomCommon) Incref(userID string) {
	r.Connections[userID]++
}

// Decref decrements the connection count for userID, floored at zero.
// It returns the resulting count.
func (r *RoomCommon) Decref(userID string) int {
	n := r.Connections[userID]
	if n <= 0 {
		return 0
	}
	n--
	r.Connections[userID] = n
	return n
}
