package subscription

import (
	"encoding/json"
	"time"

	"roomserver/internal/shared"
)

// StateEvent is the only application event name on the wire (see §4.3).
const StateEvent = "state"

// Subscribe attaches sink to room, bumps presence, pushes the initial
// snapshot to the new sink alone, then broadcasts to everyone so existing
// subscribers observe the presence change. Callers must hold the room lock
// and must have already confirmed userID is a current player.
//
// snapshot is the already-built public snapshot for this room (built by
// the caller, since only the game package knows how to shape one).
func Subscribe(room *shared.RoomCommon, userID string, sink shared.SinkHandle, snapshot any, heartbeatInterval time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	room.Subscribers[sink] = struct{}{}
	room.Incref(userID)

	sink.Send(StateEvent, data)
	sink.StartHeartbeat(heartbeatInterval)

	broadcastLocked(room, data)
	return nil
}

// Unsubscribe detaches sink from room and decrements presence. If the
// connection count for userID reaches zero, the caller is responsible for
// flipping that player's Online flag false and broadcasting — it is the
// only one who knows the game-specific Player type.
func Unsubscribe(room *shared.RoomCommon, userID string, sink shared.SinkHandle) (becameOffline bool) {
	delete(room.Subscribers, sink)
	return room.Decref(userID) == 0
}

// Broadcast serializes snapshot once and best-effort writes it to every
// live sink in room. Callers must hold the room lock.
func Broadcast(room *shared.RoomCommon, snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	broadcastLocked(room, data)
	return nil
}

func broadcastLocked(room *shared.RoomCommon, data []byte) {
	// Iterate a copy so a Send-triggered unsubscribe (which never happens
	// synchronously here, but keeps the contract honest per §9) cannot
	// mutate the set we're walking.
	sinks := make([]shared.SinkHandle, 0, len(room.Subscribers))
	for s := range room.Subscribers {
		sinks = append(sinks, s)
	}
	for _, s := range sinks {
		s.Send(StateEvent, data)
	}
}

// CloseAll tears down every subscriber in room. Used when a room is
// garbage-collected because it became empty.
func CloseAll(room *shared.RoomCommon) {
	for s := range room.Subscribers {
		s.Close()
	}
	room.Subscribers = make(map[shared.SinkHandle]struct{})
}
