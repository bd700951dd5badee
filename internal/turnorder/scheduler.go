// Package turnorder implements the Turn Scheduler component: the cursor
// over an insertion-ordered player list, shared by every game's
// coordinator and operating directly on shared.RoomCommon's TurnOrder /
// TurnCursor fields.
package turnorder

import "roomserver/internal/shared"

// BuildOrder snapshots room.Order (insertion order) into TurnOrder and
// resets the cursor to zero. Call this from each game's Start.
func BuildOrder(room *shared.RoomCommon) {
	room.TurnOrder = append([]string(nil), room.Order...)
	room.TurnCursor = 0
}

// Advance moves the cursor to the next entry in TurnOrder.
func Advance(room *shared.RoomCommon) {
	if len(room.TurnOrder) == 0 {
		room.TurnCursor = 0
		return
	}
	room.TurnCursor = (room.TurnCursor + 1) % len(room.TurnOrder)
}

// OnLeave removes userID from TurnOrder (if present) and clamps the
// cursor, per §4.4. It reports whether TurnOrder became empty while the
// room was playing, in which case the caller's game package is
// responsible for transitioning Status to ended and computing a winner.
func OnLeave(room *shared.RoomCommon, userID string) (emptiedWhilePlaying bool) {
	held := room.TurnUserID() == userID

	idx := -1
	for i, id := range room.TurnOrder {
		if id == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	room.TurnOrder = append(room.TurnOrder[:idx:idx], room.TurnOrder[idx+1:]...)

	if len(room.TurnOrder) == 0 {
		room.TurnCursor = 0
		return room.Status == shared.StatusPlaying
	}

	if held {
		// The cursor now effectively points at the following player by
		// virtue of the shift; if the removed player was before the
		// cursor position the cursor must shift back by one to keep
		// pointing at the same logical successor.
		if idx < room.TurnCursor {
			room.TurnCursor--
		}
	} else if idx < room.TurnCursor {
		room.TurnCursor--
	}

	if room.TurnCursor < 0 {
		room.TurnCursor = 0
	}
	room.TurnCursor %= len(room.TurnOrder)
	return false
}
