package croc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomserver/internal/shared"
)

func newTestRoom(toothCountPerJaw int) *Room {
	room := &Room{
		RoomCommon:       shared.NewRoomCommon("ABCDEF", shared.Identity{UserID: "u1", Username: "alice"}, time.Now()),
		ToothCountPerJaw: toothCountPerJaw,
		SelectedTeeth:    make(map[int]struct{}),
		Players:          make(map[string]*Player),
	}
	room.AddPlayer("u1")
	room.AddPlayer("u2")
	room.Players["u1"] = &Player{PlayerCommon: shared.PlayerCommon{UserID: "u1", Username: "alice"}}
	room.Players["u2"] = &Player{PlayerCommon: shared.PlayerCommon{UserID: "u2", Username: "bob"}}
	room.Status = shared.StatusPlaying
	room.TurnOrder = []string{"u1", "u2"}
	startGame(room)
	return room
}

func TestStartGameSeedsTrapInRange(t *testing.T) {
	room := newTestRoom(8)
	assert.True(t, room.HasTrapTooth)
	assert.GreaterOrEqual(t, room.TrapTooth, 1)
	assert.LessOrEqual(t, room.TrapTooth, 16)
	assert.Empty(t, room.SelectedTeeth)
	assert.True(t, room.Players["u1"].Alive)
	assert.True(t, room.Players["u2"].Alive)
}

func TestPickToothAdvancesTurnOnSafePick(t *testing.T) {
	room := newTestRoom(8)
	// Force a known-safe pick by choosing a tooth distinct from the trap.
	safe := room.TrapTooth + 1
	if safe > room.ToothCount() {
		safe = room.TrapTooth - 1
	}

	trap, err := pickTooth(room, shared.Identity{UserID: "u1"}, safe)
	require.NoError(t, err)
	assert.False(t, trap)
	assert.Equal(t, shared.StatusPlaying, room.Status)
	assert.Equal(t, "u2", room.TurnUserID())
	_, selected := room.SelectedTeeth[safe]
	assert.True(t, selected)
}

func TestPickToothOnTrapEndsGame(t *testing.T) {
	room := newTestRoom(8)
	trap := room.TrapTooth

	ok, err := pickTooth(room, shared.Identity{UserID: "u1", Username: "alice"}, trap)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, shared.StatusEnded, room.Status)
	assert.Equal(t, "u1", room.LoserUserID)
	assert.Equal(t, "u2", room.WinnerUserID)
	assert.False(t, room.Players["u1"].Alive)
}

func TestPickToothRejectsDuplicateSelection(t *testing.T) {
	room := newTestRoom(8)
	safe := room.TrapTooth + 1
	if safe > room.ToothCount() {
		safe = room.TrapTooth - 1
	}
	_, err := pickTooth(room, shared.Identity{UserID: "u1"}, safe)
	require.NoError(t, err)

	_, err = pickTooth(room, shared.Identity{UserID: "u2"}, safe)
	assert.Equal(t, shared.ErrAlreadySelected, err)
}

func TestPickToothRejectsOutOfRange(t *testing.T) {
	room := newTestRoom(8)
	_, err := pickTooth(room, shared.Identity{UserID: "u1"}, 99)
	assert.Equal(t, shared.ErrInvalidTooth, err)
}

func TestPickToothRejectsWhenNotPlaying(t *testing.T) {
	room := newTestRoom(8)
	room.Status = shared.StatusLobby
	_, err := pickTooth(room, shared.Identity{UserID: "u1"}, 1)
	assert.Equal(t, shared.ErrNotPlaying, err)
}
