package gomoku

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomserver/internal/shared"
)

func newTestRoom() *Room {
	room := &Room{
		RoomCommon: shared.NewRoomCommon("ABCDEF", shared.Identity{UserID: "u1", Username: "alice"}, time.Now()),
		Players:    make(map[string]*Player),
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

func idx(row, col int) int { return row*BoardSize + col }

func TestStartGameAssignsBlackAndWhiteByTurnOrder(t *testing.T) {
	room := newTestRoom()
	assert.Equal(t, StoneBlack, room.Players["u1"].Stone)
	assert.Equal(t, StoneWhite, room.Players["u2"].Stone)
}

func TestPlaceStoneAdvancesTurn(t *testing.T) {
	room := newTestRoom()
	result, err := placeStone(room, shared.Identity{UserID: "u1"}, idx(7, 7))
	require.NoError(t, err)
	assert.False(t, result.ended)
	assert.Equal(t, "u2", room.TurnUserID())
	assert.Equal(t, StoneBlack, room.Board[idx(7, 7)])
}

func TestPlaceStoneRejectsOccupiedCell(t *testing.T) {
	room := newTestRoom()
	_, err := placeStone(room, shared.Identity{UserID: "u1"}, idx(7, 7))
	require.NoError(t, err)
	_, err = placeStone(room, shared.Identity{UserID: "u2"}, idx(7, 7))
	assert.Equal(t, shared.ErrOccupied, err)
}

func TestPlaceStoneWinsOnFiveInARowHorizontal(t *testing.T) {
	room := newTestRoom()
	// Black places four in a row across columns 0-3, row 0, alternating
	// with White elsewhere so turn order stays legal, then the fifth wins.
	blackMoves := []int{idx(0, 0), idx(0, 1), idx(0, 2), idx(0, 3), idx(0, 4)}
	whiteMoves := []int{idx(5, 0), idx(5, 1), idx(5, 2), idx(5, 3)}

	for i := 0; i < 4; i++ {
		_, err := placeStone(room, shared.Identity{UserID: "u1"}, blackMoves[i])
		require.NoError(t, err)
		_, err = placeStone(room, shared.Identity{UserID: "u2"}, whiteMoves[i])
		require.NoError(t, err)
	}

	result, err := placeStone(room, shared.Identity{UserID: "u1"}, blackMoves[4])
	require.NoError(t, err)
	assert.True(t, result.ended)
	assert.Equal(t, shared.StatusEnded, room.Status)
	assert.Equal(t, "u1", room.WinnerUserID)
	assert.Equal(t, StoneBlack, room.WinnerStone)
}

func TestPlaceStoneWinsOnDiagonal(t *testing.T) {
	room := newTestRoom()
	blackMoves := []int{idx(0, 0), idx(1, 1), idx(2, 2), idx(3, 3), idx(4, 4)}
	whiteMoves := []int{idx(9, 0), idx(9, 1), idx(9, 2), idx(9, 3)}

	for i := 0; i < 4; i++ {
		_, err := placeStone(room, shared.Identity{UserID: "u1"}, blackMoves[i])
		require.NoError(t, err)
		_, err = placeStone(room, shared.Identity{UserID: "u2"}, whiteMoves[i])
		require.NoError(t, err)
	}

	result, err := placeStone(room, shared.Identity{UserID: "u1"}, blackMoves[4])
	require.NoError(t, err)
	assert.True(t, result.ended)
	assert.Equal(t, "u1", room.WinnerUserID)
}

func TestPlaceStoneRejectsWhenNotPlaying(t *testing.T) {
	room := newTestRoom()
	room.Status = shared.StatusLobby
	_, err := placeStone(room, shared.Identity{UserID: "u1"}, idx(0, 0))
	assert.Equal(t, shared.ErrNotPlaying, err)
}

func TestPlaceStoneRejectsOutOfRangeIndex(t *testing.T) {
	room := newTestRoom()
	_, err := placeStone(room, shared.Identity{UserID: "u1"}, -1)
	assert.Equal(t, shared.ErrInvalidIndex, err)
	_, err = placeStone(room, shared.Identity{UserID: "u1"}, Cells)
	assert.Equal(t, shared.ErrInvalidIndex, err)
}
