package bingo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomserver/internal/shared"
)

func newTestRoom(size int) *Room {
	room := &Room{
		RoomCommon:    shared.NewRoomCommon("ABCDEF", shared.Identity{UserID: "u1", Username: "alice"}, time.Now()),
		Size:          size,
		CalledNumbers: make(map[int]struct{}),
		Players:       make(map[string]*Player),
	}
	room.AddPlayer("u1")
	room.Players["u1"] = &Player{PlayerCommon: shared.PlayerCommon{UserID: "u1", Username: "alice"}, Board: rowMajorBoard(size)}
	room.Status = shared.StatusPlaying
	room.TurnOrder = []string{"u1"}
	return room
}

// rowMajorBoard avoids randomness in tests: board[r][c] = r*size+c+1.
func rowMajorBoard(size int) [][]int {
	b := make([][]int, size)
	for r := 0; r < size; r++ {
		b[r] = make([]int, size)
		for c := 0; c < size; c++ {
			b[r][c] = r*size + c + 1
		}
	}
	return b
}

func TestNewBoardIsPermutation(t *testing.T) {
	board := newBoard(5)
	seen := make(map[int]bool)
	for _, row := range board {
		require.Len(t, row, 5)
		for _, v := range row {
			assert.False(t, seen[v], "duplicate value %d", v)
			seen[v] = true
			assert.True(t, v >= 1 && v <= 25)
		}
	}
	assert.Len(t, seen, 25)
}

func TestCountLinesFirstRow(t *testing.T) {
	board := rowMajorBoard(5)
	called := map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}, 5: {}}
	assert.Equal(t, 1, countLines(board, called))
}

func TestCountLinesDiagonal(t *testing.T) {
	board := rowMajorBoard(5)
	called := map[int]struct{}{1: {}, 7: {}, 13: {}, 19: {}, 25: {}}
	assert.Equal(t, 1, countLines(board, called))
}

func TestDrawNumberWinsOnFifthLine(t *testing.T) {
	room := newTestRoom(5)
	// 1..20 complete rows 0-3 (four lines); 21 then completes column 0 and
	// the anti-diagonal, taking the count past TargetLines.
	for i, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20} {
		err := drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, n)
		require.NoError(t, err, "draw %d", i)
		require.Equal(t, shared.StatusPlaying, room.Status)
	}
	err := drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, 21)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusEnded, room.Status)
	require.Len(t, room.Winners, 1)
	assert.Equal(t, "u1", room.Winners[0].UserID)
	assert.GreaterOrEqual(t, room.Winners[0].Lines, TargetLines)
}

func TestDrawNumberRejectsDuplicate(t *testing.T) {
	room := newTestRoom(5)
	require.NoError(t, drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, 9))
	err := drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, 9)
	assert.Equal(t, shared.ErrNumberAlreadyCalled, err)
}

func TestDrawNumberRejectsOutOfRange(t *testing.T) {
	room := newTestRoom(5)
	err := drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, 99)
	assert.Equal(t, shared.ErrInvalidNumber, err)
}

func TestDrawNumberRejectsWhenNotPlaying(t *testing.T) {
	room := newTestRoom(5)
	room.Status = shared.StatusLobby
	err := drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, 1)
	assert.Equal(t, shared.ErrNotPlaying, err)
}

func TestDrawNumberEndsWithEmptyWinnersWhenExhausted(t *testing.T) {
	room := newTestRoom(5)
	room.Players = make(map[string]*Player) // nobody to evaluate lines for
	for n := 1; n <= 24; n++ {
		room.CalledNumbers[n] = struct{}{}
	}
	room.LastNumber = 24
	room.HasLastNumber = true
	err := drawNumber(room, shared.Identity{UserID: "u1"}, ReasonManualPick, 25)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusEnded, room.Status)
	assert.Empty(t, room.Winners)
}
