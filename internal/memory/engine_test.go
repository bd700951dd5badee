package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomserver/internal/shared"
)

func newTestRoom(cardCount int) *Room {
	room := &Room{
		RoomCommon: shared.NewRoomCommon("ABCDEF", shared.Identity{UserID: "u1", Username: "alice"}, time.Now()),
		CardCount:  cardCount,
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

func findMatchingPair(room *Room) (int, int) {
	for i := range room.Cards {
		for j := i + 1; j < len(room.Cards); j++ {
			if room.Cards[i].CountryKey == room.Cards[j].CountryKey {
				return i, j
			}
		}
	}
	panic("no matching pair found")
}

func findMismatchedPair(room *Room) (int, int) {
	for i := range room.Cards {
		for j := i + 1; j < len(room.Cards); j++ {
			if room.Cards[i].CountryKey != room.Cards[j].CountryKey {
				return i, j
			}
		}
	}
	panic("no mismatched pair found")
}

func TestNewDeckHasEvenMultiplicities(t *testing.T) {
	room := newTestRoom(20)
	require.Len(t, room.Cards, 20)
	counts := make(map[string]int)
	for _, c := range room.Cards {
		counts[c.CountryKey]++
	}
	for key, n := range counts {
		assert.Equal(t, 2, n, "country %s", key)
	}
}

func TestPickCardFirstRevealDoesNotMatch(t *testing.T) {
	room := newTestRoom(20)
	result, err := pickCard(room, shared.Identity{UserID: "u1"}, 0)
	require.NoError(t, err)
	assert.False(t, result.matched)
	assert.Equal(t, []int{0}, room.RevealedIndices)
	assert.False(t, room.Resolving)
}

func TestPickCardMatchIncrementsScoreAndRetainsTurn(t *testing.T) {
	room := newTestRoom(20)
	i, j := findMatchingPair(room)

	_, err := pickCard(room, shared.Identity{UserID: "u1"}, i)
	require.NoError(t, err)
	result, err := pickCard(room, shared.Identity{UserID: "u1"}, j)
	require.NoError(t, err)

	assert.True(t, result.matched)
	assert.Equal(t, 1, room.Players["u1"].Score)
	assert.Equal(t, 1, room.MatchedCount)
	assert.Empty(t, room.RevealedIndices)
	assert.True(t, room.Cards[i].Matched)
	assert.True(t, room.Cards[j].Matched)
}

func TestPickCardMismatchSetsResolving(t *testing.T) {
	room := newTestRoom(20)
	i, j := findMismatchedPair(room)

	_, err := pickCard(room, shared.Identity{UserID: "u1"}, i)
	require.NoError(t, err)
	result, err := pickCard(room, shared.Identity{UserID: "u1"}, j)
	require.NoError(t, err)

	assert.False(t, result.matched)
	assert.True(t, room.Resolving)
	assert.Equal(t, []int{i, j}, room.RevealedIndices)
}

func TestResolveMismatchClearsAndAdvancesTurn(t *testing.T) {
	room := newTestRoom(20)
	i, j := findMismatchedPair(room)
	_, err := pickCard(room, shared.Identity{UserID: "u1"}, i)
	require.NoError(t, err)
	_, err = pickCard(room, shared.Identity{UserID: "u1"}, j)
	require.NoError(t, err)

	resolveMismatch(room)

	assert.Empty(t, room.RevealedIndices)
	assert.False(t, room.Resolving)
	assert.Equal(t, "u2", room.TurnUserID())
}

func TestPickCardRejectsWhileResolving(t *testing.T) {
	room := newTestRoom(20)
	i, j := findMismatchedPair(room)
	_, err := pickCard(room, shared.Identity{UserID: "u1"}, i)
	require.NoError(t, err)
	_, err = pickCard(room, shared.Identity{UserID: "u1"}, j)
	require.NoError(t, err)

	_, err = pickCard(room, shared.Identity{UserID: "u1"}, 2)
	assert.Equal(t, shared.ErrResolving, err)
}

func TestPickCardRejectsAlreadyMatched(t *testing.T) {
	room := newTestRoom(20)
	i, j := findMatchingPair(room)
	_, err := pickCard(room, shared.Identity{UserID: "u1"}, i)
	require.NoError(t, err)
	_, err = pickCard(room, shared.Identity{UserID: "u1"}, j)
	require.NoError(t, err)

	_, err = pickCard(room, shared.Identity{UserID: "u1"}, i)
	assert.Equal(t, shared.ErrAlreadyMatched, err)
}

func TestPickCardRejectsOutOfRangeIndex(t *testing.T) {
	room := newTestRoom(20)
	_, err := pickCard(room, shared.Identity{UserID: "u1"}, 999)
	assert.Equal(t, shared.ErrInvalidIndex, err)
}

func TestComputeWinnersTiesAllMaxScorers(t *testing.T) {
	room := newTestRoom(20)
	room.Players["u1"].Score = 3
	room.Players["u2"].Score = 3
	winners := computeWinners(room)
	assert.Len(t, winners, 2)
}
