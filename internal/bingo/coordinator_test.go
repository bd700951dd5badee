package bingo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roomserver/internal/config"
	"roomserver/internal/shared"
)

func testCoordinator() *Coordinator {
	cfg := config.Load()
	cfg.BotMoveDelay = 20 * time.Millisecond
	return New(cfg, zap.NewNop())
}

func TestCreateJoinStartSoloVsBot(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}

	code, err := c.Create(host, CreateOptions{Size: 5, BotEnabled: true})
	require.NoError(t, err)
	require.Len(t, code, 6)

	room, err := c.get(code)
	require.NoError(t, err)
	room.Mu.Lock()
	assert.Len(t, room.Order, 2) // host + bot
	assert.Contains(t, room.Players, shared.BotUserID)
	room.Mu.Unlock()

	require.NoError(t, c.Start(host, code, 10))

	room.Mu.Lock()
	assert.Equal(t, shared.StatusPlaying, room.Status)
	assert.Equal(t, []string{"1", shared.BotUserID}, room.TurnOrder)
	room.Mu.Unlock()

	require.NoError(t, c.Draw(host, code, 7))

	room.Mu.Lock()
	_, called := room.CalledNumbers[7]
	turn := room.TurnUserID()
	room.Mu.Unlock()
	assert.True(t, called)
	assert.Equal(t, shared.BotUserID, turn)

	// The bot's deferred draw should fire within a couple of scheduled delays.
	require.Eventually(t, func() bool {
		room.Mu.Lock()
		defer room.Mu.Unlock()
		return len(room.CalledNumbers) == 2
	}, 500*time.Millisecond, 5*time.Millisecond)

	room.Mu.Lock()
	assert.Equal(t, ReasonBotPick, room.LastDrawReason)
	assert.Equal(t, "1", room.TurnUserID())
	room.Mu.Unlock()
}

func TestJoinSecondHumanRemovesBot(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	code, err := c.Create(host, CreateOptions{Size: 5, BotEnabled: true})
	require.NoError(t, err)

	_, err = c.Join(shared.Identity{UserID: "2", Username: "bob"}, code)
	require.NoError(t, err)

	room, _ := c.get(code)
	room.Mu.Lock()
	defer room.Mu.Unlock()
	assert.NotContains(t, room.Players, shared.BotUserID)
	assert.Len(t, room.Order, 2)
}

func TestJoinIsIdempotent(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	code, err := c.Create(host, CreateOptions{Size: 5, BotEnabled: false})
	require.NoError(t, err)

	snap1, err := c.Join(host, code)
	require.NoError(t, err)
	snap2, err := c.Join(host, code)
	require.NoError(t, err)
	assert.Equal(t, len(snap1.Players), len(snap2.Players))
}

func TestLeaveEmptyRoomIsGarbageCollected(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	code, err := c.Create(host, CreateOptions{Size: 5, BotEnabled: false})
	require.NoError(t, err)

	require.NoError(t, c.Leave(host, code))
	_, err = c.get(code)
	assert.Equal(t, shared.ErrRoomNotFound, err)

	// A second leave on a gone room returns room_not_found, per §8.
	err = c.Leave(host, code)
	assert.Equal(t, shared.ErrRoomNotFound, err)
}

func TestDrawByNonTurnHolderRejected(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	other := shared.Identity{UserID: "2", Username: "bob"}
	code, err := c.Create(host, CreateOptions{Size: 5, BotEnabled: false})
	require.NoError(t, err)
	_, err = c.Join(other, code)
	require.NoError(t, err)
	require.NoError(t, c.Start(host, code, 10))

	err = c.Draw(other, code, 1)
	assert.Equal(t, shared.ErrNotYourTurn, err)
}
