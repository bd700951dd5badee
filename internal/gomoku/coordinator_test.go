package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roomserver/internal/config"
	"roomserver/internal/shared"
)

func testCoordinator() *Coordinator {
	return New(config.Load(), zap.NewNop())
}

func TestCreateJoinStartMoveFlow(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	other := shared.Identity{UserID: "2", Username: "bob"}

	code, err := c.Create(host)
	require.NoError(t, err)

	_, err = c.Join(other, code)
	require.NoError(t, err)

	require.NoError(t, c.Start(host, code))

	room, err := c.get(code)
	require.NoError(t, err)
	room.Mu.Lock()
	firstTurn := room.TurnUserID()
	room.Mu.Unlock()
	require.Equal(t, "1", firstTurn)

	_, _, err = c.Move(host, code, idx(7, 7))
	require.NoError(t, err)

	room.Mu.Lock()
	defer room.Mu.Unlock()
	assert.Equal(t, "2", room.TurnUserID())
}

func TestJoinRejectsThirdPlayer(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	second := shared.Identity{UserID: "2", Username: "bob"}
	third := shared.Identity{UserID: "3", Username: "carol"}

	code, err := c.Create(host)
	require.NoError(t, err)
	_, err = c.Join(second, code)
	require.NoError(t, err)

	_, err = c.Join(third, code)
	assert.Equal(t, shared.ErrRoomFull, err)
}

func TestLeaveDuringPlayDeclaresForfeitWinner(t *testing.T) {
	c := testCoordinator()
	host := shared.Identity{UserID: "1", Username: "alice"}
	other := shared.Identity{UserID: "2", Username: "bob"}

	code, err := c.Create(host)
	require.NoError(t, err)
	_, err = c.Join(other, code)
	require.NoError(t, err)
	require.NoError(t, c.Start(host, code))

	require.NoError(t, c.Leave(other, code))

	room, err := c.get(code)
	require.NoError(t, err)
	room.Mu.Lock()
	defer room.Mu.Unlock()
	assert.Equal(t, shared.StatusEnded, room.Status)
	assert.Equal(t, "1", room.WinnerUserID)
}
