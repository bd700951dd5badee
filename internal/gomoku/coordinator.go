package gomoku

import (
	"time"

	"go.uber.org/zap"

	"roomserver/internal/config"
	"roomserver/internal/registry"
	"roomserver/internal/roomcode"
	"roomserver/internal/shared"
	"roomserver/internal/subscription"
	"roomserver/internal/turnorder"
)

// Coordinator composes the registry, presence/subscription bookkeeping,
// turn scheduler and rule engine into the single sequentially-consistent
// object the HTTP layer calls into.
type Coordinator struct {
	registry *registry.Registry[Room]
	cfg      config.Config
	log      *zap.Logger
}

// New builds a Gomoku Coordinator with its own private registry.
func New(cfg config.Config, log *zap.Logger) *Coordinator {
	return &Coordinator{registry: registry.New[Room](), cfg: cfg, log: log.Named("gomoku")}
}

// Create allocates a code and seeds a room with the host as its sole player.
func (c *Coordinator) Create(host shared.Identity) (string, error) {
	if err := shared.ValidateUsername(host.Username); err != nil {
		return "", err
	}
	code, err := c.registry.AllocateCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	room := &Room{
		RoomCommon: shared.NewRoomCommon(code, host, now),
		Players:    make(map[string]*Player),
	}
	room.AddPlayer(host.UserID)
	room.Players[host.UserID] = &Player{PlayerCommon: shared.PlayerCommon{UserID: host.UserID, Username: host.Username, JoinedAt: now}}
	room.Players[host.UserID].Stone = assignJoinStone(room)

	c.registry.Set(code, room)
	c.log.Info("room created", zap.String("code", code), zap.String("host", host.UserID))
	return code, nil
}

func transferHostIfNeeded(room *Room) {
	if room.HostUserID != "" && room.HasPlayer(room.HostUserID) {
		return
	}
	if len(room.Order) > 0 {
		room.HostUserID = room.Order[0]
		return
	}
	room.HostUserID = ""
}

func (c *Coordinator) get(code string) (*Room, error) {
	room, ok := c.registry.Get(roomcode.Canonicalize(code))
	if !ok {
		return nil, shared.ErrRoomNotFound
	}
	return room, nil
}

// Join implements the idempotent join policy, capped at two players.
func (c *Coordinator) Join(caller shared.Identity, code string) (*Snapshot, error) {
	room, err := c.get(code)
	if err != nil {
		return nil, err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if p, ok := room.Players[caller.UserID]; ok {
		p.Online = true
		snap := BuildSnapshot(room)
		c.broadcast(room)
		return &snap, nil
	}

	if err := shared.ValidateUsername(caller.Username); err != nil {
		return nil, err
	}
	if room.Status != shared.StatusLobby {
		return nil, shared.ErrRoomNotJoinable
	}
	if len(room.Order) >= Capacity {
		return nil, shared.ErrRoomFull
	}

	room.AddPlayer(caller.UserID)
	room.Players[caller.UserID] = &Player{PlayerCommon: shared.PlayerCommon{UserID: caller.UserID, Username: caller.Username, JoinedAt: time.Now()}}
	room.Players[caller.UserID].Stone = assignJoinStone(room)

	snap := BuildSnapshot(room)
	c.broadcast(room)
	return &snap, nil
}

// Leave removes caller; if it drops the room below two players while
// playing, the remaining player wins by forfeit.
func (c *Coordinator) Leave(caller shared.Identity, code string) error {
	room, err := c.get(code)
	if err != nil {
		return err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.HasPlayer(caller.UserID) {
		return nil
	}

	wasPlaying := room.Status == shared.StatusPlaying
	room.RemovePlayer(caller.UserID)
	delete(room.Players, caller.UserID)
	turnorder.OnLeave(&room.RoomCommon, caller.UserID)
	transferHostIfNeeded(room)

	if wasPlaying {
		room.Status = shared.StatusEnded
		room.WinnerUserID = ""
		room.WinnerUsername = ""
		room.WinnerStone = ""
		if remaining := room.orderedPlayers(); len(remaining) > 0 {
			p := remaining[0]
			room.WinnerUserID = p.UserID
			room.WinnerUsername = p.Username
			room.WinnerStone = p.Stone
		}
	}

	c.broadcast(room)
	c.pruneIfEmpty(room)
	return nil
}

// Start begins a round: requires host, exactly two players.
func (c *Coordinator) Start(caller shared.Identity, code string) error {
	room, err := c.get(code)
	if err != nil {
		return err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.HostUserID != caller.UserID {
		return shared.ErrHostOnly
	}
	if room.Status != shared.StatusLobby {
		return nil
	}
	if len(room.Order) != Capacity {
		return shared.ErrNeedTwoPlayers
	}

	room.Status = shared.StatusPlaying
	turnorder.BuildOrder(&room.RoomCommon)
	startGame(room)

	c.broadcast(room)
	return nil
}

// Move implements POST /gomoku/<code>/move.
func (c *Coordinator) Move(caller shared.Identity, code string, index int) (ended bool, draw bool, err error) {
	room, err := c.get(code)
	if err != nil {
		return false, false, err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.HasPlayer(caller.UserID) {
		return false, false, shared.ErrNotInRoom
	}
	if room.TurnUserID() != caller.UserID {
		return false, false, shared.ErrNotYourTurn
	}

	result, err := placeStone(room, caller, index)
	if err != nil {
		return false, false, err
	}
	c.broadcast(room)
	c.pruneIfEmpty(room)
	return result.ended, result.draw, nil
}

// Subscribe attaches a new stream to the room.
func (c *Coordinator) Subscribe(caller shared.Identity, code string, sink shared.SinkHandle) error {
	room, err := c.get(code)
	if err != nil {
		return err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	p, ok := room.Players[caller.UserID]
	if !ok {
		return shared.ErrNotInRoom
	}
	p.Online = true

	snap := BuildSnapshot(room)
	return subscription.Subscribe(&room.RoomCommon, caller.UserID, sink, snap, c.cfg.HeartbeatInterval)
}

// Unsubscribe detaches a stream.
func (c *Coordinator) Unsubscribe(code string, userID string, sink shared.SinkHandle) {
	room, err := c.get(code)
	if err != nil {
		return
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	becameOffline := subscription.Unsubscribe(&room.RoomCommon, userID, sink)
	if becameOffline {
		if p, ok := room.Players[userID]; ok {
			p.Online = false
		}
		c.broadcast(room)
	}
}

func (c *Coordinator) broadcast(room *Room) {
	snap := BuildSnapshot(room)
	if err := subscription.Broadcast(&room.RoomCommon, snap); err != nil {
		c.log.Warn("broadcast failed", zap.Error(err))
	}
}

func (c *Coordinator) pruneIfEmpty(room *Room) {
	if !room.IsEmpty() {
		return
	}
	subscription.CloseAll(&room.RoomCommon)
	c.registry.Delete(room.Code)
}
