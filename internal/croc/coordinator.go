package croc

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

// New builds a Croc Coordinator with its own private registry.
func New(cfg config.Config, log *zap.Logger) *Coordinator {
	return &Coordinator{registry: registry.New[Room](), cfg: cfg, log: log.Named("croc")}
}

// Create allocates a code and seeds a room with the host as its sole player.
func (c *Coordinator) Create(host shared.Identity, toothCountPerJaw int) (string, error) {
	if err := shared.ValidateUsername(host.Username); err != nil {
		return "", err
	}
	if toothCountPerJaw < MinToothCountPerJaw || toothCountPerJaw > MaxToothCountPerJaw {
		return "", shared.ErrInvalidToothCountPerJaw
	}

	code, err := c.registry.AllocateCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	room := &Room{
		RoomCommon:       shared.NewRoomCommon(code, host, now),
		ToothCountPerJaw: toothCountPerJaw,
		SelectedTeeth:    make(map[int]struct{}),
		Players:          make(map[string]*Player),
	}
	room.AddPlayer(host.UserID)
	room.Players[host.UserID] = &Player{PlayerCommon: shared.PlayerCommon{UserID: host.UserID, Username: host.Username, JoinedAt: now}}

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

// Join implements the idempotent join policy.
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

	room.AddPlayer(caller.UserID)
	room.Players[caller.UserID] = &Player{PlayerCommon: shared.PlayerCommon{UserID: caller.UserID, Username: caller.Username, JoinedAt: time.Now()}}

	snap := BuildSnapshot(room)
	c.broadcast(room)
	return &snap, nil
}

// Leave removes caller from the room, reconciles turn order and host, and
// declares a winner-by-forfeit if the room drops below two alive players
// while playing.
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

	room.RemovePlayer(caller.UserID)
	delete(room.Players, caller.UserID)
	emptiedWhilePlaying := turnorder.OnLeave(&room.RoomCommon, caller.UserID)
	transferHostIfNeeded(room)

	if emptiedWhilePlaying {
		room.Status = shared.StatusEnded
	} else if room.Status == shared.StatusPlaying && len(room.Players) < 2 {
		room.Status = shared.StatusEnded
		setWinnerOtherThan(room, caller.UserID)
	}

	c.broadcast(room)
	c.pruneIfEmpty(room)
	return nil
}

// Start begins a round: requires host, at least two players, seeds the
// trap and turn order.
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
	if len(room.Order) < 2 {
		return shared.ErrNeedTwoPlayers
	}

	room.Status = shared.StatusPlaying
	turnorder.BuildOrder(&room.RoomCommon)
	startGame(room)

	c.broadcast(room)
	return nil
}

// Pick implements POST /croc/<code>/pick.
func (c *Coordinator) Pick(caller shared.Identity, code string, tooth int) (trap bool, err error) {
	room, err := c.get(code)
	if err != nil {
		return false, err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.HasPlayer(caller.UserID) {
		return false, shared.ErrNotInRoom
	}
	if room.TurnUserID() != caller.UserID {
		return false, shared.ErrNotYourTurn
	}

	trap, err = pickTooth(room, caller, tooth)
	if err != nil {
		return false, err
	}
	c.broadcast(room)
	c.pruneIfEmpty(room)
	return trap, nil
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
