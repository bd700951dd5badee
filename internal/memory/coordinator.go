package memory

import (
	"time"

	"go.uber.org/zap"

	"roomserver/internal/config"
	"roomserver/internal/deadline"
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

// New builds a Memory Coordinator with its own private registry.
func New(cfg config.Config, log *zap.Logger) *Coordinator {
	return &Coordinator{registry: registry.New[Room](), cfg: cfg, log: log.Named("memory")}
}

// Create allocates a code and seeds a room with the host as its sole
// player. CardCount is not part of Create: the host chooses it at Start,
// where it is validated.
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
	if len(room.Order) >= Capacity {
		return nil, shared.ErrRoomFull
	}

	room.AddPlayer(caller.UserID)
	room.Players[caller.UserID] = &Player{PlayerCommon: shared.PlayerCommon{UserID: caller.UserID, Username: caller.Username, JoinedAt: time.Now()}}

	snap := BuildSnapshot(room)
	c.broadcast(room)
	return &snap, nil
}

// Leave removes caller, reconciles the mismatch timer and turn order.
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

	room.ResolveTimer.Cancel()
	room.Resolving = false
	room.RevealedIndices = nil

	room.RemovePlayer(caller.UserID)
	delete(room.Players, caller.UserID)
	emptiedWhilePlaying := turnorder.OnLeave(&room.RoomCommon, caller.UserID)
	transferHostIfNeeded(room)

	if emptiedWhilePlaying {
		room.Status = shared.StatusEnded
		room.Winners = nil
	}

	c.broadcast(room)
	c.pruneIfEmpty(room)
	return nil
}

// Start begins a round: requires host, at least one player, a valid card
// count; rebuilds the deck and seeds turn order.
func (c *Coordinator) Start(caller shared.Identity, code string, cardCount int) error {
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
	if len(room.Order) == 0 {
		return shared.ErrNoPlayers
	}
	if _, ok := AllowedCardCounts[cardCount]; !ok {
		return shared.ErrInvalidCardCount
	}

	room.CardCount = cardCount
	room.Status = shared.StatusPlaying
	turnorder.BuildOrder(&room.RoomCommon)
	startGame(room)

	c.broadcast(room)
	return nil
}

// Pick implements POST /memory/<code>/pick.
func (c *Coordinator) Pick(caller shared.Identity, code string, index int) (matched bool, ended bool, err error) {
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

	result, err := pickCard(room, caller, index)
	if err != nil {
		return false, false, err
	}

	if room.Resolving {
		c.scheduleMismatchResolution(room)
	}

	c.broadcast(room)
	c.pruneIfEmpty(room)
	return result.matched, result.ended, nil
}

// scheduleMismatchResolution arms the 1100ms deferred task that clears the
// revealed pair and advances the turn, per the mismatch-resolution timer.
func (c *Coordinator) scheduleMismatchResolution(room *Room) {
	code := room.Code
	room.ResolveTimer.Schedule(c.cfg.MismatchDelay, func(tok deadline.Token) {
		c.fireMismatchResolution(code, tok)
	})
}

func (c *Coordinator) fireMismatchResolution(code string, tok deadline.Token) {
	room, ok := c.registry.Get(code)
	if !ok {
		return
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.ResolveTimer.Fire(tok) {
		return
	}
	if room.Status != shared.StatusPlaying || !room.Resolving {
		return
	}

	resolveMismatch(room)
	c.broadcast(room)
	c.pruneIfEmpty(room)
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
	room.ResolveTimer.Cancel()
	subscription.CloseAll(&room.RoomCommon)
	c.registry.Delete(room.Code)
}
