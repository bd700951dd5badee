package bingo

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
// object the HTTP layer calls into, per §4.9.
type Coordinator struct {
	registry *registry.Registry[Room]
	cfg      config.Config
	log      *zap.Logger
}

// New builds a Bingo Coordinator with its own private registry.
func New(cfg config.Config, log *zap.Logger) *Coordinator {
	return &Coordinator{registry: registry.New[Room](), cfg: cfg, log: log.Named("bingo")}
}

// CreateOptions carries the body of POST /create/bingo.
type CreateOptions struct {
	Size       int
	BotEnabled bool
}

// Create allocates a code, seeds a room with the host as its sole human
// player, and optionally seats the bot per §4.5's bot presence policy.
func (c *Coordinator) Create(host shared.Identity, opts CreateOptions) (string, error) {
	if err := shared.ValidateUsername(host.Username); err != nil {
		return "", err
	}
	if opts.Size < MinSize || opts.Size > MaxSize {
		return "", shared.ErrInvalidSize
	}

	code, err := c.registry.AllocateCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	room := &Room{
		RoomCommon:    shared.NewRoomCommon(code, host, now),
		Size:          opts.Size,
		BotEnabled:    opts.BotEnabled,
		CalledNumbers: make(map[int]struct{}),
		Players:       make(map[string]*Player),
	}
	room.AddPlayer(host.UserID)
	room.Players[host.UserID] = &Player{
		PlayerCommon: shared.PlayerCommon{UserID: host.UserID, Username: host.Username, JoinedAt: now},
		Board:        newBoard(opts.Size),
	}
	c.maybeSeatBot(room)

	c.registry.Set(code, room)
	c.log.Info("room created", zap.String("code", code), zap.String("host", host.UserID))
	return code, nil
}

// maybeSeatBot applies the bot presence policy: seat the bot whenever
// botEnabled and the human count is <= 1, only while still in lobby.
func (c *Coordinator) maybeSeatBot(room *Room) {
	if room.Status != shared.StatusLobby {
		return
	}
	_, botPresent := room.Players[shared.BotUserID]
	if room.BotEnabled && room.humanCount() <= 1 && !botPresent {
		room.AddPlayer(shared.BotUserID)
		room.Players[shared.BotUserID] = &Player{
			PlayerCommon: shared.PlayerCommon{UserID: shared.BotUserID, Username: shared.BotUsername, JoinedAt: time.Now(), Online: true},
			Board:        newBoard(room.Size),
			IsBot:        true,
		}
		return
	}
	if botPresent && room.humanCount() >= 2 {
		room.RemovePlayer(shared.BotUserID)
		delete(room.Players, shared.BotUserID)
	}
}

// transferHostIfNeeded reassigns HostUserID to the next surviving human in
// join order, preferring non-bot players, leaving it "" if only the bot
// remains (see Open Questions: this spec does not force an end-of-game on
// a null host).
func transferHostIfNeeded(room *Room) {
	if room.HostUserID != "" && room.HasPlayer(room.HostUserID) {
		return
	}
	room.HostUserID = ""
	for _, id := range room.Order {
		if p, ok := room.Players[id]; ok && !p.IsBot {
			room.HostUserID = id
			return
		}
	}
}

func (c *Coordinator) get(code string) (*Room, error) {
	room, ok := c.registry.Get(roomcodeCanon(code))
	if !ok {
		return nil, shared.ErrRoomNotFound
	}
	return room, nil
}

// Join implements the idempotent join policy of §4.9.
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
	if room.humanCount() >= Capacity {
		return nil, shared.ErrRoomFull
	}

	room.AddPlayer(caller.UserID)
	room.Players[caller.UserID] = &Player{
		PlayerCommon: shared.PlayerCommon{UserID: caller.UserID, Username: caller.Username, JoinedAt: time.Now()},
		Board:        newBoard(room.Size),
	}
	c.maybeSeatBot(room)

	snap := BuildSnapshot(room)
	c.broadcast(room)
	return &snap, nil
}

// Leave implements §4.9's leave policy for Bingo.
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

	room.BotTimer.Cancel()

	room.RemovePlayer(caller.UserID)
	delete(room.Players, caller.UserID)
	emptiedWhilePlaying := turnorder.OnLeave(&room.RoomCommon, caller.UserID)
	transferHostIfNeeded(room)

	if emptiedWhilePlaying {
		room.Status = shared.StatusEnded
		room.Winners = nil
	} else if room.Status == shared.StatusPlaying {
		c.maybeScheduleBotTurn(room)
	}
	c.maybeSeatBot(room)

	c.broadcast(room)
	c.pruneIfEmpty(room)
	return nil
}

// Start begins the game: seeds turn order and the first turn.
func (c *Coordinator) Start(caller shared.Identity, code string, drawTimeoutSeconds int) error {
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
		// No stable error code is defined for "already started" (§7);
		// starting a non-lobby room is treated as an idempotent no-op.
		return nil
	}
	if len(room.Order) == 0 {
		return shared.ErrNoPlayers
	}
	if _, ok := AllowedDrawTimeouts[drawTimeoutSeconds]; !ok {
		return shared.ErrInvalidDrawTimeoutSeconds
	}

	room.DrawTimeoutSeconds = drawTimeoutSeconds
	room.Status = shared.StatusPlaying
	turnorder.BuildOrder(&room.RoomCommon)

	c.maybeScheduleBotTurn(room)
	c.broadcast(room)
	return nil
}

// Draw implements POST /bingo/<code>/draw for a human caller.
func (c *Coordinator) Draw(caller shared.Identity, code string, number int) error {
	room, err := c.get(code)
	if err != nil {
		return err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.HasPlayer(caller.UserID) {
		return shared.ErrNotInRoom
	}
	if room.TurnUserID() != caller.UserID {
		return shared.ErrNotYourTurn
	}

	room.BotTimer.Cancel()
	if err := drawNumber(room, caller, ReasonManualPick, number); err != nil {
		return err
	}
	c.maybeScheduleBotTurn(room)
	c.broadcast(room)
	c.pruneIfEmpty(room)
	return nil
}

// maybeScheduleBotTurn arms the 1200ms deferred bot draw whenever the turn
// now belongs to the bot, per §4.4.
func (c *Coordinator) maybeScheduleBotTurn(room *Room) {
	if room.Status != shared.StatusPlaying || room.TurnUserID() != shared.BotUserID {
		return
	}
	code := room.Code
	room.BotTimer.Schedule(c.cfg.BotMoveDelay, func(tok deadline.Token) {
		c.fireBotTurn(code, tok)
	})
}

// fireBotTurn is the deferred bot-draw callback. It re-acquires the room
// lock and re-validates the timer generation and turn ownership before
// mutating anything, per §5's cancellation discipline.
func (c *Coordinator) fireBotTurn(code string, tok deadline.Token) {
	room, ok := c.registry.Get(code)
	if !ok {
		return
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if !room.BotTimer.Fire(tok) {
		return
	}
	if room.Status != shared.StatusPlaying || room.TurnUserID() != shared.BotUserID {
		return
	}

	number, ok := pickBotNumber(room)
	if !ok {
		return
	}
	if err := drawNumber(room, shared.BotIdentity(), ReasonBotPick, number); err != nil {
		c.log.Warn("bot draw failed", zap.Error(err))
		return
	}
	c.maybeScheduleBotTurn(room)
	c.broadcast(room)
	c.pruneIfEmpty(room)
}

func roomcodeCanon(code string) string { return roomcode.Canonicalize(code) }

// Subscribe attaches a new stream to the room, per §4.3.
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

// Unsubscribe detaches a stream, per §4.3.
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

// pruneIfEmpty removes the room from the registry once no humans remain,
// per the Bingo-specific lifecycle rule: bot-only presence does not keep
// the room alive.
func (c *Coordinator) pruneIfEmpty(room *Room) {
	if room.humanCount() > 0 {
		return
	}
	room.BotTimer.Cancel()
	subscription.CloseAll(&room.RoomCommon)
	c.registry.Delete(room.Code)
}
