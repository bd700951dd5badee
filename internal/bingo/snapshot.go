package bingo

import "time"

// PlayerView is the wire-visible shape of one Bingo player.
type PlayerView struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	Online   bool      `json:"online"`
	Board    [][]int   `json:"board"`
	IsBot    bool      `json:"isBot"`
	Lines    int       `json:"lines"`
}

// WinnerView mirrors Winner for the wire.
type WinnerView struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Lines    int    `json:"lines"`
}

// Snapshot is the full public Bingo room state, a pure function of Room
// (Bingo has no per-viewer hidden information, per §4.3).
type Snapshot struct {
	Code       string       `json:"code"`
	Status     string       `json:"status"`
	HostUserID string       `json:"hostUserId"`
	CreatedAt  time.Time    `json:"createdAt"`
	Size       int          `json:"size"`
	TargetLines int         `json:"targetLines"`
	BotEnabled bool         `json:"botEnabled"`
	CalledNumbers []int     `json:"calledNumbers"`
	LastNumber *int         `json:"lastNumber"`
	LastDrawByUserID   string `json:"lastDrawByUserId,omitempty"`
	LastDrawByUsername string `json:"lastDrawByUsername,omitempty"`
	LastDrawReason     string `json:"lastDrawReason,omitempty"`
	DrawTimeoutSeconds int    `json:"drawTimeoutSeconds"`
	TurnEndsAt *time.Time     `json:"turnEndsAt"`
	TurnUserID string          `json:"turnUserId,omitempty"`
	Winners    []WinnerView    `json:"winners"`
	Players    []PlayerView    `json:"players"`
}

// BuildSnapshot implements §4.3's snapshot contract for Bingo.
func BuildSnapshot(room *Room) Snapshot {
	called := make([]int, 0, len(room.CalledNumbers))
	for n := range room.CalledNumbers {
		called = append(called, n)
	}
	sortInts(called)

	var lastNumber *int
	if room.HasLastNumber {
		n := room.LastNumber
		lastNumber = &n
	}

	winners := make([]WinnerView, 0, len(room.Winners))
	for _, w := range room.Winners {
		winners = append(winners, WinnerView{UserID: w.UserID, Username: w.Username, Lines: w.Lines})
	}

	players := make([]PlayerView, 0, len(room.Order))
	for _, id := range room.Order {
		p, ok := room.Players[id]
		if !ok {
			continue
		}
		players = append(players, PlayerView{
			UserID:   p.UserID,
			Username: p.Username,
			JoinedAt: p.JoinedAt,
			Online:   p.Online || p.IsBot,
			Board:    p.Board,
			IsBot:    p.IsBot,
			Lines:    countLines(p.Board, room.CalledNumbers),
		})
	}

	return Snapshot{
		Code:               room.Code,
		Status:             string(room.Status),
		HostUserID:         room.HostUserID,
		CreatedAt:          room.CreatedAt,
		Size:               room.Size,
		TargetLines:        TargetLines,
		BotEnabled:         room.BotEnabled,
		CalledNumbers:      called,
		LastNumber:         lastNumber,
		LastDrawByUserID:   room.LastDrawByUserID,
		LastDrawByUsername: room.LastDrawByUsername,
		LastDrawReason:     room.LastDrawReason,
		DrawTimeoutSeconds: room.DrawTimeoutSeconds,
		TurnEndsAt:         room.TurnEndsAt,
		TurnUserID:         room.TurnUserID(),
		Winners:            winners,
		Players:            players,
	}
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
