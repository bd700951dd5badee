package gomoku

import "time"

// PlayerView is the wire-visible shape of one Gomoku player.
type PlayerView struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	Online   bool      `json:"online"`
	Stone    string    `json:"stone,omitempty"`
}

// Snapshot is the full public Gomoku room state.
type Snapshot struct {
	Code             string       `json:"code"`
	Status           string       `json:"status"`
	HostUserID       string       `json:"hostUserId"`
	CreatedAt        time.Time    `json:"createdAt"`
	BoardSize        int          `json:"boardSize"`
	Board            []string     `json:"board"`
	WinnerUserID     string       `json:"winnerUserId,omitempty"`
	WinnerUsername   string       `json:"winnerUsername,omitempty"`
	WinnerStone      string       `json:"winnerStone,omitempty"`
	Draw             bool         `json:"draw"`
	LastMoveIndex    *int         `json:"lastMoveIndex"`
	LastMoveByUserID string       `json:"lastMoveByUserId,omitempty"`
	TurnUserID       string       `json:"turnUserId,omitempty"`
	Players          []PlayerView `json:"players"`
}

// BuildSnapshot implements the snapshot contract for Gomoku.
func BuildSnapshot(room *Room) Snapshot {
	board := make([]string, Cells)
	for i, s := range room.Board {
		board[i] = string(s)
	}

	var lastMove *int
	if room.HasLastMove {
		idx := room.LastMoveIndex
		lastMove = &idx
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
			Online:   p.Online,
			Stone:    string(p.Stone),
		})
	}

	return Snapshot{
		Code:             room.Code,
		Status:           string(room.Status),
		HostUserID:       room.HostUserID,
		CreatedAt:        room.CreatedAt,
		BoardSize:        BoardSize,
		Board:            board,
		WinnerUserID:     room.WinnerUserID,
		WinnerUsername:   room.WinnerUsername,
		WinnerStone:      string(room.WinnerStone),
		Draw:             room.Draw,
		LastMoveIndex:    lastMove,
		LastMoveByUserID: room.LastMoveByUserID,
		TurnUserID:       room.TurnUserID(),
		Players:          players,
	}
}
