package croc

import (
	"time"

	"roomserver/internal/shared"
)

// PlayerView is the wire-visible shape of one Croc player.
type PlayerView struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	Online   bool      `json:"online"`
	Alive    bool      `json:"alive"`
}

// Snapshot is the public Croc room state. The trap tooth is its one hidden
// value: exposing TrapTooth before the game ends would leak the answer, so
// it is omitted until Status == ended.
type Snapshot struct {
	Code             string       `json:"code"`
	Status           string       `json:"status"`
	HostUserID       string       `json:"hostUserId"`
	CreatedAt        time.Time    `json:"createdAt"`
	ToothCountPerJaw int          `json:"toothCountPerJaw"`
	SelectedTeeth    []int        `json:"selectedTeeth"`
	LastPickedTooth  *int         `json:"lastPickedTooth"`
	LastPickerUserID string       `json:"lastPickerUserId,omitempty"`
	TrapTooth        *int         `json:"trapTooth,omitempty"`
	LoserUserID      string       `json:"loserUserId,omitempty"`
	LoserUsername    string       `json:"loserUsername,omitempty"`
	WinnerUserID     string       `json:"winnerUserId,omitempty"`
	WinnerUsername   string       `json:"winnerUsername,omitempty"`
	TurnUserID       string       `json:"turnUserId,omitempty"`
	Players          []PlayerView `json:"players"`
}

// BuildSnapshot implements the snapshot contract for Croc.
func BuildSnapshot(room *Room) Snapshot {
	selected := make([]int, 0, len(room.SelectedTeeth))
	for t := range room.SelectedTeeth {
		selected = append(selected, t)
	}
	sortInts(selected)

	var lastPicked *int
	if room.HasLastPicked {
		t := room.LastPickedTooth
		lastPicked = &t
	}

	var trapTooth *int
	if room.Status == shared.StatusEnded && room.HasTrapTooth {
		t := room.TrapTooth
		trapTooth = &t
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
			Alive:    p.Alive,
		})
	}

	return Snapshot{
		Code:             room.Code,
		Status:           string(room.Status),
		HostUserID:       room.HostUserID,
		CreatedAt:        room.CreatedAt,
		ToothCountPerJaw: room.ToothCountPerJaw,
		SelectedTeeth:    selected,
		LastPickedTooth:  lastPicked,
		LastPickerUserID: room.LastPickerUserID,
		TrapTooth:        trapTooth,
		LoserUserID:      room.LoserUserID,
		LoserUsername:    room.LoserUsername,
		WinnerUserID:     room.WinnerUserID,
		WinnerUsername:   room.WinnerUsername,
		TurnUserID:       room.TurnUserID(),
		Players:          players,
	}
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
