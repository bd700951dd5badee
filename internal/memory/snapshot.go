package memory

import "time"

// CardView is the wire-visible shape of one card, shaped by viewer
// entitlement: a card is visible iff it is matched or currently revealed;
// otherwise its face fields are nulled out so no viewer can peek ahead.
type CardView struct {
	UID        string  `json:"uid"`
	Matched    bool    `json:"matched"`
	Visible    bool    `json:"visible"`
	CountryKey *string `json:"countryKey,omitempty"`
	Flag       *string `json:"flag,omitempty"`
	NameKo     *string `json:"nameKo,omitempty"`
}

// PlayerView is the wire-visible shape of one Memory player.
type PlayerView struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	Online   bool      `json:"online"`
	Score    int        `json:"score"`
}

// WinnerView mirrors Winner for the wire.
type WinnerView struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Snapshot is the public Memory room state. Unlike Bingo/Croc/Gomoku, it
// hides card faces, but it is still viewer-neutral: BuildSnapshot shapes
// Cards the same way for every subscriber (visibility depends only on room
// state, not on who is asking).
type Snapshot struct {
	Code            string       `json:"code"`
	Status          string       `json:"status"`
	HostUserID      string       `json:"hostUserId"`
	CreatedAt       time.Time    `json:"createdAt"`
	CardCount       int          `json:"cardCount"`
	Cards           []CardView   `json:"cards"`
	MatchedCount    int          `json:"matchedCount"`
	RevealedIndices []int        `json:"revealedIndices"`
	Resolving       bool         `json:"resolving"`
	TurnUserID      string       `json:"turnUserId,omitempty"`
	Winners         []WinnerView `json:"winners"`
	Players         []PlayerView `json:"players"`
}

// BuildSnapshot implements the visibility contract: a card is visible iff
// it is in revealedIndices or already matched.
func BuildSnapshot(room *Room) Snapshot {
	cards := make([]CardView, len(room.Cards))
	for i, card := range room.Cards {
		visible := card.Matched || isRevealed(room, i)
		view := CardView{UID: card.UID, Matched: card.Matched, Visible: visible}
		if visible {
			key, flag, nameKo := card.CountryKey, card.Flag, card.NameKo
			view.CountryKey = &key
			view.Flag = &flag
			view.NameKo = &nameKo
		}
		cards[i] = view
	}

	revealed := append([]int(nil), room.RevealedIndices...)

	winners := make([]WinnerView, 0, len(room.Winners))
	for _, w := range room.Winners {
		winners = append(winners, WinnerView{UserID: w.UserID, Username: w.Username, Score: w.Score})
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
			Score:    p.Score,
		})
	}

	return Snapshot{
		Code:            room.Code,
		Status:          string(room.Status),
		HostUserID:      room.HostUserID,
		CreatedAt:       room.CreatedAt,
		CardCount:       room.CardCount,
		Cards:           cards,
		MatchedCount:    room.MatchedCount,
		RevealedIndices: revealed,
		Resolving:       room.Resolving,
		TurnUserID:      room.TurnUserID(),
		Winners:         winners,
		Players:         players,
	}
}
