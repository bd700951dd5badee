package memory

import (
	"roomserver/internal/catalogue"
	"roomserver/internal/randsrc"
	"roomserver/internal/shared"
)

// startGame rebuilds the deck from a random subset of the catalogue, resets
// scores and match bookkeeping.
func startGame(room *Room) {
	room.Cards = newDeck(room.CardCount)
	room.MatchedCount = 0
	room.RevealedIndices = nil
	room.Resolving = false
	room.Winners = nil
	for _, p := range room.Players {
		p.Score = 0
	}
}

// newDeck draws cardCount/2 distinct countries uniformly at random from the
// catalogue, duplicates each into a pair, and shuffles the result.
func newDeck(cardCount int) []Card {
	pairs := cardCount / 2
	perm := randsrc.Perm(len(catalogue.All))[:pairs]

	cards := make([]Card, 0, cardCount)
	for _, idx := range perm {
		country := catalogue.All[idx]
		cards = append(cards,
			Card{UID: country.Key + "-a", CountryKey: country.Key, Flag: country.Flag, NameKo: country.NameKo},
			Card{UID: country.Key + "-b", CountryKey: country.Key, Flag: country.Flag, NameKo: country.NameKo},
		)
	}

	shuffled := make([]Card, len(cards))
	perm2 := randsrc.Perm(len(cards))
	for newPos, oldPos := range perm2 {
		shuffled[newPos] = cards[oldPos]
	}
	return shuffled
}

func isRevealed(room *Room, index int) bool {
	for _, i := range room.RevealedIndices {
		if i == index {
			return true
		}
	}
	return false
}

// pickResult describes what happened after a pick, for the coordinator to
// decide whether to schedule the mismatch timer, keep the turn, or end the
// game.
type pickResult struct {
	matched bool
	ended   bool
}

// pickCard is the pure core of the pick operation.
func pickCard(room *Room, actor shared.Identity, index int) (pickResult, error) {
	if room.Status != shared.StatusPlaying {
		return pickResult{}, shared.ErrNotPlaying
	}
	if room.Resolving {
		return pickResult{}, shared.ErrResolving
	}
	if index < 0 || index >= len(room.Cards) {
		return pickResult{}, shared.ErrInvalidIndex
	}
	if room.Cards[index].Matched {
		return pickResult{}, shared.ErrAlreadyMatched
	}
	if isRevealed(room, index) {
		return pickResult{}, shared.ErrAlreadyRevealed
	}

	room.RevealedIndices = append(room.RevealedIndices, index)

	if len(room.RevealedIndices) < 2 {
		return pickResult{}, nil
	}

	first, second := room.RevealedIndices[0], room.RevealedIndices[1]
	if room.Cards[first].CountryKey == room.Cards[second].CountryKey {
		room.Cards[first].Matched = true
		room.Cards[second].Matched = true
		room.MatchedCount++
		room.RevealedIndices = nil
		if p, ok := room.Players[actor.UserID]; ok {
			p.Score++
		}

		if room.MatchedCount == room.Pairs() {
			room.Status = shared.StatusEnded
			room.Winners = computeWinners(room)
			return pickResult{matched: true, ended: true}, nil
		}
		return pickResult{matched: true}, nil
	}

	room.Resolving = true
	return pickResult{}, nil
}

// resolveMismatch is called by the deferred timer callback: clears the
// revealed pair, ends resolving, and advances the turn.
func resolveMismatch(room *Room) {
	room.RevealedIndices = nil
	room.Resolving = false
	advanceTurn(room)
}

func advanceTurn(room *Room) {
	if len(room.TurnOrder) == 0 {
		return
	}
	room.TurnCursor = (room.TurnCursor + 1) % len(room.TurnOrder)
}

// computeWinners returns every player tied for the maximum score.
func computeWinners(room *Room) []Winner {
	best := -1
	for _, p := range room.orderedPlayers() {
		if p.Score > best {
			best = p.Score
		}
	}
	var winners []Winner
	for _, p := range room.orderedPlayers() {
		if p.Score == best {
			winners = append(winners, Winner{UserID: p.UserID, Username: p.Username, Score: p.Score})
		}
	}
	return winners
}
