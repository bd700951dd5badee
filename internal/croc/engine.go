package croc

import (
	"roomserver/internal/randsrc"
	"roomserver/internal/shared"
)

// startGame resets room state for a fresh round: picks trapTooth uniformly
// at random, clears selections, marks every player alive.
func startGame(room *Room) {
	room.TrapTooth = randsrc.IntRange(1, room.ToothCount())
	room.HasTrapTooth = true
	room.SelectedTeeth = make(map[int]struct{})
	room.HasLastPicked = false
	room.LastPickerUserID = ""
	room.LoserUserID = ""
	room.LoserUsername = ""
	room.WinnerUserID = ""
	room.WinnerUsername = ""
	for _, p := range room.Players {
		p.Alive = true
	}
}

// pickTooth is the pure core of the pick operation: validate, mutate
// SelectedTeeth/Last*, and either end the game with the picker as loser or
// advance the turn. The caller (Coordinator) owns broadcast and pruning.
func pickTooth(room *Room, actor shared.Identity, tooth int) (trap bool, err error) {
	if room.Status != shared.StatusPlaying {
		return false, shared.ErrNotPlaying
	}
	if tooth < 1 || tooth > room.ToothCount() {
		return false, shared.ErrInvalidTooth
	}
	if _, ok := room.SelectedTeeth[tooth]; ok {
		return false, shared.ErrAlreadySelected
	}

	room.SelectedTeeth[tooth] = struct{}{}
	room.LastPickedTooth = tooth
	room.HasLastPicked = true
	room.LastPickerUserID = actor.UserID

	if tooth == room.TrapTooth {
		room.Status = shared.StatusEnded
		if p, ok := room.Players[actor.UserID]; ok {
			p.Alive = false
		}
		room.LoserUserID = actor.UserID
		if p, ok := room.Players[actor.UserID]; ok {
			room.LoserUsername = p.Username
		}
		setWinnerOtherThan(room, actor.UserID)
		return true, nil
	}

	advanceTurn(room)
	return false, nil
}

// setWinnerOtherThan assigns the winner to the first player in TurnOrder
// that is not loserUserID; in the two-player case this is deterministic.
func setWinnerOtherThan(room *Room, loserUserID string) {
	for _, id := range room.TurnOrder {
		if id == loserUserID {
			continue
		}
		if p, ok := room.Players[id]; ok {
			room.WinnerUserID = p.UserID
			room.WinnerUsername = p.Username
			return
		}
	}
}

func advanceTurn(room *Room) {
	if len(room.TurnOrder) == 0 {
		return
	}
	room.TurnCursor = (room.TurnCursor + 1) % len(room.TurnOrder)
}
