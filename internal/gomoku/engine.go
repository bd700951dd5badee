package gomoku

import "roomserver/internal/shared"

// assignJoinStone gives a newly joined player a provisional stone: W if B
// is already taken, else B. Start reassigns stones authoritatively by turn
// order, so this only matters for what the lobby displays before a game
// begins.
func assignJoinStone(room *Room) Stone {
	for _, p := range room.Players {
		if p.Stone == StoneBlack {
			return StoneWhite
		}
	}
	return StoneBlack
}

// startGame resets the board and assigns stones by turn order: cursor 0 is
// Black and plays first, the other player is White.
func startGame(room *Room) {
	for i := range room.Board {
		room.Board[i] = ""
	}
	room.WinnerUserID = ""
	room.WinnerUsername = ""
	room.WinnerStone = ""
	room.Draw = false
	room.HasLastMove = false
	room.LastMoveByUserID = ""

	for i, id := range room.TurnOrder {
		p, ok := room.Players[id]
		if !ok {
			continue
		}
		if i == 0 {
			p.Stone = StoneBlack
		} else {
			p.Stone = StoneWhite
		}
	}
}

// axisDeltas are the four axes a winning line can run along, as
// (row step, column step): vertical, horizontal, and the two diagonals.
// Each is walked in both directions from the placed cell.
var axisDeltas = [4][2]int{
	{1, 0},  // S/N
	{0, 1},  // E/W
	{1, 1},  // SE/NW
	{1, -1}, // SW/NE
}

func rowCol(index int) (int, int) {
	return index / BoardSize, index % BoardSize
}

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// countRun counts contiguous same-stone cells starting at (row,col) and
// walking in direction (dr,dc), not including the origin cell.
func countRun(room *Room, row, col, dr, dc int, stone Stone) int {
	n := 0
	r, c := row+dr, col+dc
	for inBounds(r, c) && room.Board[r*BoardSize+c] == stone {
		n++
		r += dr
		c += dc
	}
	return n
}

// hasWinningLine reports whether the stone just placed at index completes
// a line of 5 or more along any of the four axes.
func hasWinningLine(room *Room, index int, stone Stone) bool {
	row, col := rowCol(index)
	for _, d := range axisDeltas {
		total := 1 + countRun(room, row, col, d[0], d[1], stone) + countRun(room, row, col, -d[0], -d[1], stone)
		if total >= 5 {
			return true
		}
	}
	return false
}

func boardFull(room *Room) bool {
	for _, s := range room.Board {
		if s == "" {
			return false
		}
	}
	return true
}

type moveResult struct {
	ended bool
	draw  bool
}

// placeStone is the pure core of the move operation.
func placeStone(room *Room, actor shared.Identity, index int) (moveResult, error) {
	if room.Status != shared.StatusPlaying {
		return moveResult{}, shared.ErrNotPlaying
	}
	if index < 0 || index >= Cells {
		return moveResult{}, shared.ErrInvalidIndex
	}
	if room.Board[index] != "" {
		return moveResult{}, shared.ErrOccupied
	}

	p, ok := room.Players[actor.UserID]
	if !ok || p.Stone == "" {
		return moveResult{}, shared.ErrPlayerNotReady
	}

	room.Board[index] = p.Stone
	room.LastMoveIndex = index
	room.HasLastMove = true
	room.LastMoveByUserID = actor.UserID

	if hasWinningLine(room, index, p.Stone) {
		room.Status = shared.StatusEnded
		room.WinnerUserID = p.UserID
		room.WinnerUsername = p.Username
		room.WinnerStone = p.Stone
		return moveResult{ended: true}, nil
	}

	if boardFull(room) {
		room.Status = shared.StatusEnded
		room.Draw = true
		return moveResult{ended: true, draw: true}, nil
	}

	advanceTurn(room)
	return moveResult{}, nil
}

func advanceTurn(room *Room) {
	if len(room.TurnOrder) == 0 {
		return
	}
	room.TurnCursor = (room.TurnCursor + 1) % len(room.TurnOrder)
}
