package http

// CreateBingoRequest is the body of POST /create/bingo.
type CreateBingoRequest struct {
	Size       int  `json:"size"`
	BotEnabled bool `json:"botEnabled"`
}

// StartBingoRequest is the body of POST /bingo/<code>/start.
type StartBingoRequest struct {
	DrawTimeoutSeconds int `json:"drawTimeoutSeconds"`
}

// DrawRequest is the body of POST /bingo/<code>/draw.
type DrawRequest struct {
	Number int `json:"number"`
}

// CreateCrocRequest is the body of POST /create/croc.
type CreateCrocRequest struct {
	ToothCountPerJaw int `json:"toothCountPerJaw"`
}

// PickToothRequest is the body of POST /croc/<code>/pick.
type PickToothRequest struct {
	Tooth int `json:"tooth"`
}

// StartMemoryRequest is the body of POST /memory/<code>/start.
type StartMemoryRequest struct {
	CardCount int `json:"cardCount"`
}

// PickCardRequest is the body of POST /memory/<code>/pick.
type PickCardRequest struct {
	Index int `json:"index"`
}

// MoveRequest is the body of POST /gomoku/<code>/move.
type MoveRequest struct {
	Index int `json:"index"`
}
