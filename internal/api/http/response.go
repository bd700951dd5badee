package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomserver/internal/shared"
)

// statusFor maps a stable AppError code to the HTTP status the wire
// contract uses for it, per the error kinds enumerated in the
// specification's error handling design.
func statusFor(err *shared.AppError) int {
	switch err.Code {
	case shared.ErrUnauthorized.Code:
		return http.StatusUnauthorized
	case shared.ErrHostOnly.Code, shared.ErrNotInRoom.Code, shared.ErrNotYourTurn.Code:
		return http.StatusForbidden
	case shared.ErrRoomNotFound.Code:
		return http.StatusNotFound
	case shared.ErrInvalidJSON.Code, shared.ErrBodyTooLarge.Code,
		shared.ErrInvalidSize.Code, shared.ErrInvalidDrawTimeoutSeconds.Code,
		shared.ErrInvalidTooth.Code, shared.ErrInvalidToothCountPerJaw.Code,
		shared.ErrInvalidCardCount.Code, shared.ErrInvalidIndex.Code,
		shared.ErrInvalidNumber.Code, shared.ErrUsernameLength.Code:
		return http.StatusBadRequest
	case shared.ErrRoomCodeCollision.Code:
		return http.StatusInternalServerError
	default:
		// Every other enumerated code is a state conflict: not_playing,
		// room_not_joinable, room_full, need_two_players, no_players,
		// number_already_called, already_selected, already_matched,
		// already_revealed, resolving, occupied, player_not_ready.
		return http.StatusConflict
	}
}

// respondError writes the {ok:false, error:<code>} envelope with the
// status statusFor derives from err's code. Non-AppError errors are
// treated as internal and never leak their message onto the wire.
func respondError(c *gin.Context, err error) {
	appErr, ok := err.(*shared.AppError)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal"})
		return
	}
	c.JSON(statusFor(appErr), gin.H{"ok": false, "error": appErr.Code})
}

// respondOK writes the {ok:true, ...payload} envelope. payload may be nil,
// in which case the response is just {ok:true}.
func respondOK(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["ok"] = true
	c.JSON(http.StatusOK, payload)
}
