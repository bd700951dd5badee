package http

import (
	"github.com/gin-gonic/gin"

	"roomserver/internal/gomoku"
)

// @Summary Create a Gomoku room
// @Tags Gomoku
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /create/gomoku [post]
func createGomokuHandler(c *gin.Context, coord *gomoku.Coordinator) {
	code, err := coord.Create(CallerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"code": code})
}

// @Summary Join a Gomoku room
// @Tags Gomoku
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /gomoku/{code}/join [post]
func joinGomokuHandler(c *gin.Context, coord *gomoku.Coordinator) {
	snap, err := coord.Join(CallerIdentity(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"room": snap})
}

// @Summary Leave a Gomoku room
// @Tags Gomoku
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /gomoku/{code}/leave [post]
func leaveGomokuHandler(c *gin.Context, coord *gomoku.Coordinator) {
	if err := coord.Leave(CallerIdentity(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Start a Gomoku game
// @Tags Gomoku
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /gomoku/{code}/start [post]
func startGomokuHandler(c *gin.Context, coord *gomoku.Coordinator) {
	if err := coord.Start(CallerIdentity(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Place a stone
// @Tags Gomoku
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body MoveRequest true "Cell index"
// @Success 200 {object} map[string]interface{}
// @Router /gomoku/{code}/move [post]
func moveGomokuHandler(c *gin.Context, coord *gomoku.Coordinator, maxBody int64) {
	var req MoveRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	ended, draw, err := coord.Move(CallerIdentity(c), c.Param("code"), req.Index)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"ended": ended, "draw": draw})
}
