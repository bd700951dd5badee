package http

import (
	"github.com/gin-gonic/gin"

	"roomserver/internal/memory"
)

// @Summary Create a Memory room
// @Tags Memory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /create/memory [post]
func createMemoryHandler(c *gin.Context, coord *memory.Coordinator) {
	code, err := coord.Create(CallerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"code": code})
}

// @Summary Join a Memory room
// @Tags Memory
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /memory/{code}/join [post]
func joinMemoryHandler(c *gin.Context, coord *memory.Coordinator) {
	snap, err := coord.Join(CallerIdentity(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"room": snap})
}

// @Summary Leave a Memory room
// @Tags Memory
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /memory/{code}/leave [post]
func leaveMemoryHandler(c *gin.Context, coord *memory.Coordinator) {
	if err := coord.Leave(CallerIdentity(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Start a Memory game
// @Tags Memory
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body StartMemoryRequest true "Start options"
// @Success 200 {object} map[string]interface{}
// @Router /memory/{code}/start [post]
func startMemoryHandler(c *gin.Context, coord *memory.Coordinator, maxBody int64) {
	var req StartMemoryRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	if err := coord.Start(CallerIdentity(c), c.Param("code"), req.CardCount); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Pick a card
// @Tags Memory
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body PickCardRequest true "Card index"
// @Success 200 {object} map[string]interface{}
// @Router /memory/{code}/pick [post]
func pickMemoryHandler(c *gin.Context, coord *memory.Coordinator, maxBody int64) {
	var req PickCardRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	matched, ended, err := coord.Pick(CallerIdentity(c), c.Param("code"), req.Index)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"matched": matched, "ended": ended})
}
