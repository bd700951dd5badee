package http

import (
	"github.com/gin-gonic/gin"

	"roomserver/internal/croc"
)

// @Summary Create a Croc room
// @Tags Croc
// @Accept json
// @Produce json
// @Param request body CreateCrocRequest true "Room options"
// @Success 200 {object} map[string]interface{}
// @Router /create/croc [post]
func createCrocHandler(c *gin.Context, coord *croc.Coordinator, maxBody int64) {
	var req CreateCrocRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	code, err := coord.Create(CallerIdentity(c), req.ToothCountPerJaw)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"code": code})
}

// @Summary Join a Croc room
// @Tags Croc
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /croc/{code}/join [post]
func joinCrocHandler(c *gin.Context, coord *croc.Coordinator) {
	snap, err := coord.Join(CallerIdentity(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"room": snap})
}

// @Summary Leave a Croc room
// @Tags Croc
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /croc/{code}/leave [post]
func leaveCrocHandler(c *gin.Context, coord *croc.Coordinator) {
	if err := coord.Leave(CallerIdentity(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Start a Croc round
// @Tags Croc
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /croc/{code}/start [post]
func startCrocHandler(c *gin.Context, coord *croc.Coordinator) {
	if err := coord.Start(CallerIdentity(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Pick a tooth
// @Tags Croc
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body PickToothRequest true "Tooth to pick"
// @Success 200 {object} map[string]interface{}
// @Router /croc/{code}/pick [post]
func pickCrocHandler(c *gin.Context, coord *croc.Coordinator, maxBody int64) {
	var req PickToothRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	trap, err := coord.Pick(CallerIdentity(c), c.Param("code"), req.Tooth)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"trap": trap})
}
