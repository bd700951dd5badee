package http

import (
	"github.com/gin-gonic/gin"

	"roomserver/internal/bingo"
)

// @Summary Create a Bingo room
// @Description Creates a room with the caller as host and sole human player (plus the bot when botEnabled)
// @Tags Bingo
// @Accept json
// @Produce json
// @Param request body CreateBingoRequest true "Room options"
// @Success 200 {object} map[string]interface{}
// @Router /create/bingo [post]
func createBingoHandler(c *gin.Context, coord *bingo.Coordinator, maxBody int64) {
	var req CreateBingoRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	code, err := coord.Create(CallerIdentity(c), bingo.CreateOptions{Size: req.Size, BotEnabled: req.BotEnabled})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"code": code})
}

// @Summary Join a Bingo room
// @Tags Bingo
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /bingo/{code}/join [post]
func joinBingoHandler(c *gin.Context, coord *bingo.Coordinator) {
	snap, err := coord.Join(CallerIdentity(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"room": snap})
}

// @Summary Leave a Bingo room
// @Tags Bingo
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /bingo/{code}/leave [post]
func leaveBingoHandler(c *gin.Context, coord *bingo.Coordinator) {
	if err := coord.Leave(CallerIdentity(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Start a Bingo game
// @Tags Bingo
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body StartBingoRequest true "Start options"
// @Success 200 {object} map[string]interface{}
// @Router /bingo/{code}/start [post]
func startBingoHandler(c *gin.Context, coord *bingo.Coordinator, maxBody int64) {
	var req StartBingoRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	if err := coord.Start(CallerIdentity(c), c.Param("code"), req.DrawTimeoutSeconds); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// @Summary Draw a Bingo number
// @Tags Bingo
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body DrawRequest true "Number to draw"
// @Success 200 {object} map[string]interface{}
// @Router /bingo/{code}/draw [post]
func drawBingoHandler(c *gin.Context, coord *bingo.Coordinator, maxBody int64) {
	var req DrawRequest
	if err := bindJSON(c, &req, maxBody); err != nil {
		respondError(c, err)
		return
	}
	if err := coord.Draw(CallerIdentity(c), c.Param("code"), req.Number); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"number": req.Number})
}
