// Package http is the HTTP/SSE transport adapter: a Gin router wiring
// every game Coordinator's operations onto the wire contract, including
// the raw text/event-stream writer loop.
package http

import (
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roomserver/internal/bingo"
	"roomserver/internal/config"
	"roomserver/internal/croc"
	"roomserver/internal/gomoku"
	"roomserver/internal/memory"
)

// Coordinators bundles the four game coordinators the router dispatches
// to, following the teacher's SetupRouter(rm, store, hub) composition-root
// pattern generalized to four games instead of one.
type Coordinators struct {
	Bingo  *bingo.Coordinator
	Croc   *croc.Coordinator
	Memory *memory.Coordinator
	Gomoku *gomoku.Coordinator
}

// NewRouter builds the gin.Engine this core registers its routes on. The
// caller owns the engine's lifecycle (ListenAndServe, TLS, middleware
// ordering beyond identity resolution).
//
// @title Room Server API
// @version 1.0
// @description Multi-room real-time turn-based game server (Bingo, Crocodile-Tooth, Flag Memory, Gomoku)
// @BasePath /
func NewRouter(coords Coordinators, cfg config.Config, resolve Resolver) *gin.Engine {
	r := gin.Default()
	maxBody := cfg.MaxBodyBytes

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := r.Group("/")
	api.Use(RequireIdentity(resolve))

	api.POST("/create/bingo", func(c *gin.Context) { createBingoHandler(c, coords.Bingo, maxBody) })
	api.POST("/bingo/:code/join", func(c *gin.Context) { joinBingoHandler(c, coords.Bingo) })
	api.POST("/bingo/:code/leave", func(c *gin.Context) { leaveBingoHandler(c, coords.Bingo) })
	api.POST("/bingo/:code/start", func(c *gin.Context) { startBingoHandler(c, coords.Bingo, maxBody) })
	api.POST("/bingo/:code/draw", func(c *gin.Context) { drawBingoHandler(c, coords.Bingo, maxBody) })
	api.GET("/stream/bingo/:code", streamHandler(coords.Bingo))

	api.POST("/create/croc", func(c *gin.Context) { createCrocHandler(c, coords.Croc, maxBody) })
	api.POST("/croc/:code/join", func(c *gin.Context) { joinCrocHandler(c, coords.Croc) })
	api.POST("/croc/:code/leave", func(c *gin.Context) { leaveCrocHandler(c, coords.Croc) })
	api.POST("/croc/:code/start", func(c *gin.Context) { startCrocHandler(c, coords.Croc) })
	api.POST("/croc/:code/pick", func(c *gin.Context) { pickCrocHandler(c, coords.Croc, maxBody) })
	api.GET("/stream/croc/:code", streamHandler(coords.Croc))

	api.POST("/create/memory", func(c *gin.Context) { createMemoryHandler(c, coords.Memory) })
	api.POST("/memory/:code/join", func(c *gin.Context) { joinMemoryHandler(c, coords.Memory) })
	api.POST("/memory/:code/leave", func(c *gin.Context) { leaveMemoryHandler(c, coords.Memory) })
	api.POST("/memory/:code/start", func(c *gin.Context) { startMemoryHandler(c, coords.Memory, maxBody) })
	api.POST("/memory/:code/pick", func(c *gin.Context) { pickMemoryHandler(c, coords.Memory, maxBody) })
	api.GET("/stream/memory/:code", streamHandler(coords.Memory))

	api.POST("/create/gomoku", func(c *gin.Context) { createGomokuHandler(c, coords.Gomoku) })
	api.POST("/gomoku/:code/join", func(c *gin.Context) { joinGomokuHandler(c, coords.Gomoku) })
	api.POST("/gomoku/:code/leave", func(c *gin.Context) { leaveGomokuHandler(c, coords.Gomoku) })
	api.POST("/gomoku/:code/start", func(c *gin.Context) { startGomokuHandler(c, coords.Gomoku) })
	api.POST("/gomoku/:code/move", func(c *gin.Context) { moveGomokuHandler(c, coords.Gomoku, maxBody) })
	api.GET("/stream/gomoku/:code", streamHandler(coords.Gomoku))

	return r
}
