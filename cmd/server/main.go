package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "roomserver/internal/api/http"
	"roomserver/internal/bingo"
	"roomserver/internal/config"
	"roomserver/internal/croc"
	"roomserver/internal/gomoku"
	"roomserver/internal/memory"
	"roomserver/internal/shared"

	_ "roomserver/docs"
)

// headerIdentityResolver reads the caller identity off plain headers. The
// real deployment's auth backend is an external collaborator the core
// never implements (see the specification's system boundary); this is the
// simplest resolver that satisfies httpapi.Resolver for a standalone run.
func headerIdentityResolver(c *gin.Context) (shared.Identity, bool) {
	userID := c.GetHeader("X-User-Id")
	username := c.GetHeader("X-Username")
	if userID == "" {
		return shared.Identity{}, false
	}
	if username == "" {
		username = userID
	}
	return shared.Identity{UserID: userID, Username: username}, true
}

// @title Room Server API
// @version 1.0
// @description Multi-room real-time turn-based game server (Bingo, Crocodile-Tooth, Flag Memory, Gomoku)
// @BasePath /
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	coords := httpapi.Coordinators{
		Bingo:  bingo.New(cfg, logger),
		Croc:   croc.New(cfg, logger),
		Memory: memory.New(cfg, logger),
		Gomoku: gomoku.New(cfg, logger),
	}

	r := httpapi.NewRouter(coords, cfg, headerIdentityResolver)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
