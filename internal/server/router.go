// Package server assembles the gin router: health endpoint open, the
// /api surface behind basic auth.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zxdong262/task-runner/internal/common"
	"github.com/zxdong262/task-runner/internal/manager"
	"github.com/zxdong262/task-runner/internal/server/handler"
	"github.com/zxdong262/task-runner/internal/server/middleware"
)

func NewRouter(cfg common.Config, mgr *manager.Manager) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))

	r.GET("/health", handler.Health)

	h := handler.NewScriptHandler(mgr)
	apiGroup := r.Group("/api", middleware.BasicAuth(cfg.AuthUsername, cfg.AuthPassword))
	apiGroup.POST("/scripts/run", h.Run)
	apiGroup.POST("/scripts/stop/:id", h.Stop)
	apiGroup.GET("/scripts", h.List)
	apiGroup.GET("/scripts/:id", h.Detail)
	apiGroup.GET("/status", h.Status)

	return r
}
