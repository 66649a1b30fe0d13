package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zxdong262/task-runner/internal/manager"
	"github.com/zxdong262/task-runner/pkg/api"
)

// ScriptHandler translates HTTP requests into Task Manager calls. All
// anticipated failures come back as 200 with success=false; only
// malformed requests get non-200 codes.
type ScriptHandler struct {
	mgr *manager.Manager
}

func NewScriptHandler(mgr *manager.Manager) *ScriptHandler {
	return &ScriptHandler{mgr: mgr}
}

func (h *ScriptHandler) Run(c *gin.Context) {
	var req api.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Script == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "script is required"})
		return
	}

	result := h.mgr.RunScript(req.Script, req.Args, manager.RunOptions{OneTime: req.OneTime})
	c.JSON(http.StatusOK, result)
}

func (h *ScriptHandler) Stop(c *gin.Context) {
	c.JSON(http.StatusOK, h.mgr.StopScript(c.Param("id")))
}

func (h *ScriptHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.mgr.ListScripts())
}

func (h *ScriptHandler) Detail(c *gin.Context) {
	detail, ok := h.mgr.TaskDetail(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ScriptHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.mgr.GetStatus())
}

// Health is the only unauthenticated endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
}
