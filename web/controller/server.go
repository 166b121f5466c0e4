package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinecache/cinecache/logger"
	"github.com/cinecache/cinecache/web/middleware"
	"github.com/cinecache/cinecache/web/service"
)

// ServerController exposes operational endpoints, currently recent log
// retrieval for administrators.
type ServerController struct {
	settingService service.SettingService
}

func NewServerController(g *gin.RouterGroup, authService *service.AuthService) *ServerController {
	a := &ServerController{}
	a.initRouter(g, authService)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup, authService *service.AuthService) {
	g.GET("/logs", middleware.AuthRequired(authService), middleware.RequireRole("admin"), a.getLogs)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil || count <= 0 {
		count, err = a.settingService.GetLogFetchCount()
		if err != nil {
			jsonMsg(c, "Get logs", err)
			return
		}
	}
	level := c.DefaultQuery("level", "info")

	logs := logger.GetLogs(count, level)
	jsonObj(c, logs, nil)
}
