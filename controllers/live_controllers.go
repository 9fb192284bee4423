package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// LiveController serves the websocket feed of dispatch and settlement events.
type LiveController struct {
	Hub *notify.Hub
}

func NewLiveController(hub *notify.Hub) *LiveController {
	return &LiveController{Hub: hub}
}

// Feed -> GET /ws/:role?token=
func (lc *LiveController) Feed(c *gin.Context) {
	role := c.GetString(middlewares.CtxRole)
	handle := c.GetString(middlewares.CtxHandle)

	if err := lc.Hub.ServeWS(c.Writer, c.Request, role, handle); err != nil {
		// The upgrader has already written the HTTP error.
		utils.ErrorLogger.Warnf("Live feed upgrade failed: %v", err)
	}
}
