package controllers

import (
	"net/http"

	"baseballnote/middlewares"
	"baseballnote/services"

	"github.com/gin-gonic/gin"
)

// DevController exposes helpers that are only routed in local and development environments.
type DevController struct {
	Alerts *services.AlertBus
}

func NewDevController(bus *services.AlertBus) *DevController {
	return &DevController{Alerts: bus}
}

type testAlertReq struct {
	Message string `json:"message"`
}

// POST /dev/alert sends an info alert to the caller.
func (d *DevController) TestAlert(c *gin.Context) {
	var req testAlertReq
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "テスト通知"
	}
	a, err := d.Alerts.Emit(c.Request.Context(), middlewares.CurrentUserID(c), services.AlertInfo, req.Message, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
