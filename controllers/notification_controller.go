package controllers

import (
	"net/http"
	"strconv"

	"baseballnote/middlewares"
	"baseballnote/services"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	Alerts *services.AlertBus
}

func NewAlertController(bus *services.AlertBus) *AlertController {
	return &AlertController{Alerts: bus}
}

// GET /alerts?limit=
func (ac *AlertController) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	alerts, err := ac.Alerts.List(c.Request.Context(), middlewares.CurrentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": alerts})
}
