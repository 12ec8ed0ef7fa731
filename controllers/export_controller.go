package controllers

import (
	"net/http"

	"baseballnote/middlewares"
	"baseballnote/models"
	"baseballnote/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportController feeds the chatbot knowledge base.
type ExportController struct {
	Export *services.ExportService
}

func NewExportController(e *services.ExportService) *ExportController {
	return &ExportController{Export: e}
}

// GET /dify/data?firebase_uid=
func (ec *ExportController) UserData(c *gin.Context) {
	uid := c.Query("firebase_uid")
	if uid == "" {
		badRequest(c, "firebase_uid is required")
		return
	}
	me := middlewares.CurrentUser(c)
	if uid != me.FirebaseUID && me.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return
	}
	zap.L().Info("export request", zap.String("firebase_uid", uid))
	out, err := ec.Export.UserData(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /dify/all-data
func (ec *ExportController) AllData(c *gin.Context) {
	zap.L().Info("export all request")
	out, err := ec.Export.AllData(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
