package controllers

import (
	"net/http"
	"strconv"
	"time"

	"baseballnote/middlewares"
	"baseballnote/models"
	"baseballnote/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

// statsOwner resolves :user_id and checks the caller is that player or a coach.
func statsOwner(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		return uuid.Nil, false
	}
	me := middlewares.CurrentUser(c)
	if userID != me.ID && me.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return uuid.Nil, false
	}
	return userID, true
}

// GET /note/stats/:user_id?from=&to=&include_missing_days=
// The range defaults to the current month.
func (h *AnalyticsController) Summary(c *gin.Context) {
	userID, ok := statsOwner(c)
	if !ok {
		return
	}

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	from, err := time.ParseInLocation("2006-01-02", c.DefaultQuery("from", first.Format("2006-01-02")), now.Location())
	if err != nil {
		badRequest(c, "invalid from date")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", c.DefaultQuery("to", last.Format("2006-01-02")), now.Location())
	if err != nil {
		badRequest(c, "invalid to date")
		return
	}
	includeMissing, _ := strconv.ParseBool(c.Query("include_missing_days"))

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, includeMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /note/weekly/:user_id?week_start=
func (h *AnalyticsController) Weekly(c *gin.Context) {
	userID, ok := statsOwner(c)
	if !ok {
		return
	}

	now := time.Now()
	weekStart := services.StartOfWeek(now)
	if v := c.Query("week_start"); v != "" {
		ws, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			badRequest(c, "invalid week_start")
			return
		}
		weekStart = services.StartOfWeek(ws)
	}

	out, err := h.Svc.WeeklyOverview(c.Request.Context(), userID, weekStart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
