package controllers

import (
	"net/http"

	"baseballnote/middlewares"
	"baseballnote/services"
	"baseballnote/validation"

	"github.com/gin-gonic/gin"
)

type TrainingController struct {
	Trainings *services.TrainingService
}

func NewTrainingController(t *services.TrainingService) *TrainingController {
	return &TrainingController{Trainings: t}
}

// POST /training/menu
func (tc *TrainingController) Create(c *gin.Context) {
	var in validation.MenuInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	t, err := tc.Trainings.Create(c.Request.Context(), middlewares.CurrentUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GET /training/menu
func (tc *TrainingController) List(c *gin.Context) {
	list, err := tc.Trainings.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DELETE /training/menu/:training_id
func (tc *TrainingController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "training_id")
	if !ok {
		return
	}
	if err := tc.Trainings.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
