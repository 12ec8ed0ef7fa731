package controllers

import (
	"net/http"

	"baseballnote/middlewares"
	"baseballnote/models"
	"baseballnote/services"
	"baseballnote/validation"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	Comments *services.CommentService
	Notes    *services.NoteService
}

func NewCommentController(cs *services.CommentService, ns *services.NoteService) *CommentController {
	return &CommentController{Comments: cs, Notes: ns}
}

// POST /note/:note_id/comments
func (cc *CommentController) Add(c *gin.Context) {
	noteID, ok := uuidParam(c, "note_id")
	if !ok {
		return
	}
	var in validation.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	comment, err := cc.Comments.Add(c.Request.Context(), middlewares.CurrentUser(c), noteID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GET /note/:note_id/comments
func (cc *CommentController) List(c *gin.Context) {
	noteID, ok := uuidParam(c, "note_id")
	if !ok {
		return
	}
	owner, err := cc.Notes.Owner(c.Request.Context(), noteID)
	if err != nil {
		respondError(c, err)
		return
	}
	me := middlewares.CurrentUser(c)
	if owner != me.ID && me.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return
	}
	list, err := cc.Comments.List(c.Request.Context(), noteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// DELETE /comment/:comment_id
func (cc *CommentController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "comment_id")
	if !ok {
		return
	}
	if err := cc.Comments.Delete(c.Request.Context(), middlewares.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
