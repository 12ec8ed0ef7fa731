package controllers

import (
	"net/http"
	"strconv"

	"baseballnote/middlewares"
	"baseballnote/models"
	"baseballnote/services"
	"baseballnote/utils"
	"baseballnote/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoteController struct {
	Notes *services.NoteService
}

func NewNoteController(n *services.NoteService) *NoteController {
	return &NoteController{Notes: n}
}

func formFloat(c *gin.Context, field string) float64 {
	v, err := strconv.ParseFloat(c.PostForm(field), 64)
	if err != nil {
		return 0
	}
	return v
}

// noteForm reads the note fields. trainings arrives as a JSON string.
func noteForm(c *gin.Context) (validation.NoteInput, error) {
	trainings, err := services.ParseTrainings(c.PostForm("trainings"))
	if err != nil {
		return validation.NoteInput{}, err
	}
	return validation.NoteInput{
		Theme:         c.PostForm("theme"),
		Assignment:    c.PostForm("assignment"),
		PracticeVideo: c.PostForm("practice_video"),
		Weight:        formFloat(c, "weight"),
		Sleep:         formFloat(c, "sleep"),
		LookedDay:     c.PostForm("looked_day"),
		Practice:      c.PostForm("practice"),
		Trainings:     trainings,
	}, nil
}

// ownsForm rejects forms whose firebase_uid names someone other than the caller.
func ownsForm(c *gin.Context) bool {
	uid := c.PostForm("firebase_uid")
	if uid != "" && uid != c.GetString(middlewares.KeyUID) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "このノートを編集する権限がありません"})
		return false
	}
	return true
}

// POST /note/create
func (nc *NoteController) Create(c *gin.Context) {
	if !ownsForm(c) {
		return
	}
	in, err := noteForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	video, closer, err := formFile(c, "my_video")
	if err != nil {
		badRequest(c, "動画の読み込みに失敗しました")
		return
	}
	defer closer.Close()

	note, err := nc.Notes.Create(c.Request.Context(), middlewares.CurrentUserID(c), in, video)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GET /note/get/:firebase_uid
func (nc *NoteController) ListByFirebaseUID(c *gin.Context) {
	uid := c.Param("firebase_uid")
	me := middlewares.CurrentUser(c)
	if uid != me.FirebaseUID && me.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return
	}
	page, size := utils.Page(c.Query("page"), c.Query("page_size"))
	out, err := nc.Notes.ListByFirebaseUID(c.Request.Context(), uid, c.Query("q"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /note/user/:user_id
func (nc *NoteController) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusOK, services.NotePage{Items: []services.NoteListItem{}})
		return
	}
	me := middlewares.CurrentUser(c)
	if userID != me.ID && me.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return
	}
	page, size := utils.Page(c.Query("page"), c.Query("page_size"))
	out, err := nc.Notes.ListByUser(c.Request.Context(), userID, c.Query("q"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /note/detail/:note_id
func (nc *NoteController) Detail(c *gin.Context) {
	noteID, ok := uuidParam(c, "note_id")
	if !ok {
		return
	}
	note, err := nc.Notes.Detail(c.Request.Context(), noteID)
	if err != nil {
		respondError(c, err)
		return
	}
	me := middlewares.CurrentUser(c)
	if note.UserID != me.ID && me.Role != models.RoleCoach {
		c.JSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
		return
	}
	c.JSON(http.StatusOK, note)
}

// PUT /note/:note_id
func (nc *NoteController) Update(c *gin.Context) {
	noteID, ok := uuidParam(c, "note_id")
	if !ok {
		return
	}
	if !ownsForm(c) {
		return
	}
	in, err := noteForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	video, closer, err := formFile(c, "my_video")
	if err != nil {
		badRequest(c, "動画の読み込みに失敗しました")
		return
	}
	defer closer.Close()
	deleteVideo, _ := strconv.ParseBool(c.PostForm("delete_video"))

	note, err := nc.Notes.Update(c.Request.Context(), middlewares.CurrentUserID(c), noteID, in, video, deleteVideo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DELETE /note/:note_id
func (nc *NoteController) Delete(c *gin.Context) {
	noteID, ok := uuidParam(c, "note_id")
	if !ok {
		return
	}
	if err := nc.Notes.Delete(c.Request.Context(), middlewares.CurrentUserID(c), noteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
