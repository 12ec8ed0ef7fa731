package controllers

import (
	"net/http"

	"baseballnote/middlewares"
	"baseballnote/services"
	"baseballnote/utils"
	"baseballnote/validation"

	"github.com/gin-gonic/gin"
)

// ProfileController serves player and coach profiles.
type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(p *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: p}
}

var profileFields = []string{
	"name", "birthday", "team_name", "player_dominant", "player_position", "admired_player", "introduction",
}

// profileForm reads profile fields from a multipart or urlencoded body and reports which were sent.
func profileForm(c *gin.Context) (validation.ProfileInput, map[string]bool) {
	set := make(map[string]bool, len(profileFields))
	vals := make(map[string]string, len(profileFields))
	for _, f := range profileFields {
		if v, ok := c.GetPostForm(f); ok {
			set[f] = true
			vals[f] = v
		}
	}
	return validation.ProfileInput{
		Name:           vals["name"],
		Birthday:       vals["birthday"],
		TeamName:       vals["team_name"],
		PlayerDominant: vals["player_dominant"],
		PlayerPosition: vals["player_position"],
		AdmiredPlayer:  vals["admired_player"],
		Introduction:   vals["introduction"],
	}, set
}

// POST /profile/
func (pc *ProfileController) Create(c *gin.Context) {
	in, _ := profileForm(c)
	image, closer, err := formFile(c, "image")
	if err != nil {
		badRequest(c, "画像の読み込みに失敗しました")
		return
	}
	defer closer.Close()

	p, err := pc.Profiles.Create(c.Request.Context(), middlewares.CurrentUserID(c), in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /profile/:user_id
func (pc *ProfileController) Get(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}
	p, err := pc.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /profile/:profile_id
func (pc *ProfileController) Update(c *gin.Context) {
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}
	in, set := profileForm(c)
	image, closer, err := formFile(c, "image")
	if err != nil {
		badRequest(c, "画像の読み込みに失敗しました")
		return
	}
	defer closer.Close()

	p, err := pc.Profiles.Update(c.Request.Context(), middlewares.CurrentUserID(c), profileID, in, set, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /profile/?q=&page=&page_size=
func (pc *ProfileController) ListPlayers(c *gin.Context) {
	page, size := utils.Page(c.Query("page"), c.Query("page_size"))
	out, err := pc.Profiles.ListPlayers(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
