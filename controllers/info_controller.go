package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type InfoController struct {
	Title   string
	Version string
}

func NewInfoController(title, version string) *InfoController {
	return &InfoController{Title: title, Version: version}
}

func (ic *InfoController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"title": ic.Title, "version": ic.Version})
}
