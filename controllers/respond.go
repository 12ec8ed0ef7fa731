package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"baseballnote/services"
	"baseballnote/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serverErrorDetail = "サーバーエラーが発生しました"

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, services.ErrInvalidCredentials), errors.Is(kind, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, services.ErrConflict), errors.Is(kind, services.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"detail": ...} for err, adding "errors" for field validation failures.
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": verrs.First(), "errors": verrs})
		return
	}
	var se *services.Error
	if errors.As(err, &se) {
		c.JSON(statusFor(se.Kind), gin.H{"detail": se.Detail})
		return
	}
	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": serverErrorDetail})
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// formFile opens an optional multipart file. The returned closer is never nil.
func formFile(c *gin.Context, field string) (*services.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nopCloser{}, nil
	case err != nil:
		return nil, nopCloser{}, err
	case fh.Filename == "" && fh.Size == 0:
		return nil, nopCloser{}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nopCloser{}, err
	}
	return uploadFrom(fh, f), f, nil
}

func uploadFrom(fh *multipart.FileHeader, f multipart.File) *services.Upload {
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
}
