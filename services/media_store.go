package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore is where note videos and profile images live. utils.S3Storage and
// utils.LocalStorage implement it.
type MediaStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

const (
	noteVideoPrefix    = "note_videos"
	profileImagePrefix = "profiles"
)

func noteVideoKey(filename string) string {
	return fmt.Sprintf("%s/%s%s", noteVideoPrefix, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

func profileImageKey(contentType string) string {
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	return fmt.Sprintf("%s/%s%s", profileImagePrefix, uuid.NewString(), ext)
}
