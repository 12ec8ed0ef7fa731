package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	MaxImageSize = 5 * 1024 * 1024
	MaxVideoSize = 50 * 1024 * 1024
)

// AllowedVideoExtensions are the upload formats the server stores.
var AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".wmv"}

// FileInfo describes an attached file. A nil *FileInfo means no file was attached.
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
}

func ValidateImage(f *FileInfo) string {
	if f == nil {
		return ""
	}
	if f.Size > MaxImageSize {
		return "画像のサイズは5MB以下にしてください"
	}
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "画像ファイルを選択してください"
	}
	return ""
}

func ValidateMyVideo(f *FileInfo) string {
	if f == nil {
		return ""
	}
	if f.Size > MaxVideoSize {
		return "動画のサイズは50MB以下にしてください"
	}
	if !strings.HasPrefix(f.ContentType, "video/") {
		return "動画ファイルを選択してください"
	}
	return ""
}

// ValidateVideoUpload is the server-side check on an uploaded note video.
func ValidateVideoUpload(f *FileInfo) string {
	if f == nil || f.Name == "" {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	ok := false
	for _, a := range AllowedVideoExtensions {
		if ext == a {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Sprintf("サポートされていない動画形式です。対応形式: %s", strings.Join(AllowedVideoExtensions, ", "))
	}
	if f.Size > MaxVideoSize {
		return fmt.Sprintf("ファイルサイズが大きすぎます。上限: %dMB", MaxVideoSize/(1024*1024))
	}
	return ""
}

// VideoContentType maps a stored video extension to its MIME type.
func VideoContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	case ".wmv":
		return "video/x-ms-wmv"
	default:
		return "video/mp4"
	}
}
