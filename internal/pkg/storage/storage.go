// Package storage keeps uploaded media files, either on the local disk under MEDIA_ROOT or
// in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ManuelReschke/Yatube/internal/pkg/env"
)

// ErrInvalidKey is returned for keys that are empty or escape the media root.
var ErrInvalidKey = errors.New("invalid media key")

// Backend stores media objects under slash-separated keys such as posts/<uuid>.png.
type Backend interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns the public address of key.
	URL(key string) string
}

// New builds the backend selected by MEDIA_BACKEND ("local" or "s3").
func New(ctx context.Context) (Backend, error) {
	switch backend := env.GetEnv("MEDIA_BACKEND", "local"); backend {
	case "local":
		return NewLocal(env.GetEnv("MEDIA_ROOT", "./media"), env.GetEnv("MEDIA_URL", "/media")), nil
	case "s3":
		cfg, err := LoadS3Config()
		if err != nil {
			return nil, err
		}
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", backend)
	}
}

// NewKey returns a fresh key in dir keeping the extension of the uploaded filename.
func NewKey(dir, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(dir, uuid.New().String()+ext)
}

// CleanKey normalizes key and rejects absolute or parent-relative paths.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// ContentType returns the MIME type based on file extension
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg", ".jpe", ".jfif":
		return "image/jpeg"
	case ".png", ".apng":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp", ".dib":
		return "image/bmp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
