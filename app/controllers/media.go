package controllers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Yatube/app/forms"
	"github.com/ManuelReschke/Yatube/internal/pkg/imageprocessor"
	"github.com/ManuelReschke/Yatube/internal/pkg/storage"
)

// PostImageDir is the media directory post images are stored in
const PostImageDir = "posts"

// Media stores post images with their thumbnails and resolves their public URLs
type Media struct {
	backend storage.Backend
	thumbs  *imageprocessor.Processor
}

func NewMedia(backend storage.Backend) *Media {
	return &Media{backend: backend, thumbs: imageprocessor.New(backend)}
}

func (m *Media) URL(key string) string {
	return m.backend.URL(key)
}

func (m *Media) ThumbnailURL(key string) string {
	return m.thumbs.URL(key)
}

// Store renders the thumbnail of a validated upload and then saves the original under a
// fresh key. Nothing is left in the backend when either step fails.
func (m *Media) Store(ctx context.Context, file *forms.UploadedFile) (string, error) {
	key := storage.NewKey(PostImageDir, file.Filename)
	thumb, err := m.thumbs.Ensure(ctx, key, file.Data)
	if err != nil {
		return "", fmt.Errorf("thumbnail for %s: %w", key, err)
	}
	if err := m.backend.Save(ctx, key, bytes.NewReader(file.Data), storage.ContentType(key)); err != nil {
		if delErr := m.backend.Delete(ctx, thumb); delErr != nil {
			log.Warnf("[Media] could not remove thumbnail %s: %v", thumb, delErr)
		}
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}
