// Package imageprocessor renders the cropped WebP thumbnails shown in post cards.
package imageprocessor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"github.com/ManuelReschke/Yatube/internal/pkg/storage"
)

// Thumbnail geometry used by the post card
const (
	ThumbnailWidth  = 960
	ThumbnailHeight = 339
	ThumbnailDir    = "posts/thumbs"
	WebPQuality     = 85
)

// ThumbnailKey returns the storage key of the thumbnail for the original image key.
// The key depends only on the original, so a thumbnail is rendered once per image.
func ThumbnailKey(imageKey string) string {
	base := path.Base(imageKey)
	base = strings.TrimSuffix(base, path.Ext(base))
	return path.Join(ThumbnailDir, base+".webp")
}

// Thumbnail decodes src honouring EXIF orientation and center-crops it to the card size.
func Thumbnail(src io.Reader) (image.Image, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}
	return imaging.Fill(img, ThumbnailWidth, ThumbnailHeight, imaging.Center, imaging.Lanczos), nil
}

// EncodeWebP writes img as lossy WebP
func EncodeWebP(w io.Writer, img image.Image) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, WebPQuality)
	if err != nil {
		return fmt.Errorf("error creating encoder options: %w", err)
	}
	if err := webp.Encode(w, img, options); err != nil {
		return fmt.Errorf("error encoding WebP image: %w", err)
	}
	return nil
}

// Processor stores thumbnails next to the originals in a media backend
type Processor struct {
	backend storage.Backend
}

func New(backend storage.Backend) *Processor {
	return &Processor{backend: backend}
}

// Ensure renders and stores the thumbnail of imageKey from its original bytes unless it
// already exists, returning the thumbnail key.
func (p *Processor) Ensure(ctx context.Context, imageKey string, original []byte) (string, error) {
	key := ThumbnailKey(imageKey)

	exists, err := p.backend.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return key, nil
	}

	img, err := Thumbnail(bytes.NewReader(original))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := EncodeWebP(&buf, img); err != nil {
		return "", err
	}
	if err := p.backend.Save(ctx, key, &buf, "image/webp"); err != nil {
		return "", err
	}

	log.Infof("[ImageProcessor] thumbnail %s created for %s", key, imageKey)
	return key, nil
}

// URL returns the public address of the thumbnail of imageKey.
func (p *Processor) URL(imageKey string) string {
	return p.backend.URL(ThumbnailKey(imageKey))
}
