package controllers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/Yatube/app/forms"
	"github.com/ManuelReschke/Yatube/internal/pkg/imageprocessor"
	"github.com/ManuelReschke/Yatube/internal/pkg/storage"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 8))))
	return buf.Bytes()
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestMediaStore(t *testing.T) {
	root := t.TempDir()
	media := NewMedia(storage.NewLocal(root, "/media"))

	key, err := media.Store(context.Background(), &forms.UploadedFile{Filename: "cat.png", Data: testPNG(t)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, PostImageDir+"/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(imageprocessor.ThumbnailKey(key))))
	assert.NoError(t, err)
	assert.Equal(t, "/media/"+key, media.URL(key))
}

func TestMediaStoreCorruptImageLeavesNothing(t *testing.T) {
	root := t.TempDir()
	media := NewMedia(storage.NewLocal(root, "/media"))

	_, err := media.Store(context.Background(), &forms.UploadedFile{Filename: "broken.png", Data: testPNG(t)[:40]})
	require.Error(t, err)
	assert.Zero(t, countFiles(t, root))
}

// failingSave wraps a backend and refuses to store originals
type failingSave struct {
	storage.Backend
}

func (f failingSave) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	if !strings.HasPrefix(key, imageprocessor.ThumbnailDir+"/") {
		return errors.New("disk full")
	}
	return f.Backend.Save(ctx, key, r, contentType)
}

func TestMediaStoreRemovesThumbnailWhenOriginalFails(t *testing.T) {
	root := t.TempDir()
	media := NewMedia(failingSave{storage.NewLocal(root, "/media")})

	_, err := media.Store(context.Background(), &forms.UploadedFile{Filename: "cat.png", Data: testPNG(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, countFiles(t, root))
}
