package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// Local writes media below Root and serves it from BaseURL.
type Local struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) *Local {
	return &Local{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Local) path(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.Root, filepath.FromSlash(cleaned)), nil
}

func (l *Local) Save(_ context.Context, key string, r io.Reader, _ string) error {
	fullPath, err := l.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	n, err := io.Copy(file, r)
	if err != nil {
		// Clean up partial file
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	log.Debugf("[Storage] saved %s (%d bytes)", key, n)
	return nil
}

// Delete removes key; a missing file counts as deleted.
func (l *Local) Delete(_ context.Context, key string) error {
	fullPath, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	fullPath, err := l.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (l *Local) URL(key string) string {
	return l.BaseURL + "/" + strings.TrimLeft(key, "/")
}
