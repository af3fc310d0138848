package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// AllowedExtensions is the image extension allowlist, in the order shown to users.
var AllowedExtensions = []string{
	"bmp", "dib", "gif", "tif", "tiff", "jfif", "jpe", "jpg", "jpeg", "pbm", "pgm", "ppm",
	"pnm", "png", "apng", "blp", "bufr", "cur", "pcx", "dcx", "dds", "ps", "eps", "fit",
	"fits", "fli", "flc", "ftc", "ftu", "gbr", "grib", "h5", "hdf", "jp2", "j2k", "jpc",
	"jpf", "jpx", "j2c", "icns", "ico", "im", "iim", "mpg", "mpeg", "mpo", "msp", "palm",
	"pcd", "pdf", "pxr", "psd", "bw", "rgb", "rgba", "sgi", "ras", "tga", "icb", "vda",
	"vst", "webp", "wmf", "emf", "xbm", "xpm",
}

var allowedExt = func() map[string]bool {
	m := make(map[string]bool, len(AllowedExtensions))
	for _, ext := range AllowedExtensions {
		m[ext] = true
	}
	return m
}()

// ErrInvalidImage is returned when the content cannot be decoded as an image.
var ErrInvalidImage = errors.New("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")

// Extension returns the lowercased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ValidateExtension checks filename against the allowlist.
func ValidateExtension(filename string) error {
	ext := Extension(filename)
	if allowedExt[ext] {
		return nil
	}
	return fmt.Errorf("File extension '%s' is not allowed. Allowed extensions are: '%s'.",
		ext, strings.Join(AllowedExtensions, ", "))
}

// ValidateImage checks the extension first and then decodes the whole image from r, so
// truncated or corrupt files are rejected along with non-images. It returns the detected
// format name on success.
func ValidateImage(filename string, r io.Reader) (string, error) {
	if err := ValidateExtension(filename); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return decode(data)
}

// ValidateImageBytes is ValidateImage over an in-memory upload.
func ValidateImageBytes(filename string, data []byte) (string, error) {
	if err := ValidateExtension(filename); err != nil {
		return "", err
	}
	return decode(data)
}

func decode(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", ErrInvalidImage
	}
	return format, nil
}
