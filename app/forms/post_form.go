package forms

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/Yatube/app/models"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/upload"
)

// MaxImageBytes caps a single uploaded image
const MaxImageBytes = 10 << 20

// UploadedFile is an image read from a multipart request
type UploadedFile struct {
	Filename string
	Data     []byte
}

// PostForm creates and edits posts. Group holds the submitted group id, empty for none.
type PostForm struct {
	Text       string `form:"text" validate:"required"`
	Group      string `form:"group"`
	ImageClear bool   `form:"image-clear"`
	Image      *UploadedFile
	Errors     FieldErrors

	groupID *uint
}

// NewPostFormFrom fills the form with the current values of post for the edit page
func NewPostFormFrom(post *models.Post) *PostForm {
	f := &PostForm{Text: post.Text, Errors: FieldErrors{}}
	if post.GroupID != nil {
		f.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return f
}

// BindPostForm reads text, group, image-clear and the optional image file from the request
func BindPostForm(c *fiber.Ctx) (*PostForm, error) {
	f := &PostForm{
		Text:       c.FormValue("text"),
		Group:      strings.TrimSpace(c.FormValue("group")),
		ImageClear: c.FormValue("image-clear") != "",
		Errors:     FieldErrors{},
	}

	// no multipart body or no file part both mean "keep the current image"
	fh, err := c.FormFile("image")
	if err != nil || fh.Filename == "" {
		return f, nil
	}

	file, err := readFile(fh)
	if err != nil {
		return nil, err
	}
	f.Image = file
	return f, nil
}

// Validate checks every field and reports whether the form is valid
func (f *PostForm) Validate(groups repository.GroupRepository) bool {
	f.Text = strings.TrimSpace(f.Text)
	check(f, f.Errors)

	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 64)
		if err != nil {
			f.Errors.Add("group", MsgInvalidChoice)
		} else if _, err := groups.GetByID(uint(id)); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				f.Errors.Add(NonFieldErrors, err.Error())
			} else {
				f.Errors.Add("group", MsgInvalidChoice)
			}
		} else {
			gid := uint(id)
			f.groupID = &gid
		}
	}

	if f.Image != nil {
		if len(f.Image.Data) > MaxImageBytes {
			f.Errors.Add("image", fmt.Sprintf("Ensure the image is at most %d MB.", MaxImageBytes>>20))
		} else if _, err := upload.ValidateImageBytes(f.Image.Filename, f.Image.Data); err != nil {
			f.Errors.Add("image", err.Error())
		}
	}

	return !f.Errors.Any()
}

// Apply copies the validated text and group onto post. The image is stored by the
// caller; a checked image-clear without a new file removes the current image.
func (f *PostForm) Apply(post *models.Post) {
	post.Text = f.Text
	post.GroupID = f.groupID
	post.Group = nil
	if f.ImageClear && f.Image == nil {
		post.Image = ""
	}
}

// SelectedGroup reports whether id is the submitted group, used by the select box
func (f *PostForm) SelectedGroup(id uint) bool {
	return f.Group == strconv.FormatUint(uint64(id), 10)
}

func readFile(fh *multipart.FileHeader) (*UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &UploadedFile{Filename: fh.Filename, Data: data}, nil
}
