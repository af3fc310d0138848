package forms

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Yatube/app/models"
)

type CommentForm struct {
	Text   string `form:"text" validate:"required"`
	Errors FieldErrors
}

func BindCommentForm(c *fiber.Ctx) *CommentForm {
	return &CommentForm{Text: c.FormValue("text"), Errors: FieldErrors{}}
}

func (f *CommentForm) Validate() bool {
	f.Text = strings.TrimSpace(f.Text)
	check(f, f.Errors)
	return !f.Errors.Any()
}

// Apply copies the text onto comment; post and author are set by the caller
func (f *CommentForm) Apply(comment *models.Comment) {
	comment.Text = f.Text
}
