package forms

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/Yatube/app/models"
	"github.com/ManuelReschke/Yatube/app/repository"
)

// SignupForm registers a new account
type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
	Errors    FieldErrors
}

func BindSignupForm(c *fiber.Ctx) *SignupForm {
	return &SignupForm{
		FirstName: strings.TrimSpace(c.FormValue("first_name")),
		LastName:  strings.TrimSpace(c.FormValue("last_name")),
		Username:  strings.TrimSpace(c.FormValue("username")),
		Email:     strings.TrimSpace(c.FormValue("email")),
		Password1: c.FormValue("password1"),
		Password2: c.FormValue("password2"),
		Errors:    FieldErrors{},
	}
}

func (f *SignupForm) Validate(users repository.UserRepository) bool {
	check(f, f.Errors)

	if !f.Errors.Has("username") {
		exists, err := users.UsernameExists(f.Username)
		if err != nil {
			f.Errors.Add(NonFieldErrors, err.Error())
		} else if exists {
			f.Errors.Add("username", MsgUsernameTaken)
		}
	}

	return !f.Errors.Any()
}

// User builds the unsaved account with a hashed password
func (f *SignupForm) User() (*models.User, error) {
	u := &models.User{
		Username:  f.Username,
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
	if err := u.SetPassword(f.Password1); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginForm authenticates by username and password
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Errors   FieldErrors
}

func BindLoginForm(c *fiber.Ctx) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(c.FormValue("username")),
		Password: c.FormValue("password"),
		Errors:   FieldErrors{},
	}
}

// Authenticate validates the form and returns the matching user, or nil with errors set
func (f *LoginForm) Authenticate(users repository.UserRepository) (*models.User, error) {
	check(f, f.Errors)
	if f.Errors.Any() {
		return nil, nil
	}

	user, err := users.GetByUsername(f.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			f.Errors.Add(NonFieldErrors, MsgInvalidLogin)
			return nil, nil
		}
		return nil, err
	}
	if !user.CheckPassword(f.Password) {
		f.Errors.Add(NonFieldErrors, MsgInvalidLogin)
		return nil, nil
	}
	return user, nil
}
