package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Yatube/app/forms"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/session"
)

// AuthController handles signup, login and logout
type AuthController struct {
	users repository.UserRepository
}

func NewAuthController(users repository.UserRepository) *AuthController {
	return &AuthController{users: users}
}

// HandleLogin authenticates by username and password and returns to a local next URL
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	next := safeNext(c.Query("next", c.FormValue("next")))

	if c.Method() != fiber.MethodPost {
		return render(c, "auth/login", "Log in", fiber.Map{
			"Form": &forms.LoginForm{Errors: forms.FieldErrors{}},
			"Next": next,
		})
	}

	form := forms.BindLoginForm(c)
	user, err := form.Authenticate(ac.users)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		return render(c, "auth/login", "Log in", fiber.Map{"Form": form, "Next": next})
	}

	if err := session.Login(c, user.ID, user.Username); err != nil {
		return err
	}

	if err := ac.users.UpdateLastLogin(user); err != nil {
		log.Warnf("[Auth] could not update last login of %s: %v", user.Username, err)
	}

	return success(c, "Welcome back, "+user.Username+"!", next)
}

// HandleSignup registers an account and sends the user to the login page
func (ac *AuthController) HandleSignup(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return render(c, "auth/signup", "Sign up", fiber.Map{
			"Form": &forms.SignupForm{Errors: forms.FieldErrors{}},
		})
	}

	form := forms.BindSignupForm(c)
	if !form.Validate(ac.users) {
		return render(c, "auth/signup", "Sign up", fiber.Map{"Form": form})
	}

	user, err := form.User()
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := ac.users.Create(user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	log.Infof("[Auth] new user %s", user.Username)

	return success(c, "Your account has been created. Please log in.", "/auth/login")
}

// HandleLogout ends the session
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	if err := session.Logout(c); err != nil {
		return err
	}
	return success(c, "You have been logged out.", homeURL)
}
