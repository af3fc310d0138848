package controllers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
	"github.com/ManuelReschke/Yatube/internal/pkg/viewmodel"
	"github.com/ManuelReschke/Yatube/views"
)

// CSRFContextKey is the Locals key the csrf middleware stores its token under
const CSRFContextKey = "csrf"

func csrfToken(c *fiber.Ctx) string {
	if token, ok := c.Locals(CSRFContextKey).(string); ok {
		return token
	}
	return ""
}

func layout(c *fiber.Ctx, title string) viewmodel.Layout {
	userCtx := usercontext.GetUserContext(c)
	return viewmodel.Layout{
		Page:          c.Path(),
		Title:         title,
		FromProtected: userCtx.IsLoggedIn,
		Username:      userCtx.Username,
		Msg:           flash.Get(c),
		CSRFToken:     csrfToken(c),
	}
}

// render executes the named template inside the base layout
func render(c *fiber.Ctx, name, title string, data fiber.Map) error {
	data["Layout"] = layout(c, title)
	return c.Render(name, data, views.BaseLayout)
}

// notFoundOr maps gorm's missing-row error to a 404 and passes anything else through
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.ErrNotFound
	}
	return err
}

func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("post_id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

func postURL(username string, id uint) string {
	return "/" + url.PathEscape(username) + "/" + strconv.FormatUint(uint64(id), 10)
}

func profileURL(username string) string {
	return "/" + url.PathEscape(username)
}

// safeNext accepts only local absolute paths as redirect targets
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return homeURL
	}
	return next
}

// homeURL is served from the shared page cache, which never reads or clears the flash
// cookie, so redirects there go without a message.
const homeURL = "/"

func success(c *fiber.Ctx, message, location string) error {
	if isHome(location) {
		return c.Redirect(location, fiber.StatusFound)
	}
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": message}).Redirect(location)
}

func failure(c *fiber.Ctx, message, location string) error {
	if isHome(location) {
		return c.Redirect(location, fiber.StatusFound)
	}
	return flash.WithError(c, fiber.Map{"type": "error", "message": message}).Redirect(location)
}

func isHome(location string) bool {
	path, _, _ := strings.Cut(location, "?")
	return path == homeURL
}
