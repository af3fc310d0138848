package viewmodel

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Layout carries what layouts/base needs on every page
type Layout struct {
	Page          string
	Title         string
	FromProtected bool
	IsError       bool
	Msg           fiber.Map
	Username      string
	CSRFToken     string
}

// Active reports whether the nav entry for path belongs to the current page.
// "/" only matches the home feed itself.
func (l Layout) Active(path string) bool {
	if path == "/" {
		return l.Page == "/"
	}
	return l.Page == path || strings.HasPrefix(l.Page, path+"/")
}
