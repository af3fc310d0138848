// Package views holds the embedded page templates and the error pages.
package views

import (
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/ManuelReschke/Yatube/internal/pkg/utils"
)

//go:embed layouts posts auth partials
var templates embed.FS

// BaseLayout wraps every rendered page
const BaseLayout = "layouts/base"

// NewEngine returns the html engine over the embedded templates
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(templates), ".html")
	engine.AddFunc("linebreaks", utils.Linebreaks)
	engine.AddFunc("truncatewords", utils.Truncatewords)
	engine.AddFunc("avatar", utils.AvatarURL)
	engine.AddFunc("date", func(t time.Time) string {
		return t.Format("2 January 2006")
	})
	engine.AddFunc("isodate", func(t time.Time) string {
		return t.Format(time.RFC3339)
	})
	return engine
}
