package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

func errorPage(code int, title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%d | Yatube</title><link rel="stylesheet" href="/css/app.css"></head>
<body>
<header class="navbar"><a class="brand" href="/">Yatube</a></header>
<main class="container">
<h1>%s</h1>
<p>%s</p>
<p><a href="/">Back to the home page</a></p>
</main>
</body>
</html>`, code, html.EscapeString(title), html.EscapeString(message))
		return err
	})
}

// NotFound renders the 404 page for path
func NotFound(path string) templ.Component {
	return errorPage(404, "Page not found",
		fmt.Sprintf("The page %s does not exist.", path))
}

// ServerError renders the generic 500 page
func ServerError() templ.Component {
	return errorPage(500, "Server error", "Something went wrong on our side. Please try again later.")
}
