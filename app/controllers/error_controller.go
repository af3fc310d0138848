package controllers

import (
	"errors"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/ManuelReschke/Yatube/views"
)

// HandleNotFound renders the 404 page, mounted after every route
func HandleNotFound(c *fiber.Ctx) error {
	return renderComponent(c, views.NotFound(c.Path()), fiber.StatusNotFound)
}

// ErrorHandler is the fiber.Config ErrorHandler. 404 errors get the not-found page,
// other client errors keep their status, and everything else is logged and becomes the
// 500 page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound:
			return HandleNotFound(c)
		case fe.Code < fiber.StatusInternalServerError:
			return c.Status(fe.Code).SendString(fe.Message)
		}
	}

	log.Errorf("[Error] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return renderComponent(c, views.ServerError(), fiber.StatusInternalServerError)
}

func renderComponent(c *fiber.Ctx, comp templ.Component, status int) error {
	handler := adaptor.HTTPHandler(templ.Handler(comp, templ.WithStatus(status)))
	return handler(c)
}
