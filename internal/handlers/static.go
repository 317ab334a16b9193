package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RegisterFrontend serves the pre-built single-page app from dir. Any GET that
// matches neither an asset nor an API route receives index.html so client-side
// routing keeps working after a reload.
func RegisterFrontend(app *fiber.App, dir string) {
	app.Static("/", dir)

	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return respondMessage(c, fiber.StatusNotFound, "Not Found")
		}
		return c.SendFile(index)
	})
}
