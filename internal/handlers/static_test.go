package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"catalog/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRegisterFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<div id=root></div>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	app := fiber.New()
	app.Get("/api/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	handlers.RegisterFrontend(app, dir)

	status, body := get(t, app, "/assets/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)", body)

	// Client-side routes fall back to index.html.
	status, body = get(t, app, "/create")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "id=root")

	status, body = get(t, app, "/api/ping")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)

	status, _ = get(t, app, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, status)
}
