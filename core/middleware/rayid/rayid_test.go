package rayid_test

import (
	"net/http/httptest"
	"testing"

	"particle-wui/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen, _ = c.Locals(rayid.LocalsKey).(string)
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestNew_GeneratesRayID(t *testing.T) {
	var seen string
	app := setupApp(&seen)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(rayid.Header)
	_, err = uuid.Parse(header)
	assert.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestNew_ReusesValidClientID(t *testing.T) {
	var seen string
	app := setupApp(&seen)

	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.Header, id)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, id, resp.Header.Get(rayid.Header))
	assert.Equal(t, id, seen)
}

func TestNew_ReplacesInvalidClientID(t *testing.T) {
	var seen string
	app := setupApp(&seen)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.Header, "not-a-uuid")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(rayid.Header))
	assert.Equal(t, resp.Header.Get(rayid.Header), seen)
}
