package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entryapi/internal/config"
	"entryapi/internal/logger"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace unsafe request id", func(t *testing.T) {
		for _, bad := range []string{"has space", strings.Repeat("a", 200), "naïve-id"} {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)

			resp, _ := app.Test(req)

			got := resp.Header.Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(logger.New(logger.Config{Output: &buf})))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad")
	})

	t.Run("records request fields", func(t *testing.T) {
		buf.Reset()
		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))

		assert.NotEmpty(t, logData["request_id"])
		assert.Equal(t, "GET", logData["method"])
		assert.Equal(t, "/test", logData["path"])
		assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
		assert.Equal(t, "http", logData["component"])
		assert.NotNil(t, logData["latency"])
		assert.NotEmpty(t, logData["time"])
	})

	t.Run("uses status of returned error", func(t *testing.T) {
		buf.Reset()
		app.Test(httptest.NewRequest("GET", "/fail", nil))

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.Equal(t, float64(fiber.StatusBadRequest), logData["status"])
	})
}

func TestCORS(t *testing.T) {
	newApp := func(cfg config.CORSConfig) *fiber.App {
		app := fiber.New()
		app.Use(CORS(cfg))
		app.Post("/entries/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
		return app
	}

	t.Run("wildcard echoes any origin with credentials", func(t *testing.T) {
		app := newApp(config.CORSConfig{AllowOrigins: "*"})

		req := httptest.NewRequest("OPTIONS", "/entries/", nil)
		req.Header.Set("Origin", "http://frontend.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "http://frontend.example", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "X-Custom-Header", resp.Header.Get("Access-Control-Allow-Headers"))
	})

	t.Run("preflight allows any requested method", func(t *testing.T) {
		app := newApp(config.CORSConfig{AllowOrigins: "*"})

		for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "CONNECT", "TRACE", "PROPFIND"} {
			req := httptest.NewRequest("OPTIONS", "/entries/", nil)
			req.Header.Set("Origin", "http://frontend.example")
			req.Header.Set("Access-Control-Request-Method", method)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode, method)
			assert.Contains(t, strings.Split(resp.Header.Get("Access-Control-Allow-Methods"), ","), method)
		}
	})

	t.Run("preflight from rejected origin allows nothing extra", func(t *testing.T) {
		app := newApp(config.CORSConfig{AllowOrigins: "http://frontend.example"})

		req := httptest.NewRequest("OPTIONS", "/entries/", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", "PROPFIND")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
		assert.NotContains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PROPFIND")
	})

	t.Run("simple request carries origin", func(t *testing.T) {
		app := newApp(config.CORSConfig{AllowOrigins: "*"})

		req := httptest.NewRequest("POST", "/entries/", nil)
		req.Header.Set("Origin", "http://other.example")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "http://other.example", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("explicit list rejects unknown origin", func(t *testing.T) {
		app := newApp(config.CORSConfig{AllowOrigins: "http://frontend.example"})

		req := httptest.NewRequest("POST", "/entries/", nil)
		req.Header.Set("Origin", "http://evil.example")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
