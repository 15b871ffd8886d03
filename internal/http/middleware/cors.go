package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"entryapi/internal/config"
)

// CORS allows any method and header with credentials. An AllowOrigins of "*"
// echoes back whatever origin asked, since browsers reject a literal wildcard
// alongside credentials.
//
// TODO: narrow CORS_ALLOW_ORIGINS to the frontend origin before going to production.
func CORS(cfg config.CORSConfig) fiber.Handler {
	c := cors.Config{
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodPut, fiber.MethodDelete,
			fiber.MethodPatch, fiber.MethodOptions, fiber.MethodConnect, fiber.MethodTrace,
		}, ","),
		AllowHeaders:     "",
		AllowCredentials: true,
	}

	if cfg.AllowOrigins == "" || cfg.AllowOrigins == "*" {
		c.AllowOriginsFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}

	handler := cors.New(c)
	return func(ctx *fiber.Ctx) error {
		err := handler(ctx)
		allowRequestedMethod(ctx)
		return err
	}
}

// allowRequestedMethod adds the preflight's requested method to the allowed
// list. The cors middleware only answers with its static AllowMethods, and a
// literal "*" there is not honoured by browsers on credentialed requests.
func allowRequestedMethod(ctx *fiber.Ctx) {
	if ctx.Method() != fiber.MethodOptions {
		return
	}
	method := ctx.Get(fiber.HeaderAccessControlRequestMethod)
	if method == "" || !isToken(method) {
		return
	}
	// Origin was rejected.
	if len(ctx.Response().Header.Peek(fiber.HeaderAccessControlAllowOrigin)) == 0 {
		return
	}
	allowed := string(ctx.Response().Header.Peek(fiber.HeaderAccessControlAllowMethods))
	for _, m := range strings.Split(allowed, ",") {
		if strings.TrimSpace(m) == method {
			return
		}
	}
	if allowed == "" {
		ctx.Set(fiber.HeaderAccessControlAllowMethods, method)
		return
	}
	ctx.Set(fiber.HeaderAccessControlAllowMethods, allowed+","+method)
}

func isToken(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case strings.ContainsRune("!#$%&'*+-.^_`|~", r):
		default:
			return false
		}
	}
	return true
}
