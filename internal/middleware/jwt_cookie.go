package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskreel/taskreel-api/internal/utils"
)

// CookieName is the session cookie every authenticated endpoint reads.
const CookieName = "tr_token"

func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
