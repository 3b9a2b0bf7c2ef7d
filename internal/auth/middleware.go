package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie carrying the session token.
const CookieName = "jwt"

// JWTMiddleware accepts the session cookie or a bearer token and stores
// user_id in locals.
func JWTMiddleware(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			token = bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: No Token Provided")
		}

		claims, err := parseToken(token, secretBytes)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid Token")
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
