package auth

import (
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler, secureCookie bool) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := request.Bind(c, &req); err != nil {
			return apperr.HTTP(err)
		}
		user, token, err := svc.Signup(c.Context(), req)
		if err != nil {
			return apperr.HTTP(err)
		}
		setSessionCookie(c, token, secureCookie)
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid username or password")
		}
		user, token, err := svc.Login(c.Context(), req)
		if err != nil {
			return apperr.HTTP(err)
		}
		setSessionCookie(c, token, secureCookie)
		return c.JSON(user)
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HTTPOnly: true,
			Secure:   secureCookie,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	})

	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		user, err := svc.Me(c.Context(), request.UserID(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(user)
	})
}

func setSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		MaxAge:   int(TokenTTL.Seconds()),
		Expires:  time.Now().Add(TokenTTL),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
