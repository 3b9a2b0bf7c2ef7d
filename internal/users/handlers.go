package users

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/profile/:username", authMiddleware, func(c *fiber.Ctx) error {
		user, err := svc.Profile(c.Context(), c.Params("username"))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(user)
	})

	r.Post("/update", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := request.Bind(c, &req); err != nil {
			return apperr.HTTP(err)
		}
		user, err := svc.Update(c.Context(), request.UserID(c), req)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Profile updated successfully", "user": user})
	})
}
