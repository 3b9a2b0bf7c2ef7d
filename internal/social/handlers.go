package social

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow/:id", authMiddleware, func(c *fiber.Ctx) error {
		target, err := request.ID(c, "id", "User")
		if err != nil {
			return apperr.HTTP(err)
		}
		result, err := svc.ToggleFollow(c.Context(), request.UserID(c), target)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(result)
	})

	r.Get("/following", authMiddleware, func(c *fiber.Ctx) error {
		list, err := svc.Following(c.Context(), request.UserID(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(list)
	})

	r.Get("/mutuals", authMiddleware, func(c *fiber.Ctx) error {
		list, err := svc.Mutuals(c.Context(), request.UserID(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(list)
	})

	r.Get("/suggested", authMiddleware, func(c *fiber.Ctx) error {
		list, err := svc.Suggested(c.Context(), request.UserID(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(list)
	})
}
