package chat

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/messages/:userId", authMiddleware, func(c *fiber.Ctx) error {
		other, err := request.ID(c, "userId", "User")
		if err != nil {
			return apperr.HTTP(err)
		}
		thread, err := svc.Thread(c.Context(), request.UserID(c), other)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(thread)
	})

	r.Post("/messages/:userId", authMiddleware, func(c *fiber.Ctx) error {
		other, err := request.ID(c, "userId", "User")
		if err != nil {
			return apperr.HTTP(err)
		}
		var req SendRequest
		if err := request.Bind(c, &req); err != nil {
			return apperr.HTTP(err)
		}
		msg, err := svc.Send(c.Context(), request.UserID(c), other, req.Text)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	})

	r.Get("/unread", authMiddleware, func(c *fiber.Ctx) error {
		counts, err := svc.UnreadCounts(c.Context(), request.UserID(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"counts": counts})
	})
}
