package feed

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the activity feed on the posts group.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/following-activity", authMiddleware, func(c *fiber.Ctx) error {
		items, err := svc.Activity(c.Context(), request.UserID(c), request.Pagination(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(items)
	})
}
