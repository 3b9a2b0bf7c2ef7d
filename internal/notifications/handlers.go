package notifications

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// Viewing a page acknowledges what it shows.
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID := request.UserID(c)
		list, err := svc.List(c.Context(), userID, request.Pagination(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		var unread []string
		for _, n := range list {
			if !n.Read {
				unread = append(unread, n.ID)
			}
		}
		if err := svc.MarkRead(c.Context(), userID, unread); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(list)
	})

	r.Get("/unread-count", authMiddleware, func(c *fiber.Ctx) error {
		count, err := svc.UnreadCount(c.Context(), request.UserID(c))
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"count": count})
	})

	r.Delete("/", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteAll(c.Context(), request.UserID(c)); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Notifications deleted successfully"})
	})

	r.Delete("/delete/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Notification")
		if err != nil {
			return apperr.HTTP(err)
		}
		if err := svc.Delete(c.Context(), id, request.UserID(c)); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Notification deleted successfully"})
	})

	r.Post("/readed", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.MarkAllRead(c.Context(), request.UserID(c)); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "All notifications marked as read"})
	})

	r.Post("/read/:id", authMiddleware, setRead(svc, true, "Notification marked as read"))
	r.Post("/unread/:id", authMiddleware, setRead(svc, false, "Notification marked as unread"))
}

func setRead(svc *Service, read bool, msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Notification")
		if err != nil {
			return apperr.HTTP(err)
		}
		if err := svc.SetRead(c.Context(), id, request.UserID(c), read); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": msg})
	}
}
