package media

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes serves hosted images. Reads are public so <img> tags work
// without credentials.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Image")
		if err != nil {
			return apperr.HTTP(err)
		}
		obj, body, err := svc.Open(c.Context(), id)
		if err != nil {
			return apperr.HTTP(err)
		}
		c.Set(fiber.HeaderContentType, obj.ContentType)
		c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
		return c.SendStream(body)
	})
}
