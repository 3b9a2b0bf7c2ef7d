package posts

import (
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/getAll", authMiddleware, listing(func(c *fiber.Ctx) ([]Post, error) {
		return svc.All(c.Context(), request.Pagination(c))
	}))

	r.Get("/forYou", authMiddleware, listing(func(c *fiber.Ctx) ([]Post, error) {
		return svc.ForYou(c.Context(), request.UserID(c), request.Pagination(c))
	}))

	r.Get("/getFollowingPosts", authMiddleware, listing(func(c *fiber.Ctx) ([]Post, error) {
		return svc.Following(c.Context(), request.UserID(c), request.Pagination(c))
	}))

	r.Get("/getUserPosts/:username", authMiddleware, listing(func(c *fiber.Ctx) ([]Post, error) {
		return svc.ByUsername(c.Context(), c.Params("username"), request.Pagination(c))
	}))

	r.Get("/likedposts", authMiddleware, listing(func(c *fiber.Ctx) ([]Post, error) {
		return svc.Liked(c.Context(), request.UserID(c), request.Pagination(c))
	}))

	r.Post("/create", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := request.Bind(c, &req); err != nil {
			return apperr.HTTP(err)
		}
		post, err := svc.Create(c.Context(), request.UserID(c), req)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Post("/like/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		post, err := svc.Like(c.Context(), request.UserID(c), id)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(post)
	})

	r.Post("/unlike/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		post, err := svc.Unlike(c.Context(), request.UserID(c), id)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(post)
	})

	r.Post("/comment/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		var req CommentRequest
		if err := request.Bind(c, &req); err != nil {
			return apperr.HTTP(err)
		}
		post, err := svc.Comment(c.Context(), request.UserID(c), id, req.Text)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Post("/share/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		var req ShareRequest
		if err := request.Bind(c, &req); err != nil {
			return apperr.HTTP(err)
		}
		post, err := svc.Share(c.Context(), request.UserID(c), id, req)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Post shared successfully", "post": post})
	})

	r.Delete("/delete/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		if err := svc.Delete(c.Context(), request.UserID(c), id); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Post deleted successfully"})
	})

	r.Delete("/comment/delete/:postId/:commentId", authMiddleware, func(c *fiber.Ctx) error {
		postID, err := request.ID(c, "postId", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		commentID, err := request.ID(c, "commentId", "Comment")
		if err != nil {
			return apperr.HTTP(err)
		}
		if err := svc.DeleteComment(c.Context(), request.UserID(c), postID, commentID); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
	})
}

// RegisterSavedRoutes mounts the bookmark endpoints, which live under the
// users group.
func RegisterSavedRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/saved", authMiddleware, listing(func(c *fiber.Ctx) ([]Post, error) {
		return svc.Saved(c.Context(), request.UserID(c), request.Pagination(c))
	}))

	r.Post("/save/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		if err := svc.Save(c.Context(), request.UserID(c), id); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Post saved successfully"})
	})

	r.Post("/unsave/:id", authMiddleware, func(c *fiber.Ctx) error {
		id, err := request.ID(c, "id", "Post")
		if err != nil {
			return apperr.HTTP(err)
		}
		if err := svc.Unsave(c.Context(), request.UserID(c), id); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(fiber.Map{"message": "Post removed from saved"})
	})
}

func listing(load func(c *fiber.Ctx) ([]Post, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := load(c)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(posts)
	}
}
