package request

import (
	"strconv"

	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Page is a resolved page/limit pair with the matching SQL offset.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Pagination reads ?page= and ?limit=, clamping out-of-range values.
func Pagination(c *fiber.Ctx) Page {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	return NewPage(page, limit)
}

// ID returns the named route parameter when it is a well-formed id.
func ID(c *fiber.Ctx, name, what string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", apperr.NotFound(what + " not found")
	}
	return id, nil
}

// UserID is the authenticated user stored by the auth middleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

var validate = validator.New()

// Bind parses the JSON body into dst and validates its struct tags.
func Bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("invalid payload")
	}
	return Validate(dst)
}

// ValidEmail reports whether value is a well-formed email address.
func ValidEmail(value string) bool {
	return validate.Var(value, "required,email") == nil
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperr.Validation("invalid payload")
	}
	return apperr.Validation("%s", message(verrs[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters long"
	default:
		return fe.Field() + " is invalid"
	}
}
