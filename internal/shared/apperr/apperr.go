// Package apperr carries the small error taxonomy the API exposes: callers
// only ever see a status code and a message, never an error code.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }

func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// IsKind reports whether err (or anything it wraps) is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == k
}

// Status maps err to the HTTP status it should be answered with.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// HTTP converts err into a *fiber.Error. Anything outside the taxonomy is
// logged and answered with a generic 500.
func HTTP(err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	status := Status(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		return fiber.NewError(status, "Internal server error")
	}
	return fiber.NewError(status, err.Error())
}
