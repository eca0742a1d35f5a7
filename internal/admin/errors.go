package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var ErrNotFound = errors.New("record not found")

// ValidationError: kullanıcıya aynen gösterilen form hatası
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// httpError: servis hatasını handler cevabına çevirir. Bilinmeyen hatalar
// ErrorHandler'a olduğu gibi gider (loglanır, 500).
func httpError(err error, notFoundMsg string) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, ve.Msg)
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	}
	return err
}
