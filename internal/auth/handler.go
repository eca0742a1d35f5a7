package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// POST /api/auth/login
func LoginHandler(v Verifier, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		id, err := v.Verify(c.UserContext(), body.Username, body.Password)
		if errors.Is(err, ErrRejected) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid Username or Password")
		}
		if err != nil {
			return err
		}

		token, err := GenerateToken(secret, id, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(LoginResponse{Token: token, User: *id})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(SessionFrom(c).Identity)
	}
}
