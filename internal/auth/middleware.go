package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ctxSessionKey = "session"

// Session: isteğe özel oturum bağlamı. Süreç genelinde paylaşılan durum yok.
type Session struct {
	Identity
}

func (s *Session) IsGuest() bool {
	return s.Role == RoleGuest
}

var guest = Identity{Role: RoleGuest}

// SessionFrom returns the request's session; requests that never passed the
// middleware are guests.
func SessionFrom(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(ctxSessionKey).(*Session); ok && s != nil {
		return s
	}
	return &Session{Identity: guest}
}

// SessionMiddleware: token yoksa misafir oturumu, varsa geçerli olmak zorunda.
func SessionMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(ctxSessionKey, &Session{Identity: guest})
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		id, err := ParseToken(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(ctxSessionKey, &Session{Identity: *id})
		return c.Next()
	}
}

func RequireRole(allowedRoles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := SessionFrom(c)
		if s.IsGuest() {
			return fiber.NewError(fiber.StatusUnauthorized, "Please sign in")
		}
		for _, r := range allowedRoles {
			if r == s.Role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not allowed to do this")
	}
}
