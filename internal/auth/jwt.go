package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

type JWTCustomClaims struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	CustomerID  string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, id *Identity, now time.Time) (string, error) {
	claims := &JWTCustomClaims{
		Username:    id.Username,
		DisplayName: id.DisplayName,
		Role:        id.Role,
		CustomerID:  id.CustomerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)), // 1 gün
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the carried identity.
func ParseToken(secret, tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("geçersiz imzalama yöntemi")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token çözümlenemedi")
	}
	if !claims.Role.Valid() || claims.Role == RoleGuest {
		return nil, errors.New("token rolü geçersiz")
	}

	return &Identity{
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Role:        claims.Role,
		CustomerID:  claims.CustomerID,
	}, nil
}
