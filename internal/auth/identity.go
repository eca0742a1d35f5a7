package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"thunder-cargo/internal/config"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleGuest    Role = "guest"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// Identity: doğrulanmış kullanıcı. CustomerID sadece müşteri rolünde dolu.
type Identity struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	CustomerID  string `json:"customer_id,omitempty"`
}

var ErrRejected = errors.New("invalid username or password")

// Verifier checks a username/secret pair.
type Verifier interface {
	Verify(ctx context.Context, username, secret string) (*Identity, error)
}

type credential struct {
	hash     []byte
	identity Identity
}

// StaticVerifier: yapılandırmadan gelen sabit hesap tablosu (bcrypt hash'li).
type StaticVerifier struct {
	accounts map[string]credential
	dummy    []byte
}

// NewStaticVerifier hashes plain passwords with the given bcrypt cost;
// accounts that already carry a hash keep it.
func NewStaticVerifier(accounts []config.Account, cost int) (*StaticVerifier, error) {
	v := &StaticVerifier{accounts: make(map[string]credential, len(accounts))}

	for _, a := range accounts {
		role := Role(a.Role)
		if !role.Valid() || role == RoleGuest {
			return nil, fmt.Errorf("hesap %q için geçersiz rol: %q", a.Username, a.Role)
		}
		if role == RoleCustomer && a.CustomerID == "" {
			return nil, fmt.Errorf("müşteri hesabı %q için customer_id zorunlu", a.Username)
		}

		hash := []byte(a.PasswordHash)
		if len(hash) == 0 {
			h, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("şifre hashlenemedi: %w", err)
			}
			hash = h
		}

		name := strings.ToLower(strings.TrimSpace(a.Username))
		display := a.DisplayName
		if display == "" {
			display = a.Username
		}
		v.accounts[name] = credential{
			hash: hash,
			identity: Identity{
				Username:    name,
				DisplayName: display,
				Role:        role,
				CustomerID:  a.CustomerID,
			},
		}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("thunder-cargo"), cost)
	if err != nil {
		return nil, fmt.Errorf("şifre hashlenemedi: %w", err)
	}
	v.dummy = dummy
	return v, nil
}

func (v *StaticVerifier) Verify(_ context.Context, username, secret string) (*Identity, error) {
	cred, ok := v.accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		// Bilinmeyen kullanıcıda da aynı süre harcansın
		_ = bcrypt.CompareHashAndPassword(v.dummy, []byte(secret))
		return nil, ErrRejected
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(secret)); err != nil {
		return nil, ErrRejected
	}
	id := cred.identity
	return &id, nil
}
