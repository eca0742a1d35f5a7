// Package idgen produces short human-typable record identifiers.
package idgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// Length of every identifier, prefix included.
	Length   = 5
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	defaultAttempts = 8
)

var ErrExhausted = errors.New("could not find a free identifier")

// ExistsFunc reports whether id is already taken in the store.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

type Generator struct {
	prefix   string
	exists   ExistsFunc
	attempts int
	intn     func(n int) int
}

type Option func(*Generator)

// WithPrefix fixes the leading characters, e.g. "CU" for customers.
func WithPrefix(p string) Option {
	return func(g *Generator) { g.prefix = strings.ToUpper(p) }
}

func WithAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.attempts = n
		}
	}
}

// WithRand replaces the random source; intn(n) must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(g *Generator) { g.intn = intn }
}

func New(exists ExistsFunc, opts ...Option) (*Generator, error) {
	g := &Generator{
		exists:   exists,
		attempts: defaultAttempts,
		intn:     rand.IntN,
	}
	for _, o := range opts {
		o(g)
	}
	if len(g.prefix) >= Length {
		return nil, fmt.Errorf("prefix %q en fazla %d karakter olabilir", g.prefix, Length-1)
	}
	for _, r := range g.prefix {
		if !strings.ContainsRune(alphabet, r) {
			return nil, fmt.Errorf("prefix %q sadece A-Z ve 0-9 içerebilir", g.prefix)
		}
	}
	return g, nil
}

func (g *Generator) candidate() string {
	var b strings.Builder
	b.Grow(Length)
	b.WriteString(g.prefix)
	for b.Len() < Length {
		b.WriteByte(alphabet[g.intn(len(alphabet))])
	}
	return b.String()
}

// Next returns an identifier that was free at the time of the check. The
// primary key still has the final word if two writers race.
func (g *Generator) Next(ctx context.Context) (string, error) {
	for range g.attempts {
		id := g.candidate()
		if g.exists == nil {
			return id, nil
		}
		taken, err := g.exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("id kontrolü yapılamadı: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}
