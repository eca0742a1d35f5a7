// Package captcha guards the public tracking entry point with one-shot sum challenges.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minOperand = 1
	maxOperand = 10
)

var (
	// ErrVerificationFailed covers wrong, non-numeric, expired and already used answers.
	ErrVerificationFailed = errors.New("security check failed")

	// ErrChallengeNotFound is returned by stores when the id is unknown or already taken.
	ErrChallengeNotFound = errors.New("challenge not found")
)

// Challenge is what the caller sees: "First + Second = ?".
type Challenge struct {
	ID        string    `json:"challenge_id"`
	First     int       `json:"first"`
	Second    int       `json:"second"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c Challenge) Question() string {
	return fmt.Sprintf("%d + %d = ?", c.First, c.Second)
}

// Store keeps outstanding challenges. Take must remove the challenge it returns.
type Store interface {
	Save(ctx context.Context, c Challenge) error
	Take(ctx context.Context, id string) (Challenge, error)
}

// purger is implemented by stores that can drop unanswered challenges.
type purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Gate struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	intn  func(n int) int
}

type Option func(*Gate)

// WithRand replaces the operand source; intn(n) must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(g *Gate) { g.intn = intn }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func NewGate(store Store, ttl time.Duration, opts ...Option) *Gate {
	g := &Gate{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		intn:  rand.IntN,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Issue creates and stores a fresh challenge. Expired leftovers are dropped on the way.
func (g *Gate) Issue(ctx context.Context) (Challenge, error) {
	if p, ok := g.store.(purger); ok {
		if _, err := p.PurgeExpired(ctx, g.now()); err != nil {
			return Challenge{}, fmt.Errorf("süresi dolan challenge'lar silinemedi: %w", err)
		}
	}

	c := Challenge{
		ID:        uuid.NewString(),
		First:     minOperand + g.intn(maxOperand-minOperand+1),
		Second:    minOperand + g.intn(maxOperand-minOperand+1),
		ExpiresAt: g.now().Add(g.ttl),
	}
	if err := g.store.Save(ctx, c); err != nil {
		return Challenge{}, fmt.Errorf("challenge kaydedilemedi: %w", err)
	}
	return c, nil
}

// Verify consumes the challenge whatever the outcome. On failure it returns
// ErrVerificationFailed together with a newly issued challenge.
func (g *Gate) Verify(ctx context.Context, id, answer string) (Challenge, error) {
	ok, err := g.check(ctx, id, answer)
	if err != nil {
		return Challenge{}, err
	}
	if ok {
		return Challenge{}, nil
	}

	next, err := g.Issue(ctx)
	if err != nil {
		return Challenge{}, err
	}
	return next, ErrVerificationFailed
}

func (g *Gate) check(ctx context.Context, id, answer string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	c, err := g.store.Take(ctx, id)
	if errors.Is(err, ErrChallengeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("challenge okunamadı: %w", err)
	}
	if !g.now().Before(c.ExpiresAt) {
		return false, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false, nil
	}
	return n == c.First+c.Second, nil
}
