package captcha

import (
	"context"
	"testing"
	"time"

	"thunder-cargo/internal/models"
	"thunder-cargo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq returns operands in order; intn(10) yields v-1 so First/Second equal v.
func seq(values ...int) func(int) int {
	i := 0
	return func(int) int {
		v := values[i%len(values)]
		i++
		return v - 1
	}
}

func newGate(t *testing.T, opts ...Option) (*Gate, *GormStore) {
	t.Helper()
	store := NewGormStore(testutil.NewEmptyDB(t))
	return NewGate(store, time.Minute, opts...), store
}

func TestIssueOperandsInRange(t *testing.T) {
	g, _ := newGate(t)
	for i := 0; i < 50; i++ {
		c, err := g.Issue(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.First, 1)
		assert.LessOrEqual(t, c.First, 10)
		assert.GreaterOrEqual(t, c.Second, 1)
		assert.LessOrEqual(t, c.Second, 10)
		assert.NotEmpty(t, c.ID)
	}
}

func TestVerifyCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	g, _ := newGate(t, WithRand(seq(3, 4)))

	c, err := g.Issue(ctx)
	require.NoError(t, err)
	require.Equal(t, "3 + 4 = ?", c.Question())

	next, err := g.Verify(ctx, c.ID, "7")
	require.NoError(t, err)
	assert.Empty(t, next.ID)

	// Başarılı doğrulama da soruyu tüketir
	_, err = g.Verify(ctx, c.ID, "7")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyWrongAnswerRegenerates(t *testing.T) {
	ctx := context.Background()

	for _, answer := range []string{"8", "seven", "", " 7x"} {
		t.Run(answer, func(t *testing.T) {
			g, _ := newGate(t, WithRand(seq(3, 4, 9, 2)))

			c, err := g.Issue(ctx)
			require.NoError(t, err)

			next, err := g.Verify(ctx, c.ID, answer)
			require.ErrorIs(t, err, ErrVerificationFailed)
			require.NotEmpty(t, next.ID)
			assert.NotEqual(t, c.ID, next.ID)
			assert.Equal(t, 9, next.First)
			assert.Equal(t, 2, next.Second)

			// Eski soru artık kullanılamaz, doğru cevapla bile
			_, err = g.Verify(ctx, c.ID, "7")
			assert.ErrorIs(t, err, ErrVerificationFailed)
		})
	}
}

func TestVerifyTrimsAnswer(t *testing.T) {
	ctx := context.Background()
	g, _ := newGate(t, WithRand(seq(5, 5)))

	c, err := g.Issue(ctx)
	require.NoError(t, err)

	_, err = g.Verify(ctx, c.ID, " 10 ")
	assert.NoError(t, err)
}

func TestVerifyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	g, _ := newGate(t, WithRand(seq(1, 1)), WithClock(func() time.Time { return now }))

	c, err := g.Issue(ctx)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = g.Verify(ctx, c.ID, "2")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyUnknownID(t *testing.T) {
	g, _ := newGate(t)
	next, err := g.Verify(context.Background(), "does-not-exist", "2")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.NotEmpty(t, next.ID)
}

func TestIssuePurgesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	g, store := newGate(t, WithClock(func() time.Time { return now }))

	_, err := g.Issue(ctx)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = g.Issue(ctx)
	require.NoError(t, err)

	var count int64
	require.NoError(t, store.db.Model(&models.CaptchaChallenge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
