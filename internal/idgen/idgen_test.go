package idgen

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

func TestNextFormat(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	for range 200 {
		id, err := g.Next(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, idPattern, id)
	}
}

func TestPrefix(t *testing.T) {
	g, err := New(nil, WithPrefix("cu"))
	require.NoError(t, err)

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^CU[A-Z0-9]{3}$`, id)

	_, err = New(nil, WithPrefix("ABCDE"))
	assert.Error(t, err)
	_, err = New(nil, WithPrefix("C-"))
	assert.Error(t, err)
}

func TestRetriesOnCollision(t *testing.T) {
	// 0,0,0,0,0 -> "AAAAA" (taken), 1,1,1,1,1 -> "BBBBB"
	calls := 0
	intn := func(int) int { v := calls / Length; calls++; return v }

	var checked []string
	exists := func(_ context.Context, id string) (bool, error) {
		checked = append(checked, id)
		return id == "AAAAA", nil
	}

	g, err := New(exists, WithRand(intn))
	require.NoError(t, err)

	id, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BBBBB", id)
	assert.Equal(t, []string{"AAAAA", "BBBBB"}, checked)
}

func TestExhausted(t *testing.T) {
	g, err := New(func(context.Context, string) (bool, error) { return true, nil }, WithAttempts(3))
	require.NoError(t, err)

	_, err = g.Next(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestStoreError(t *testing.T) {
	boom := errors.New("boom")
	g, err := New(func(context.Context, string) (bool, error) { return false, boom })
	require.NoError(t, err)

	_, err = g.Next(context.Background())
	assert.ErrorIs(t, err, boom)
}
