package collection

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	observeerrors "github.com/go-drift/observe/pkg/errors"
)

func TestIterator_WalksInOrder(t *testing.T) {
	c := givenCollection(t, "a", "b", "c")

	it := c.Iter()
	assert.Equal(t, -1, it.Index())

	var got []string
	var indices []int
	for it.Next() {
		got = append(got, it.Value())
		indices = append(indices, it.Index())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []int{0, 1, 2}, indices)
	assert.False(t, it.Next())
}

func TestIterator_FailsFastOnMutation(t *testing.T) {
	c := givenCollection(t, "a", "b", "c")

	it := c.Iter()
	require.True(t, it.Next())
	require.NoError(t, c.Append("d"))

	assert.False(t, it.Next())
	assert.True(t, errors.Is(it.Err(), observeerrors.ErrConcurrentModification))
	assert.False(t, it.Next(), "a failed iterator stays failed")
}

func TestIterator_RestartableAfterMutation(t *testing.T) {
	c := givenCollection(t, "a")
	require.NoError(t, c.Append("b"))

	it := c.Iter()
	var got []string
	for it.Next() {
		got = append(got, it.Value())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestAll_YieldsPairs(t *testing.T) {
	c := givenCollection(t, "a", "b", "c")

	var got []string
	for i, v := range c.All() {
		assert.Equal(t, len(got), i)
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)

	// restartable: a second enumeration sees the same items
	assert.Equal(t, got, collectAll[string](c))
}

func TestAll_EarlyBreak(t *testing.T) {
	c := givenCollection(t, "a", "b", "c")
	var got []string
	for _, v := range c.All() {
		got = append(got, v)
		break
	}
	assert.Equal(t, []string{"a"}, got)
}

func TestAll_PanicsOnMutation(t *testing.T) {
	c := givenCollection(t, "a", "b", "c")

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		assert.True(t, errors.Is(err, observeerrors.ErrConcurrentModification))
	}()

	for i := range c.All() {
		if i == 0 {
			_, _ = c.RemoveAt(2)
		}
	}
}

func TestAll_MutationRecoveredAsError(t *testing.T) {
	quiet := &observeerrors.LogHandler{Logger: slog.New(slog.DiscardHandler)}
	defer observeerrors.SetHandler(observeerrors.SetHandler(quiet))

	c := givenCollection(t, "a", "b", "c")
	walk := func() (seen int, err error) {
		defer observeerrors.RecoverAsError("walk", &err)
		for range c.All() {
			seen++
			require.NoError(t, c.Append("x"))
		}
		return seen, nil
	}

	seen, err := walk()
	assert.Equal(t, 1, seen)
	assert.True(t, errors.Is(err, observeerrors.ErrConcurrentModification))
	var oe *observeerrors.ObserveError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "collection.All", oe.Op)
}

func TestIterator_ZeroValue(t *testing.T) {
	var it Iterator[int]
	assert.False(t, it.Next())
	assert.Equal(t, 0, it.Value())
	assert.Equal(t, -1, it.Index())
	assert.NoError(t, it.Err())
}
