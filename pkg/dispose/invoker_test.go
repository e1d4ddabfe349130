package dispose

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	observeerrors "github.com/go-drift/observe/pkg/errors"
)

func TestNewInvoker_NilAction(t *testing.T) {
	inv, err := NewInvoker(nil)

	require.Error(t, err)
	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, observeerrors.ErrInvalidArgument))

	var oe *observeerrors.ObserveError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "action", oe.Param)
}

func TestInvoker_DisposeRunsOnce(t *testing.T) {
	calls := 0
	inv, err := NewInvoker(func() { calls++ })
	require.NoError(t, err)
	assert.False(t, inv.Invoked())

	inv.Dispose()
	assert.Equal(t, 1, calls)
	assert.True(t, inv.Invoked())

	inv.Dispose()
	inv.Dispose()
	assert.Equal(t, 1, calls, "second and later Dispose calls must not rerun the action")
}

func TestInvoker_ReentrantDispose(t *testing.T) {
	calls := 0
	var inv *Invoker
	inv, err := NewInvoker(func() {
		calls++
		inv.Dispose()
	})
	require.NoError(t, err)

	inv.Dispose()
	assert.Equal(t, 1, calls)
}

func TestInvoker_IsDisposable(t *testing.T) {
	inv, err := NewInvoker(func() {})
	require.NoError(t, err)

	var d Disposable = inv
	d.Dispose()
	assert.True(t, inv.Invoked())
}
