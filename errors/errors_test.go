package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.True(t, Is(wrapped, original))
}

func TestSentinelIdentity(t *testing.T) {
	// Wrapping a sentinel must preserve Is() identity through
	// arbitrary layers of context.
	err := Wrap(Wrap(ErrProgramNotFound, "feedana"), "add failed")

	assert.True(t, Is(err, ErrProgramNotFound))
	assert.False(t, Is(err, ErrConfigNotFound))
	assert.True(t, IsProgramNotFound(err))
	assert.False(t, IsConfigNotFound(err))
}

func TestNewInvalidIDLError(t *testing.T) {
	err := NewInvalidIDLError("unknown seed kind: %s", "weird")

	require.NotNil(t, err)
	assert.True(t, IsInvalidIDL(err))
	assert.Contains(t, err.Error(), "unknown seed kind: weird")
}

func TestNewConfigNotFoundError(t *testing.T) {
	err := NewConfigNotFoundError("%s not found", "SolanaPrograms.json")

	assert.True(t, IsConfigNotFound(err))
	assert.Contains(t, err.Error(), "SolanaPrograms.json not found")
}

func TestHelpersNilSafe(t *testing.T) {
	assert.False(t, IsConfigNotFound(nil))
	assert.False(t, IsProgramNotFound(nil))
	assert.False(t, IsInvalidIDL(nil))
}
