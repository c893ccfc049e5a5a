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

func TestWrapPreservesSentinel(t *testing.T) {
	wrapped := Wrap(ErrFileNotFound, "loading /tmp/g.langium")
	assert.Contains(t, wrapped.Error(), "loading /tmp/g.langium")
	assert.True(t, Is(wrapped, ErrFileNotFound))

	deeper := Wrapf(wrapped, "parse attempt %d", 2)
	assert.True(t, Is(deeper, ErrFileNotFound))
}

func TestIsFileNotFoundError(t *testing.T) {
	assert.True(t, IsFileNotFoundError(ErrFileNotFound))
	assert.True(t, IsFileNotFoundError(Wrap(ErrFileNotFound, "ctx")))
	assert.False(t, IsFileNotFoundError(ErrSyntax))
	assert.False(t, IsFileNotFoundError(nil))
}

func TestIsFatalParseError(t *testing.T) {
	for _, sentinel := range []error{ErrFileNotFound, ErrLex, ErrSyntax, ErrSemantic} {
		assert.True(t, IsFatalParseError(sentinel))
		assert.True(t, IsFatalParseError(Wrap(sentinel, "ctx")))
	}
	assert.False(t, IsFatalParseError(New("unrelated")))
	assert.False(t, IsFatalParseError(nil))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrFileNotFound, ErrLex, ErrSyntax, ErrSemantic}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b))
		}
	}
}
