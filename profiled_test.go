package profiled_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := profiled.Errorf(profiled.ENOTFOUND, "section %q not found", "experience")

	assert.Equal(t, profiled.ENOTFOUND, profiled.ErrorCode(err))
	assert.Equal(t, "section \"experience\" not found", profiled.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, profiled.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, profiled.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("navigate: %w", profiled.Errorf(profiled.EUNAVAILABLE, "browser gone"))

	assert.Equal(t, profiled.EUNAVAILABLE, profiled.ErrorCode(err))
	assert.Equal(t, "browser gone", profiled.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, profiled.EINTERNAL, profiled.ErrorCode(err))
	assert.Equal(t, "Internal error.", profiled.ErrorMessage(err))
	assert.False(t, profiled.IsNotFound(err))
}
