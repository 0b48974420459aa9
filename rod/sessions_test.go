package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_Open(t *testing.T) {
	t.Parallel()

	t.Run("requires a session cookie", func(t *testing.T) {
		t.Parallel()

		s := rod.NewSessions(nil, "")

		doc, err := s.Open(context.Background())

		assert.Nil(t, doc)
		assert.Equal(t, profiled.EUNAUTHORIZED, profiled.ErrorCode(err))
	})

	t.Run("respects a canceled context before touching the browser", func(t *testing.T) {
		t.Parallel()

		s := rod.NewSessions(nil, "cookie")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Open(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSessionCookie(t *testing.T) {
	t.Parallel()

	c := rod.SessionCookie("AQEDAR")

	assert.Equal(t, "li_at", c.Name)
	assert.Equal(t, "AQEDAR", c.Value)
	assert.Equal(t, ".linkedin.com", c.Domain)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, c.HTTPOnly)
}
