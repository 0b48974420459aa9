package mock

import (
	"context"

	"github.com/fwojciec/profiled"
)

var _ profiled.SessionProvider = (*SessionProvider)(nil)

// SessionProvider is a mock implementation of profiled.SessionProvider.
type SessionProvider struct {
	OpenFn func(ctx context.Context) (profiled.Document, error)
}

func (s *SessionProvider) Open(ctx context.Context) (profiled.Document, error) {
	return s.OpenFn(ctx)
}
