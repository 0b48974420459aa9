package mock

import (
	"context"

	"github.com/fwojciec/profiled"
)

var _ profiled.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of profiled.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, vanity string) (*profiled.Profile, error)
}

func (s *Scraper) Scrape(ctx context.Context, vanity string) (*profiled.Profile, error) {
	return s.ScrapeFn(ctx, vanity)
}
