package api

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/logging"
)

// DefaultSpeciesConcurrency bounds parallel page fetches during a species crawl.
const DefaultSpeciesConcurrency = 4

// Species walks every page of the unfiltered listing and returns the distinct
// non-empty species, collated. Page 1 is fetched first to learn the page count;
// the rest are fetched concurrently. Any page failure aborts the crawl.
func (c *Client) Species(ctx context.Context, concurrency int) ([]string, error) {
	log := logging.FromContext(ctx)
	if concurrency < 1 {
		concurrency = DefaultSpeciesConcurrency
	}

	first, err := c.FetchPage(ctx, catalog.BuildDescriptor(catalog.FirstPage, "", "", "", ""))
	if err != nil {
		return nil, fmt.Errorf("fetching species page 1: %w", err)
	}

	var mu sync.Mutex
	seen := make(map[string]struct{})
	collect := func(chars []catalog.Character) {
		mu.Lock()
		defer mu.Unlock()
		for _, ch := range chars {
			if ch.Species != "" {
				seen[ch.Species] = struct{}{}
			}
		}
	}
	collect(first.Results)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for page := catalog.FirstPage + 1; page <= first.Info.Pages; page++ {
		g.Go(func() error {
			p, fetchErr := c.FetchPage(gctx, catalog.BuildDescriptor(page, "", "", "", ""))
			if fetchErr != nil {
				return fmt.Errorf("fetching species page %d: %w", page, fetchErr)
			}
			collect(p.Results)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "api").
			Str("operation", "species").
			Err(err).
			Msg("species crawl aborted")
		return nil, err
	}

	species := make([]string, 0, len(seen))
	for s := range seen {
		species = append(species, s)
	}
	catalog.SortStrings(species)

	log.Debug().Ctx(ctx).
		Str("component", "api").
		Str("operation", "species").
		Int("pages", first.Info.Pages).
		Int("species", len(species)).
		Msg("species crawl complete")
	return species, nil
}
