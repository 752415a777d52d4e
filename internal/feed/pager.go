// Package feed accumulates topic summaries in fixed-size pages for an
// infinite-scroll list. The pager is purely reactive: it fetches only when
// reset by a filter change or poked by the view's sentinel-visible signal.
package feed

import (
	"context"
	"sync"

	"github.com/bine130/pe-subnote/internal/model"
)

// PageSize is the fixed server page size.
const PageSize = 10

// Filters are the server-side filters. Changing either requires a Reset.
type Filters struct {
	CategoryID *int
	Search     string
}

// FetchFunc loads one page under the given filters.
type FetchFunc func(ctx context.Context, f Filters, skip, limit int) ([]model.TopicSummary, error)

// Pager owns an ordered, de-duplicated accumulation of topic summaries.
type Pager struct {
	mu       sync.Mutex
	fetch    FetchFunc
	pageSize int

	filters Filters
	page    int
	hasMore bool
	loading bool
	topics  []model.TopicSummary
	seen    map[int]struct{}
}

func NewPager(fetch FetchFunc) *Pager {
	return &Pager{
		fetch:    fetch,
		pageSize: PageSize,
		hasMore:  true,
		seen:     make(map[int]struct{}),
	}
}

// Topics returns a copy of the accumulated list in first-seen order.
func (p *Pager) Topics() []model.TopicSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.TopicSummary, len(p.topics))
	copy(out, p.topics)
	return out
}

// HasMore reports whether the last page was full, i.e. another page may
// exist. Exhaustion is inferred from a short page, never from a count.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Loading reports whether a page fetch is in flight.
func (p *Pager) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Filters returns the active server-side filter set.
func (p *Pager) Filters() Filters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// Reset fetches page zero under new filters and swaps the accumulation in
// only on success. A failed reset leaves the prior list, filters, and
// exhaustion state untouched.
func (p *Pager) Reset(ctx context.Context, f Filters) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	batch, err := p.fetch(ctx, f, 0, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return err
	}
	p.filters = f
	p.page = 0
	p.topics = nil
	p.seen = make(map[int]struct{})
	p.merge(batch)
	p.hasMore = len(batch) == p.pageSize
	return nil
}

// LoadNext fetches the next page. It is a no-op while a load is in flight
// or after exhaustion.
func (p *Pager) LoadNext(ctx context.Context) error {
	p.mu.Lock()
	if p.loading || !p.hasMore {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.page++
	f := p.filters
	skip := p.page * p.pageSize
	p.mu.Unlock()

	batch, err := p.fetch(ctx, f, skip, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		// Keep the accumulated list and rewind the page counter so the
		// next trigger retries the same page.
		p.page--
		return err
	}
	p.merge(batch)
	p.hasMore = len(batch) == p.pageSize
	return nil
}

func (p *Pager) merge(batch []model.TopicSummary) {
	for _, t := range batch {
		if _, dup := p.seen[t.ID]; dup {
			continue
		}
		p.seen[t.ID] = struct{}{}
		p.topics = append(p.topics, t)
	}
}

// Project applies the purely local filters (bookmark membership, importance
// level) over an accumulated list. It never fetches.
func Project(topics []model.TopicSummary, bookmarked BookmarkSet, bookmarkedOnly bool, importance *int) []model.TopicSummary {
	out := make([]model.TopicSummary, 0, len(topics))
	for _, t := range topics {
		if bookmarkedOnly && !bookmarked.Has(t.ID) {
			continue
		}
		if importance != nil && t.ImportanceLevel != *importance {
			continue
		}
		out = append(out, t)
	}
	return out
}
