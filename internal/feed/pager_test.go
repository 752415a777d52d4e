package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/bine130/pe-subnote/internal/model"
)

func topicRange(from, to int) []model.TopicSummary {
	out := []model.TopicSummary{}
	for i := from; i < to; i++ {
		out = append(out, model.TopicSummary{ID: i, Title: "t", ImportanceLevel: i % 5})
	}
	return out
}

// pagedFetch serves a fixed corpus by skip/limit and records calls.
func pagedFetch(corpus []model.TopicSummary, calls *int) FetchFunc {
	return func(_ context.Context, _ Filters, skip, limit int) ([]model.TopicSummary, error) {
		*calls++
		if skip >= len(corpus) {
			return nil, nil
		}
		end := skip + limit
		if end > len(corpus) {
			end = len(corpus)
		}
		return corpus[skip:end], nil
	}
}

func ids(topics []model.TopicSummary) []int {
	out := make([]int, len(topics))
	for i, t := range topics {
		out[i] = t.ID
	}
	return out
}

func TestDeduplicationAcrossPages(t *testing.T) {
	// Page 1 overlaps page 0 by three items, as happens when a topic is
	// inserted between fetches and shifts the offsets.
	pages := [][]model.TopicSummary{
		topicRange(0, 10),
		topicRange(7, 17),
	}
	var call int
	fetch := func(_ context.Context, _ Filters, skip, limit int) ([]model.TopicSummary, error) {
		page := skip / limit
		if page >= len(pages) {
			return nil, nil
		}
		call++
		return pages[page], nil
	}

	p := NewPager(fetch)
	ctx := context.Background()
	if err := p.Reset(ctx, Filters{}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := p.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext: %v", err)
	}

	got := ids(p.Topics())
	seen := map[int]bool{}
	for i, id := range got {
		if seen[id] {
			t.Fatalf("duplicate id %d in %v", id, got)
		}
		seen[id] = true
		if i > 0 && got[i-1] > id && got[i-1] < 10 {
			t.Errorf("first-seen order violated at %d: %v", i, got)
		}
	}
	if len(got) != 17 {
		t.Errorf("len = %d, want 17", len(got))
	}
}

func TestExhaustionOnShortPage(t *testing.T) {
	var calls int
	p := NewPager(pagedFetch(topicRange(0, 13), &calls))
	ctx := context.Background()

	if err := p.Reset(ctx, Filters{}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !p.HasMore() {
		t.Fatal("HasMore = false after full page 0")
	}
	if err := p.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext: %v", err)
	}
	if p.HasMore() {
		t.Error("HasMore = true after short page")
	}

	calls = 0
	for i := 0; i < 3; i++ {
		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("LoadNext: %v", err)
		}
	}
	if calls != 0 {
		t.Errorf("fetch called %d times after exhaustion, want 0", calls)
	}

	// Reset makes it live again.
	if err := p.Reset(ctx, Filters{Search: "x"}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !p.HasMore() {
		t.Error("HasMore = false after Reset")
	}
}

func TestLoadNextGuardsInFlight(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	var calls int
	fetch := func(_ context.Context, _ Filters, skip, limit int) ([]model.TopicSummary, error) {
		calls++
		if skip > 0 {
			close(started)
			<-block
		}
		return topicRange(skip, skip+limit), nil
	}

	p := NewPager(fetch)
	ctx := context.Background()
	if err := p.Reset(ctx, Filters{}); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	done := make(chan error)
	go func() { done <- p.LoadNext(ctx) }()
	<-started

	// Second trigger while the first is in flight must be a no-op.
	if err := p.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext: %v", err)
	}
	close(block)
	if err := <-done; err != nil {
		t.Fatalf("LoadNext: %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (reset + one page)", calls)
	}
}

func TestResetClearsAccumulation(t *testing.T) {
	var calls int
	var gotFilters Filters
	fetch := func(_ context.Context, f Filters, skip, limit int) ([]model.TopicSummary, error) {
		calls++
		gotFilters = f
		return topicRange(skip, skip+limit), nil
	}

	p := NewPager(fetch)
	ctx := context.Background()
	p.Reset(ctx, Filters{})
	p.LoadNext(ctx)
	if len(p.Topics()) != 20 {
		t.Fatalf("len = %d, want 20", len(p.Topics()))
	}

	cat := 3
	if err := p.Reset(ctx, Filters{CategoryID: &cat, Search: "dam"}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(p.Topics()) != 10 {
		t.Errorf("len = %d after reset, want 10", len(p.Topics()))
	}
	if gotFilters.Search != "dam" || gotFilters.CategoryID == nil || *gotFilters.CategoryID != 3 {
		t.Errorf("filters not forwarded: %+v", gotFilters)
	}
}

func TestLoadErrorKeepsPriorState(t *testing.T) {
	fail := false
	fetch := func(_ context.Context, _ Filters, skip, limit int) ([]model.TopicSummary, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return topicRange(skip, skip+limit), nil
	}

	p := NewPager(fetch)
	ctx := context.Background()
	p.Reset(ctx, Filters{})

	fail = true
	if err := p.LoadNext(ctx); err == nil {
		t.Fatal("expected error")
	}
	if len(p.Topics()) != 10 {
		t.Errorf("len = %d after failed load, want 10", len(p.Topics()))
	}
	if p.Loading() {
		t.Error("Loading = true after failed load")
	}
}

func TestResetErrorKeepsPriorState(t *testing.T) {
	fail := false
	fetch := func(_ context.Context, _ Filters, skip, limit int) ([]model.TopicSummary, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return topicRange(skip, skip+limit), nil
	}

	p := NewPager(fetch)
	ctx := context.Background()
	if err := p.Reset(ctx, Filters{}); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// Filter change while the network is down: the old list survives.
	fail = true
	cat := 2
	if err := p.Reset(ctx, Filters{CategoryID: &cat}); err == nil {
		t.Fatal("expected error")
	}
	if len(p.Topics()) != 10 {
		t.Errorf("len = %d after failed reset, want 10", len(p.Topics()))
	}
	if got := p.Filters(); got.CategoryID != nil {
		t.Errorf("filters = %+v after failed reset, want previous", got)
	}
	if p.Loading() {
		t.Error("Loading = true after failed reset")
	}
	if !p.HasMore() {
		t.Error("HasMore = false after failed reset")
	}

	// The next reset swaps the fresh page in.
	fail = false
	if err := p.Reset(ctx, Filters{CategoryID: &cat}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(p.Topics()) != 10 {
		t.Errorf("len = %d after recovery, want 10", len(p.Topics()))
	}
	if got := p.Filters(); got.CategoryID == nil || *got.CategoryID != 2 {
		t.Errorf("filters = %+v after recovery", got)
	}
}

func TestProjectIsPure(t *testing.T) {
	topics := topicRange(0, 10)
	set := BookmarkSet{2: {}, 4: {}, 7: {}}

	got := Project(topics, set, true, nil)
	if len(got) != 3 {
		t.Fatalf("bookmark-only len = %d, want 3", len(got))
	}

	level := 3
	got = Project(topics, set, false, &level)
	for _, tp := range got {
		if tp.ImportanceLevel != 3 {
			t.Errorf("importance filter leaked id %d", tp.ID)
		}
	}

	// Both at once.
	got = Project(topics, set, true, &level)
	if len(got) != 1 || got[0].ID != 7 {
		t.Errorf("combined projection = %v", ids(got))
	}
}

func TestBookmarkSetToggle(t *testing.T) {
	set := NewBookmarkSet([]model.Bookmark{{TopicID: 1}, {TopicID: 2}})
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}

	set.Apply(9, true)
	if !set.Has(9) || set.Len() != 3 {
		t.Errorf("after add: has=%v len=%d", set.Has(9), set.Len())
	}
	set.Apply(9, false)
	if set.Has(9) || set.Len() != 2 {
		t.Errorf("after remove: has=%v len=%d", set.Has(9), set.Len())
	}
}
