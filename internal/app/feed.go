package app

import (
	"context"
	"strings"
	"sync"
)

const (
	categoryFilterPrefix = "category:"
	tagFilterPrefix      = "tag:"
)

// TopTagFilters are the fixed tag chips shown before the derived category
// chips.
var TopTagFilters = []CategoryLabel{
	{Label: "For Sale", Value: tagFilterPrefix + "for sale"},
	{Label: "Loss Report", Value: tagFilterPrefix + "loss report"},
}

// CategoryFilterValue extracts the category from a "category:<v>" filter,
// or "" for any other filter kind.
func CategoryFilterValue(filter string) string {
	if !strings.HasPrefix(filter, categoryFilterPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(filter, categoryFilterPrefix))
}

// TagFilterValue extracts the tag from a "tag:<v>" filter, or "" for any
// other filter kind.
func TagFilterValue(filter string) string {
	if !strings.HasPrefix(filter, tagFilterPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(filter, tagFilterPrefix))
}

// FeedSnapshot is a copy of the controller state for rendering.
type FeedSnapshot struct {
	Stories      []NewsStory
	Page         int
	LastPage     int
	Loading      bool
	Refreshing   bool
	LoadingMore  bool
	Err          string
	ActiveFilter string
}

// HasMore reports whether further pages may be requested.
func (s FeedSnapshot) HasMore() bool {
	return s.Page < s.LastPage
}

// FeedController is the paginated, filterable news list. Two filter kinds
// share ActiveFilter: "category:<v>" refetches server-side, "tag:<v>" only
// narrows the already-loaded stories client-side.
//
// Responses carry the generation current when their request started; a
// response whose generation is stale is discarded so a slow early fetch
// cannot clobber a newer one.
type FeedController struct {
	client   *APIClient
	pageSize int

	mu           sync.Mutex
	gen          uint64
	stories      []NewsStory
	page         int
	lastPage     int
	loading      bool
	refreshing   bool
	loadingMore  bool
	err          string
	activeFilter string
}

func NewFeedController(client *APIClient, pageSize int) *FeedController {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &FeedController{
		client:   client,
		pageSize: pageSize,
		page:     1,
		lastPage: 1,
	}
}

func (f *FeedController) Snapshot() FeedSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	stories := make([]NewsStory, len(f.stories))
	copy(stories, f.stories)
	return FeedSnapshot{
		Stories:      stories,
		Page:         f.page,
		LastPage:     f.lastPage,
		Loading:      f.loading,
		Refreshing:   f.refreshing,
		LoadingMore:  f.loadingMore,
		Err:          f.err,
		ActiveFilter: f.activeFilter,
	}
}

// LoadFirstPage fetches page 1 under the given filter, replacing the story
// list wholesale and resetting the pagination cursor from response meta.
func (f *FeedController) LoadFirstPage(ctx context.Context, filter string, asRefresh bool) {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	if asRefresh {
		f.refreshing = true
	} else {
		f.loading = true
	}
	f.err = ""
	f.activeFilter = filter
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		if gen == f.gen {
			f.loading = false
			f.refreshing = false
		}
		f.mu.Unlock()
	}()

	items, meta, err := f.client.FetchNewsStories(ctx, FetchNewsStoriesInput{
		Category: CategoryFilterValue(filter),
		Page:     1,
		PerPage:  f.pageSize,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	if err != nil {
		f.err = errMessage(err, "Unable to load news stories.")
		return
	}
	f.stories = items
	f.page = meta.CurrentPage
	f.lastPage = meta.LastPage
}

// Refresh reloads from scratch with the refreshing indicator and clears any
// active filter. This is the entry point the tab bus triggers.
func (f *FeedController) Refresh(ctx context.Context) {
	f.LoadFirstPage(ctx, "", true)
}

// SetFilter switches the active filter. Category filters (and clearing back
// to no filter) refetch the first page server-side. Tag filters only change
// the visible subset: no fetch, no pagination reset.
func (f *FeedController) SetFilter(ctx context.Context, filter string) {
	if TagFilterValue(filter) != "" {
		f.mu.Lock()
		f.activeFilter = filter
		f.mu.Unlock()
		return
	}
	f.LoadFirstPage(ctx, filter, false)
}

// LoadMore appends the next page. No-op while any load is in flight or the
// cursor is exhausted. Order-preserving, no de-duplication: the server is
// assumed not to repeat items across pages.
func (f *FeedController) LoadMore(ctx context.Context) {
	f.mu.Lock()
	if f.loading || f.refreshing || f.loadingMore || f.page >= f.lastPage {
		f.mu.Unlock()
		return
	}
	gen := f.gen
	nextPage := f.page + 1
	filter := f.activeFilter
	f.loadingMore = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loadingMore = false
		f.mu.Unlock()
	}()

	items, meta, err := f.client.FetchNewsStories(ctx, FetchNewsStoriesInput{
		Category: CategoryFilterValue(filter),
		Page:     nextPage,
		PerPage:  f.pageSize,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	if err != nil {
		f.err = errMessage(err, "Unable to load more stories.")
		return
	}
	f.stories = append(f.stories, items...)
	f.page = meta.CurrentPage
	f.lastPage = meta.LastPage
}

// VisibleStories applies the tag filter, if any, over the loaded stories.
// Matching is case-insensitive with whitespace runs collapsed.
func (f *FeedController) VisibleStories() []NewsStory {
	snap := f.Snapshot()
	tag := TagFilterValue(snap.ActiveFilter)
	if tag == "" {
		return snap.Stories
	}
	want := NormalizeTag(tag)
	visible := make([]NewsStory, 0, len(snap.Stories))
	for _, story := range snap.Stories {
		for _, t := range story.Tags {
			if NormalizeTag(t) == want {
				visible = append(visible, story)
				break
			}
		}
	}
	return visible
}

// FilterChips builds the chip row: All, the fixed tag chips, then category
// chips derived from the loaded stories, de-duplicated by value.
func (f *FeedController) FilterChips() []CategoryLabel {
	snap := f.Snapshot()
	seen := map[string]struct{}{}
	chips := []CategoryLabel{{Label: "All", Value: ""}}

	for _, top := range TopTagFilters {
		if _, ok := seen[top.Value]; ok {
			continue
		}
		seen[top.Value] = struct{}{}
		chips = append(chips, top)
	}

	for _, story := range snap.Stories {
		normalized := NormalizeNewsCategory(story.Category)
		if normalized.Label == "" || normalized.Value == "" {
			continue
		}
		value := categoryFilterPrefix + normalized.Value
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		chips = append(chips, CategoryLabel{Label: normalized.Label, Value: value})
	}
	return chips
}

func errMessage(err error, fallback string) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallback
	}
	return err.Error()
}
