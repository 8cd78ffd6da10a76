// Package listing holds the state of a paginated, server-backed list: the
// loaded items, the pagination cursor, loading flags, the last error, the
// server-side filter and a client-side search term.
package listing

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
)

// PageInfo is the pagination block returned by list endpoints.
type PageInfo struct {
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// UnmarshalJSON reads has_more, falling back to hasMore when it is absent.
func (p *PageInfo) UnmarshalJSON(b []byte) error {
	var raw struct {
		Skip      int   `json:"skip"`
		Limit     int   `json:"limit"`
		Total     int   `json:"total"`
		HasMore   *bool `json:"has_more"`
		HasMoreJS *bool `json:"hasMore"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = PageInfo{Skip: raw.Skip, Limit: raw.Limit, Total: raw.Total}
	switch {
	case raw.HasMore != nil:
		p.HasMore = *raw.HasMore
	case raw.HasMoreJS != nil:
		p.HasMore = *raw.HasMoreJS
	}
	return nil
}

type Page[T any] struct {
	Items      []T
	Pagination *PageInfo
}

type Request struct {
	Skip   int
	Limit  int
	Params url.Values
}

type Fetcher[T any] func(ctx context.Context, req Request) (*Page[T], error)

// Matcher reports whether item matches a non-blank search term.
type Matcher[T any] func(item T, term string) bool

type Options[T any] struct {
	PageSize int
	Match    Matcher[T]
	Params   url.Values
	// RefreshOnClear reloads the first page when the search term is cleared.
	RefreshOnClear bool
}

type Cursor struct {
	Skip    int
	Limit   int
	Total   int
	HasMore bool
}

type State[T any] struct {
	Items          []T
	Cursor         Cursor
	InitialLoading bool
	LoadingMore    bool
	Err            error
	Params         url.Values
	Search         string
}

type List[T any] struct {
	fetch          Fetcher[T]
	match          Matcher[T]
	refreshOnClear bool

	mu             sync.Mutex
	items          []T
	cursor         Cursor
	initialLoading bool
	loadingMore    bool
	err            error
	params         url.Values
	search         string
	// generation is bumped by every replacing load; results of older loads are dropped.
	generation uint64
}

func New[T any](fetch Fetcher[T], opts Options[T]) *List[T] {
	size := opts.PageSize
	if size <= 0 {
		size = 10
	}
	return &List[T]{
		fetch:          fetch,
		match:          opts.Match,
		refreshOnClear: opts.RefreshOnClear,
		cursor:         Cursor{Skip: 0, Limit: size, Total: 0, HasMore: true},
		params:         cloneValues(opts.Params),
	}
}

// Load fetches one page. A replacing load (appendItems false) records its
// failure in the list error and keeps the items; a failed append only
// returns the error.
func (l *List[T]) Load(ctx context.Context, skip, limit int, appendItems bool) error {
	l.mu.Lock()
	gen, params := l.begin(appendItems)
	l.mu.Unlock()
	return l.run(ctx, Request{Skip: skip, Limit: limit, Params: params}, appendItems, gen)
}

// must hold l.mu
func (l *List[T]) begin(appendItems bool) (uint64, url.Values) {
	if appendItems {
		l.loadingMore = true
	} else {
		l.initialLoading = true
		l.generation++
	}
	return l.generation, cloneValues(l.params)
}

func (l *List[T]) run(ctx context.Context, req Request, appendItems bool, gen uint64) error {
	page, err := l.fetch(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		// A newer replacing load owns the state now.
		if appendItems {
			l.loadingMore = false
		}
		return nil
	}
	if appendItems {
		l.loadingMore = false
	} else {
		l.initialLoading = false
	}

	if err != nil {
		if !appendItems {
			l.err = err
		}
		return err
	}
	if page == nil {
		page = &Page[T]{}
	}

	if appendItems {
		l.items = append(l.items, page.Items...)
	} else {
		l.err = nil
		l.items = append([]T(nil), page.Items...)
	}
	l.cursor = cursorFrom(page.Pagination, req)
	return nil
}

func cursorFrom(p *PageInfo, req Request) Cursor {
	c := Cursor{Skip: req.Skip, Limit: req.Limit}
	if p == nil {
		return c
	}
	if p.Skip != 0 {
		c.Skip = p.Skip
	}
	if p.Limit != 0 {
		c.Limit = p.Limit
	}
	c.Total = p.Total
	c.HasMore = p.HasMore
	return c
}

// Refresh reloads the first page. It is the initial load and the retry.
func (l *List[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	limit := l.cursor.Limit
	l.mu.Unlock()
	return l.Load(ctx, 0, limit, false)
}

// LoadMore appends the next page. It reports false without fetching while any
// load is in flight, while a search term is active, or when the server has no
// more items.
func (l *List[T]) LoadMore(ctx context.Context) (bool, error) {
	l.mu.Lock()
	if !l.canLoadMore() {
		l.mu.Unlock()
		return false, nil
	}
	req := Request{Skip: l.cursor.Skip + l.cursor.Limit, Limit: l.cursor.Limit}
	gen, params := l.begin(true)
	req.Params = params
	l.mu.Unlock()

	if err := l.run(ctx, req, true, gen); err != nil {
		return true, err
	}
	return true, nil
}

// LoadPages keeps calling LoadMore until pages pages are held in total (the
// first one included) or the server runs out. pages <= 0 means every page.
func (l *List[T]) LoadPages(ctx context.Context, pages int) error {
	for loaded := 1; pages <= 0 || loaded < pages; loaded++ {
		before := l.Len()
		ok, err := l.LoadMore(ctx)
		if err != nil {
			return err
		}
		if !ok || l.Len() == before {
			return nil
		}
	}
	return nil
}

// SetParams replaces the server-side filter and reloads from the first page.
func (l *List[T]) SetParams(ctx context.Context, params url.Values) error {
	l.mu.Lock()
	l.params = cloneValues(params)
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// SetSearch changes the client-side search term. It never fetches, except
// that clearing a term reloads the first page when RefreshOnClear is set.
func (l *List[T]) SetSearch(ctx context.Context, term string) error {
	l.mu.Lock()
	wasActive := l.searchActive()
	l.search = term
	cleared := wasActive && !l.searchActive()
	l.mu.Unlock()

	if cleared && l.refreshOnClear {
		return l.Refresh(ctx)
	}
	return nil
}

// Visible is the loaded items narrowed by the search term.
func (l *List[T]) Visible() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.searchActive() || l.match == nil {
		return append([]T(nil), l.items...)
	}
	term := strings.TrimSpace(l.search)
	out := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if l.match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

// Prepend inserts a newly created item at the head and counts it.
func (l *List[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
	l.cursor.Total++
}

// Remove drops every item matching pred and returns how many were removed.
// Total never goes below zero.
func (l *List[T]) Remove(pred func(T) bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0:0]
	removed := 0
	for _, item := range l.items {
		if pred(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	l.items = kept
	l.cursor.Total = max(l.cursor.Total-removed, 0)
	return removed
}

func (l *List[T]) Snapshot() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State[T]{
		Items:          append([]T(nil), l.items...),
		Cursor:         l.cursor,
		InitialLoading: l.initialLoading,
		LoadingMore:    l.loadingMore,
		Err:            l.err,
		Params:         cloneValues(l.params),
		Search:         l.search,
	}
}

func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List[T]) Cursor() Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

func (l *List[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Remaining is how many server items are not loaded yet.
func (l *List[T]) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return max(l.cursor.Total-len(l.items), 0)
}

func (l *List[T]) CanLoadMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canLoadMore()
}

// must hold l.mu
func (l *List[T]) canLoadMore() bool {
	if l.searchActive() {
		return false
	}
	return !l.initialLoading && !l.loadingMore && l.cursor.HasMore
}

// must hold l.mu
func (l *List[T]) searchActive() bool {
	return strings.TrimSpace(l.search) != ""
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
