package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer serves total items named item-0..item-(total-1).
type fakeServer struct {
	mu       sync.Mutex
	total    int
	requests []Request
	fail     error
	// gate, when set, blocks each fetch until a value is received.
	gate chan struct{}
}

func (s *fakeServer) fetch(ctx context.Context, req Request) (*Page[string], error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	gate, fail := s.gate, s.fail
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail != nil {
		return nil, fail
	}
	var items []string
	for i := req.Skip; i < req.Skip+req.Limit && i < s.total; i++ {
		items = append(items, fmt.Sprintf("item-%d", i))
	}
	return &Page[string]{
		Items: items,
		Pagination: &PageInfo{
			Skip:    req.Skip,
			Limit:   req.Limit,
			Total:   s.total,
			HasMore: req.Skip+req.Limit < s.total,
		},
	}, nil
}

func (s *fakeServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *fakeServer) lastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

func containsMatch(item, term string) bool {
	return strings.Contains(item, term)
}

func TestLoadMore_AdvancesCursor(t *testing.T) {
	srv := &fakeServer{total: 25}
	l := New(srv.fetch, Options[string]{PageSize: 10})
	ctx := context.Background()

	require.NoError(t, l.Refresh(ctx))
	assert.Equal(t, Request{Skip: 0, Limit: 10}, srv.lastRequest())
	assert.Equal(t, Cursor{Skip: 0, Limit: 10, Total: 25, HasMore: true}, l.Cursor())
	first := l.Items()
	require.Len(t, first, 10)

	ok, err := l.LoadMore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, srv.lastRequest().Skip)
	assert.Equal(t, 10, srv.lastRequest().Limit)

	items := l.Items()
	require.Len(t, items, 20)
	assert.Equal(t, first, items[:10])
	assert.Equal(t, "item-10", items[10])
	assert.True(t, l.Cursor().HasMore)
	assert.Equal(t, 5, l.Remaining())
}

func TestLoadMore_NoRequestWhenExhausted(t *testing.T) {
	srv := &fakeServer{total: 4}
	l := New(srv.fetch, Options[string]{PageSize: 10})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))
	before := l.Snapshot()
	require.False(t, before.Cursor.HasMore)

	ok, err := l.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, srv.requestCount())
	assert.Equal(t, before, l.Snapshot())
}

func TestLoadMore_SingleRequestInFlight(t *testing.T) {
	srv := &fakeServer{total: 30}
	l := New(srv.fetch, Options[string]{PageSize: 10})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))

	srv.mu.Lock()
	srv.gate = make(chan struct{})
	srv.mu.Unlock()

	done := make(chan error)
	go func() {
		_, err := l.LoadMore(ctx)
		done <- err
	}()
	require.Eventually(t, func() bool { return srv.requestCount() == 2 }, timeout, tick)

	ok, err := l.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, l.Snapshot().LoadingMore)

	srv.gate <- struct{}{}
	require.NoError(t, <-done)
	assert.Equal(t, 2, srv.requestCount())
	assert.Len(t, l.Items(), 20)
	assert.False(t, l.Snapshot().LoadingMore)
}

func TestLoad_FallsBackToRequestPagination(t *testing.T) {
	fetch := func(ctx context.Context, req Request) (*Page[string], error) {
		return &Page[string]{Items: []string{"a", "b"}, Pagination: &PageInfo{}}, nil
	}
	l := New(fetch, Options[string]{PageSize: 5})
	require.NoError(t, l.Load(context.Background(), 15, 5, false))
	assert.Equal(t, Cursor{Skip: 15, Limit: 5, Total: 0, HasMore: false}, l.Cursor())

	fetchBare := func(ctx context.Context, req Request) (*Page[string], error) {
		return &Page[string]{Items: []string{"a"}}, nil
	}
	l = New(fetchBare, Options[string]{PageSize: 5})
	require.NoError(t, l.Refresh(context.Background()))
	assert.Equal(t, Cursor{Skip: 0, Limit: 5}, l.Cursor())
}

func TestLoad_FailureHandling(t *testing.T) {
	srv := &fakeServer{total: 25}
	l := New(srv.fetch, Options[string]{PageSize: 10})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))

	boom := errors.New("boom")
	srv.fail = boom

	_, err := l.LoadMore(ctx)
	require.ErrorIs(t, err, boom)
	assert.NoError(t, l.Err())
	assert.Len(t, l.Items(), 10)
	assert.False(t, l.Snapshot().LoadingMore)

	err = l.Refresh(ctx)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, l.Err(), boom)
	assert.Len(t, l.Items(), 10)
	assert.False(t, l.Snapshot().InitialLoading)

	srv.fail = nil
	require.NoError(t, l.Refresh(ctx))
	assert.NoError(t, l.Err())
}

func TestSearch_FiltersLoadedItemsOnly(t *testing.T) {
	srv := &fakeServer{total: 25}
	l := New(srv.fetch, Options[string]{PageSize: 10, Match: containsMatch, RefreshOnClear: true})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))
	require.NoError(t, l.SetSearch(ctx, "item-1"))

	assert.Equal(t, []string{"item-1"}, l.Visible())
	assert.Equal(t, 1, srv.requestCount())
	assert.False(t, l.CanLoadMore())

	ok, err := l.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, srv.requestCount())

	require.NoError(t, l.SetSearch(ctx, "  "))
	assert.Equal(t, 2, srv.requestCount())
	assert.Equal(t, Request{Skip: 0, Limit: 10}, srv.lastRequest())
	assert.Len(t, l.Visible(), 10)
}

func TestSearch_ClearWithoutRefresh(t *testing.T) {
	srv := &fakeServer{total: 5}
	l := New(srv.fetch, Options[string]{PageSize: 10, Match: containsMatch})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))
	require.NoError(t, l.SetSearch(ctx, "item"))
	require.NoError(t, l.SetSearch(ctx, ""))
	assert.Equal(t, 1, srv.requestCount())
}

func TestSetParams_ReloadsFromFirstPage(t *testing.T) {
	srv := &fakeServer{total: 25}
	l := New(srv.fetch, Options[string]{PageSize: 15})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))
	_, err := l.LoadMore(ctx)
	require.NoError(t, err)

	params := url.Values{"employee_id": {"EMP001"}}
	require.NoError(t, l.SetParams(ctx, params))
	params.Set("employee_id", "mutated")

	last := srv.lastRequest()
	assert.Equal(t, 0, last.Skip)
	assert.Equal(t, "EMP001", last.Params.Get("employee_id"))
	assert.Len(t, l.Items(), 15)

	_, err = l.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", srv.lastRequest().Params.Get("employee_id"))
}

func TestPrependAndRemove(t *testing.T) {
	srv := &fakeServer{total: 2}
	l := New(srv.fetch, Options[string]{PageSize: 10})
	require.NoError(t, l.Refresh(context.Background()))

	l.Prepend("new")
	assert.Equal(t, []string{"new", "item-0", "item-1"}, l.Items())
	assert.Equal(t, 3, l.Cursor().Total)

	removed := l.Remove(func(s string) bool { return strings.HasPrefix(s, "item-") })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"new"}, l.Items())
	assert.Equal(t, 1, l.Cursor().Total)

	l.Remove(func(string) bool { return true })
	l.Remove(func(string) bool { return true })
	assert.Equal(t, 0, l.Cursor().Total)
}

func TestRemove_TotalFloorsAtZero(t *testing.T) {
	fetch := func(ctx context.Context, req Request) (*Page[string], error) {
		return &Page[string]{Items: []string{"a", "b"}, Pagination: &PageInfo{Total: 1}}, nil
	}
	l := New(fetch, Options[string]{})
	require.NoError(t, l.Refresh(context.Background()))
	assert.Equal(t, 2, l.Remove(func(string) bool { return true }))
	assert.Equal(t, 0, l.Cursor().Total)
	assert.Equal(t, 0, l.Remaining())
}

func TestLoadPages(t *testing.T) {
	srv := &fakeServer{total: 35}
	l := New(srv.fetch, Options[string]{PageSize: 10})
	ctx := context.Background()
	require.NoError(t, l.Refresh(ctx))
	require.NoError(t, l.LoadPages(ctx, 2))
	assert.Len(t, l.Items(), 20)

	require.NoError(t, l.LoadPages(ctx, 0))
	assert.Len(t, l.Items(), 35)
	assert.False(t, l.Cursor().HasMore)
}

func TestRefresh_StaleResultDropped(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	fetch := func(ctx context.Context, req Request) (*Page[string], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-release
			return &Page[string]{Items: []string{"stale"}}, nil
		}
		return &Page[string]{Items: []string{"fresh"}}, nil
	}
	l := New(fetch, Options[string]{})
	ctx := context.Background()

	done := make(chan error)
	go func() { done <- l.Refresh(ctx) }()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, timeout, tick)

	require.NoError(t, l.SetParams(ctx, url.Values{"date": {"2024-01-15"}}))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"fresh"}, l.Items())
	assert.False(t, l.Snapshot().InitialLoading)
}

func TestPageInfo_HasMoreSpellings(t *testing.T) {
	cases := map[string]bool{
		`{"skip":0,"limit":10,"total":20,"has_more":true}`:                  true,
		`{"skip":0,"limit":10,"total":20,"hasMore":true}`:                   true,
		`{"skip":10,"limit":10,"total":20,"has_more":false,"hasMore":true}`: false,
		`{"skip":10,"limit":10,"total":20}`:                                 false,
	}
	for body, want := range cases {
		var p PageInfo
		require.NoError(t, json.Unmarshal([]byte(body), &p), body)
		assert.Equal(t, want, p.HasMore, body)
		assert.Equal(t, 20, p.Total, body)
	}
}
