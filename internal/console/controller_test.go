package console

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadconsole/internal/domain"
	"leadconsole/internal/leadsapi"
)

type listCall struct{ page, limit int }

type fakeAPI struct {
	mu sync.Mutex

	listCalls   []listCall
	searchCalls []string
	queryCalls  []map[string]string
	created     []domain.LeadInput
	deleted     []string

	list   func(page, limit int) (domain.LeadPage, error)
	search func(q string) ([]domain.Lead, error)
	query  func(p map[string]string) ([]domain.Lead, error)
	create func(in domain.LeadInput) error
	del    func(id string) error
}

func pageOf(page, total, totalPages int, ids ...string) domain.LeadPage {
	leads := make([]domain.Lead, 0, len(ids))
	for _, id := range ids {
		leads = append(leads, domain.Lead{ID: id})
	}
	return domain.LeadPage{Leads: leads, Page: page, Total: total, TotalPages: totalPages}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		list: func(page, limit int) (domain.LeadPage, error) {
			return pageOf(page, 100, 5, "p"), nil
		},
		search: func(string) ([]domain.Lead, error) { return []domain.Lead{{ID: "s1"}, {ID: "s2"}}, nil },
		query:  func(map[string]string) ([]domain.Lead, error) { return []domain.Lead{{ID: "f1"}}, nil },
		create: func(domain.LeadInput) error { return nil },
		del:    func(string) error { return nil },
	}
}

func (f *fakeAPI) ListLeads(_ context.Context, page, limit int) (domain.LeadPage, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, listCall{page, limit})
	fn := f.list
	f.mu.Unlock()
	return fn(page, limit)
}

func (f *fakeAPI) SearchLeads(_ context.Context, q string) ([]domain.Lead, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, q)
	f.mu.Unlock()
	return f.search(q)
}

func (f *fakeAPI) QueryLeads(_ context.Context, p map[string]string) ([]domain.Lead, error) {
	f.mu.Lock()
	f.queryCalls = append(f.queryCalls, p)
	f.mu.Unlock()
	return f.query(p)
}

func (f *fakeAPI) CreateLead(_ context.Context, in domain.LeadInput) error {
	f.mu.Lock()
	f.created = append(f.created, in)
	f.mu.Unlock()
	return f.create(in)
}

func (f *fakeAPI) DeleteLead(_ context.Context, id string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return f.del(id)
}

func (f *fakeAPI) lists() []listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]listCall(nil), f.listCalls...)
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *toastRecorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *toastRecorder) all() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

func newController(api *fakeAPI, toasts *toastRecorder) *Controller {
	return New(Options{API: api, Notifier: toasts})
}

func htmlError(status int, body string) error {
	return &leadsapi.Error{Op: "test", StatusCode: status, ContentType: "text/html", Body: []byte(body)}
}

func TestFetchPageZeroMeansFirstPage(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})

	_, err := c.FetchPage(context.Background(), 0)
	require.NoError(t, err)
	_, err = c.FetchPage(context.Background(), -3)
	require.NoError(t, err)

	assert.Equal(t, []listCall{{1, 20}, {1, 20}}, api.lists())
}

func TestFetchPageServerIsAuthoritative(t *testing.T) {
	api := newFakeAPI()
	api.list = func(page, limit int) (domain.LeadPage, error) {
		return pageOf(2, 30, 2, "a", "b"), nil
	}
	c := newController(api, &toastRecorder{})

	snap, err := c.FetchPage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, 30, snap.Total)
	assert.Equal(t, 2, snap.TotalPages)
	assert.True(t, snap.ShowFooter)
	assert.Equal(t, ModePage, snap.Mode)
	assert.True(t, snap.CanPrev)
	assert.False(t, snap.CanNext)
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Leads, 2)
}

func TestFetchPageMissingTotalsDefaultToOnePage(t *testing.T) {
	api := newFakeAPI()
	api.list = func(page, limit int) (domain.LeadPage, error) { return domain.LeadPage{}, nil }
	c := newController(api, &toastRecorder{})

	snap, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalPages)
	assert.Equal(t, 1, snap.Page)
	assert.NotNil(t, snap.Leads)
}

func TestFetchFailureLeavesStateUntouched(t *testing.T) {
	api := newFakeAPI()
	toasts := &toastRecorder{}
	c := newController(api, toasts)

	before, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	api.list = func(page, limit int) (domain.LeadPage, error) {
		return domain.LeadPage{}, htmlError(http.StatusInternalServerError, "<pre>Cannot find lead<br>at handler.js:12</pre>")
	}
	after, err := c.FetchPage(context.Background(), 3)
	require.Error(t, err)

	assert.Equal(t, before, after)
	assert.False(t, after.Loading)
	require.Len(t, toasts.all(), 1)
	assert.Equal(t, Toast{Level: LevelError, Message: "Cannot find lead"}, toasts.all()[0])
}

func TestLoadingIsRaisedDuringFetch(t *testing.T) {
	var seen []Snapshot
	var mu sync.Mutex
	c := New(Options{API: newFakeAPI(), OnChange: func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}})

	_, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[len(seen)-1].Loading)
}

func TestSearchHidesFooterAndKeepsTotals(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})
	_, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	snap, err := c.Search(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, api.searchCalls)
	assert.Equal(t, ModeSearch, snap.Mode)
	assert.False(t, snap.ShowFooter)
	assert.False(t, snap.CanNext)
	assert.Equal(t, "acme", snap.SearchText)
	assert.Equal(t, 100, snap.Total)
	assert.Equal(t, 5, snap.TotalPages)
	assert.Len(t, snap.Leads, 2)
}

func TestSearchFailureKeepsFooter(t *testing.T) {
	api := newFakeAPI()
	toasts := &toastRecorder{}
	c := newController(api, toasts)
	_, _ = c.FetchPage(context.Background(), 1)

	api.search = func(string) ([]domain.Lead, error) {
		return nil, &leadsapi.Error{StatusCode: 400, Body: []byte(`{"message":"Query too short"}`)}
	}
	snap, err := c.Search(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, snap.ShowFooter)
	assert.Equal(t, ModePage, snap.Mode)
	assert.Equal(t, "Query too short", toasts.all()[0].Message)
}

func TestApplyFilterEmptyMeansUnfiltered(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})

	snap, err := c.ApplyFilter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, api.queryCalls, 1)
	assert.Empty(t, api.queryCalls[0])
	assert.NotNil(t, api.queryCalls[0])
	assert.Equal(t, ModeFilter, snap.Mode)
	assert.False(t, snap.ShowFooter)
	assert.Equal(t, "f1", snap.Leads[0].ID)
}

func TestChangePageSizeFetchesOncePerChange(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})

	_, err := c.ChangePageSize(context.Background(), 50)
	require.NoError(t, err)
	_, err = c.ChangePageSize(context.Background(), 50)
	require.NoError(t, err)

	assert.Equal(t, []listCall{{1, 50}}, api.lists())
	assert.Equal(t, 50, c.Snapshot().PageSize)
	assert.True(t, c.Snapshot().ShowFooter)

	_, err = c.ChangePageSize(context.Background(), 30)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	assert.Len(t, api.lists(), 1)
}

func TestChangePageSizeRestoresFooterAfterSearch(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})
	_, _ = c.Search(context.Background(), "x")
	require.False(t, c.Snapshot().ShowFooter)

	snap, err := c.ChangePageSize(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, snap.ShowFooter)
	assert.Equal(t, ModePage, snap.Mode)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	release := make(chan struct{})
	started := make(chan struct{})
	api.list = func(page, limit int) (domain.LeadPage, error) {
		if page == 1 {
			close(started)
			<-release
			return pageOf(1, 100, 5, "old"), nil
		}
		return pageOf(page, 100, 5, "new"), nil
	}
	c := newController(api, &toastRecorder{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.FetchPage(context.Background(), 1)
	}()
	<-started

	snap, err := c.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Page)
	assert.True(t, snap.Loading)

	close(release)
	<-done

	final := c.Snapshot()
	assert.Equal(t, 2, final.Page)
	assert.Equal(t, "new", final.Leads[0].ID)
	assert.False(t, final.Loading)
}

func TestNavigationBounds(t *testing.T) {
	api := newFakeAPI()
	api.list = func(page, limit int) (domain.LeadPage, error) { return pageOf(page, 40, 2, "x"), nil }
	c := newController(api, &toastRecorder{})

	_, err := c.Prev(context.Background())
	assert.ErrorIs(t, err, ErrNavDisabled)

	_, err = c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.Prev(context.Background())
	assert.ErrorIs(t, err, ErrNavDisabled)

	snap, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Page)

	_, err = c.Next(context.Background())
	assert.ErrorIs(t, err, ErrNavDisabled)

	snap, err = c.Prev(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Page)

	assert.Equal(t, []listCall{{1, 20}, {2, 20}, {1, 20}}, api.lists())
}

func TestNavigationDeduplicatesRapidClicks(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})
	_, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	api.mu.Lock()
	api.list = func(page, limit int) (domain.LeadPage, error) {
		started <- struct{}{}
		<-release
		return pageOf(page, 100, 5, "n"), nil
	}
	api.mu.Unlock()

	var wg sync.WaitGroup
	results := make([]Snapshot, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Next(context.Background())
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = c.Next(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []listCall{{1, 20}, {2, 20}}, api.lists())
	assert.Equal(t, 2, results[0].Page)
	assert.Equal(t, 2, results[1].Page)
}

func TestSearchTextCleanDoesNotFetch(t *testing.T) {
	api := newFakeAPI()
	c := newController(api, &toastRecorder{})

	assert.Equal(t, "acme", c.SetSearchText("acme").SearchText)
	assert.Empty(t, c.CleanSearch().SearchText)
	assert.Empty(t, api.lists())
}

type memCache struct {
	pages map[int]domain.LeadPage
}

func (m *memCache) SavePage(_ context.Context, size int, p domain.LeadPage) error {
	if p.Page == 1 {
		m.pages[size] = p
	}
	return nil
}

func (m *memCache) LoadPage(_ context.Context, size, page int) (domain.LeadPage, bool, error) {
	p, ok := m.pages[size]
	return p, ok, nil
}

func TestRestoreFromCache(t *testing.T) {
	cache := &memCache{pages: map[int]domain.LeadPage{}}
	api := newFakeAPI()

	first := New(Options{API: api, Cache: cache})
	_, err := first.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	second := New(Options{API: api, Cache: cache})
	require.True(t, second.Restore(context.Background()))
	assert.Equal(t, 100, second.Snapshot().Total)
	assert.Equal(t, "p", second.Snapshot().Leads[0].ID)

	second.Reset()
	assert.Empty(t, second.Snapshot().Leads)
	assert.False(t, second.Restore(context.Background()))
}

func TestObserversEndOnLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	releaseList := make(chan struct{})
	api.list = func(page, limit int) (domain.LeadPage, error) {
		<-releaseList
		return pageOf(1, 100, 5), nil
	}
	releaseSearch := make(chan struct{})
	api.search = func(string) ([]domain.Lead, error) {
		<-releaseSearch
		return []domain.Lead{{ID: "acme"}}, nil
	}

	// Hold the end-of-fetch publish of the older page request until the
	// newer search has committed.
	var searching, held atomic.Bool
	entered := make(chan struct{})
	hold := make(chan struct{})
	var mu sync.Mutex
	var last Snapshot
	c := New(Options{API: api, OnChange: func(s Snapshot) {
		if searching.Load() && s.Mode == ModePage && !s.Loading && held.CompareAndSwap(false, true) {
			close(entered)
			<-hold
		}
		mu.Lock()
		last = s
		mu.Unlock()
	}})

	fetchDone := make(chan struct{})
	go func() {
		defer close(fetchDone)
		_, _ = c.FetchPage(ctx, 1)
	}()
	require.Eventually(t, func() bool { return c.Snapshot().Loading }, time.Second, time.Millisecond)

	searching.Store(true)
	searchDone := make(chan struct{})
	go func() {
		defer close(searchDone)
		_, _ = c.Search(ctx, "acme")
	}()
	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.searchCalls) == 1
	}, time.Second, time.Millisecond)

	close(releaseList)
	<-entered
	close(releaseSearch)
	require.Eventually(t, func() bool { return c.Snapshot().Mode == ModeSearch }, time.Second, time.Millisecond)
	close(hold)
	<-fetchDone
	<-searchDone

	want := c.Snapshot()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, ModeSearch, last.Mode)
	assert.Len(t, last.Leads, 1)
	assert.Equal(t, want.Version, last.Version)
}

func TestPublishedVersionsIncrease(t *testing.T) {
	var versions []uint64
	c := New(Options{API: newFakeAPI(), OnChange: func(s Snapshot) { versions = append(versions, s.Version) }})

	_, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	c.SetSearchText("ada")

	require.NotEmpty(t, versions)
	for i := 1; i < len(versions); i++ {
		assert.Greater(t, versions[i], versions[i-1])
	}
	assert.Equal(t, versions[len(versions)-1], c.Snapshot().Version)
}

func TestRecordsMatchPageSizeUnderConcurrentResize(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.list = func(page, limit int) (domain.LeadPage, error) {
		return pageOf(1, 100, 5, strconv.Itoa(limit)), nil
	}
	c := newController(api, &toastRecorder{})

	for i := 0; i < 200; i++ {
		size := PageSizes[i%2+1]

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.FetchPage(ctx, 1)
		}()
		go func() {
			defer wg.Done()
			_, _ = c.ChangePageSize(ctx, size)
		}()
		wg.Wait()

		snap := c.Snapshot()
		require.Equal(t, size, snap.PageSize)
		require.Len(t, snap.Leads, 1)
		require.Equal(t, strconv.Itoa(size), snap.Leads[0].ID, "iteration %d", i)
	}
}
