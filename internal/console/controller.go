// Package console owns the leads list view state. Every change goes through
// a named transition (FetchPage, Search, ApplyFilter, ChangePageSize, ...)
// and observers only ever see Snapshot copies.
//
// All three retrievals write the same slot (the displayed records). Each
// request is tagged with a sequence number and a response is dropped if a
// newer retrieval was issued after it, so a slow page-1 response cannot
// overwrite a faster page-2 one. Requests are never cancelled.
package console

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"leadconsole/internal/domain"
	"leadconsole/internal/errnorm"
)

var (
	ErrInvalidPageSize = errors.New("page size must be one of 20, 50, 100")
	ErrNavDisabled     = errors.New("navigation is not available")
)

// LeadsAPI is the subset of the Leads API the console drives.
type LeadsAPI interface {
	ListLeads(ctx context.Context, page, limit int) (domain.LeadPage, error)
	SearchLeads(ctx context.Context, keyword string) ([]domain.Lead, error)
	QueryLeads(ctx context.Context, params map[string]string) ([]domain.Lead, error)
	CreateLead(ctx context.Context, in domain.LeadInput) error
	DeleteLead(ctx context.Context, id string) error
}

// PageCache keeps the last successful page per page size.
type PageCache interface {
	SavePage(ctx context.Context, pageSize int, p domain.LeadPage) error
	LoadPage(ctx context.Context, pageSize, page int) (domain.LeadPage, bool, error)
}

type Options struct {
	API       LeadsAPI
	Validator *domain.Validator
	Notifier  Notifier
	Cache     PageCache
	Logger    *slog.Logger
	PageSize  int
	// OnChange receives a snapshot after every state transition, in version
	// order. It must not call back into the Controller's transitions.
	OnChange func(Snapshot)
}

type Controller struct {
	api      LeadsAPI
	val      *domain.Validator
	notify   Notifier
	cache    PageCache
	log      *slog.Logger
	onChange func(Snapshot)

	mu       sync.Mutex
	st       state
	issued   uint64
	fetching int
	version  uint64

	pubMu     sync.Mutex
	published uint64

	nav singleflight.Group
}

func New(opts Options) *Controller {
	size := opts.PageSize
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	c := &Controller{
		api:      opts.API,
		val:      opts.Validator,
		notify:   opts.Notifier,
		cache:    opts.Cache,
		log:      opts.Logger,
		onChange: opts.OnChange,
		st: state{
			leads:      []domain.Lead{},
			pageSize:   size,
			showFooter: true,
			mode:       ModePage,
		},
	}
	if c.val == nil {
		c.val = domain.NewValidator()
	}
	if c.notify == nil {
		c.notify = NopNotifier{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := c.st.snapshot(c.fetching > 0)
	snap.Version = c.version
	return snap
}

// changed publishes the state as of now. A snapshot that lost the race to
// a newer one is dropped, so observers always end on the latest state.
func (c *Controller) changed() {
	if c.onChange == nil {
		return
	}
	c.mu.Lock()
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	if snap.Version <= c.published {
		return
	}
	c.published = snap.Version
	c.onChange(snap)
}

// begin tags a new retrieval and returns the page size it runs at. Page
// fetches also raise the loading flag.
func (c *Controller) begin(loading bool) (seq uint64, size int) {
	c.mu.Lock()
	c.issued++
	seq = c.issued
	size = c.st.pageSize
	if loading {
		c.fetching++
	}
	c.mu.Unlock()

	if loading {
		c.changed()
	}
	return seq, size
}

func (c *Controller) endFetch() {
	c.mu.Lock()
	c.fetching--
	c.mu.Unlock()
	c.changed()
}

// commit applies fn only if seq is still the newest retrieval.
func (c *Controller) commit(seq uint64, fn func(*state)) bool {
	c.mu.Lock()
	if seq != c.issued {
		c.mu.Unlock()
		return false
	}
	fn(&c.st)
	c.mu.Unlock()

	c.changed()
	return true
}

func (c *Controller) fail(op string, err error) {
	msg := errnorm.Message(err)
	c.log.Warn(op, slog.String("error", err.Error()), slog.String("message", msg))
	c.notify.Notify(Toast{Level: LevelError, Message: msg})
}

// FetchPage loads page n (n <= 0 means 1) at the current page size. The
// page number reported by the server wins over n.
func (c *Controller) FetchPage(ctx context.Context, n int) (Snapshot, error) {
	if n <= 0 {
		n = 1
	}
	seq, size := c.begin(true)
	err := func() error {
		defer c.endFetch()
		return c.fetch(ctx, seq, n, size)
	}()
	return c.Snapshot(), err
}

func (c *Controller) fetch(ctx context.Context, seq uint64, n, size int) error {
	res, err := c.api.ListLeads(ctx, n, size)
	if err != nil {
		c.fail("leads_fetch_failed", err)
		return err
	}

	res = normalizePage(res, n)
	applied := c.commit(seq, func(s *state) {
		s.leads = res.Leads
		s.total = res.Total
		s.totalPages = res.TotalPages
		s.page = res.Page
		s.showFooter = true
		s.mode = ModePage
	})
	if !applied {
		c.log.Debug("leads_fetch_stale", slog.Int("page", n), slog.Uint64("seq", seq))
		return nil
	}

	if c.cache != nil {
		if err := c.cache.SavePage(ctx, size, res); err != nil {
			c.log.Warn("page_cache_save_failed", slog.String("error", err.Error()))
		}
	}
	return nil
}

func normalizePage(p domain.LeadPage, requested int) domain.LeadPage {
	if p.Leads == nil {
		p.Leads = []domain.Lead{}
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.Page <= 0 {
		p.Page = requested
	}
	return p
}

// Search replaces the records with the full, unpaged match set for keyword.
// Totals are left as they were.
func (c *Controller) Search(ctx context.Context, keyword string) (Snapshot, error) {
	seq, _ := c.begin(false)

	leads, err := c.api.SearchLeads(ctx, keyword)
	if err != nil {
		c.fail("leads_search_failed", err)
		return c.Snapshot(), err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	if !c.commit(seq, func(s *state) {
		s.leads = leads
		s.searchText = keyword
		s.showFooter = false
		s.mode = ModeSearch
	}) {
		c.log.Debug("leads_search_stale", slog.Uint64("seq", seq))
	}
	return c.Snapshot(), nil
}

// ApplyFilter replaces the records with the structured query result. An
// empty params map means "unfiltered".
func (c *Controller) ApplyFilter(ctx context.Context, params map[string]string) (Snapshot, error) {
	if params == nil {
		params = map[string]string{}
	}
	seq, _ := c.begin(false)

	leads, err := c.api.QueryLeads(ctx, params)
	if err != nil {
		c.fail("leads_filter_failed", err)
		return c.Snapshot(), err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	if !c.commit(seq, func(s *state) {
		s.leads = leads
		s.showFooter = false
		s.mode = ModeFilter
	}) {
		c.log.Debug("leads_filter_stale", slog.Uint64("seq", seq))
	}
	return c.Snapshot(), nil
}

// ChangePageSize switches the page size and reloads page 1. Setting the
// size it already has does nothing.
func (c *Controller) ChangePageSize(ctx context.Context, size int) (Snapshot, error) {
	if !ValidPageSize(size) {
		return c.Snapshot(), ErrInvalidPageSize
	}

	c.mu.Lock()
	if c.st.pageSize == size {
		c.mu.Unlock()
		return c.Snapshot(), nil
	}
	c.st.pageSize = size
	c.st.showFooter = true
	c.mu.Unlock()
	c.changed()

	return c.FetchPage(ctx, 1)
}

// Refresh reloads page 1 and brings the pagination footer back.
func (c *Controller) Refresh(ctx context.Context) (Snapshot, error) {
	return c.FetchPage(ctx, 1)
}

// Next and Prev share one in-flight request per direction; repeated
// activations while it is outstanding get the same result.
func (c *Controller) Next(ctx context.Context) (Snapshot, error) {
	return c.step(ctx, "next", 1)
}

func (c *Controller) Prev(ctx context.Context) (Snapshot, error) {
	return c.step(ctx, "prev", -1)
}

func (c *Controller) step(ctx context.Context, key string, delta int) (Snapshot, error) {
	v, err, shared := c.nav.Do(key, func() (any, error) {
		snap := c.Snapshot()
		if (delta > 0 && !snap.CanNext) || (delta < 0 && !snap.CanPrev) {
			return snap, ErrNavDisabled
		}
		return c.FetchPage(ctx, snap.Page+delta)
	})
	if shared {
		c.log.Debug("leads_nav_deduplicated", slog.String("action", key))
	}
	return v.(Snapshot), err
}

func (c *Controller) SetSearchText(text string) Snapshot {
	c.mu.Lock()
	c.st.searchText = text
	c.mu.Unlock()
	c.changed()
	return c.Snapshot()
}

// CleanSearch empties the search box without reloading the list.
func (c *Controller) CleanSearch() Snapshot {
	return c.SetSearchText("")
}

// Restore shows the cached first page, if any, until a real retrieval lands.
func (c *Controller) Restore(ctx context.Context) bool {
	if c.cache == nil {
		return false
	}
	c.mu.Lock()
	size := c.st.pageSize
	c.mu.Unlock()

	p, ok, err := c.cache.LoadPage(ctx, size, 1)
	if err != nil {
		c.log.Warn("page_cache_load_failed", slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}

	p = normalizePage(p, 1)
	c.mu.Lock()
	if c.issued != 0 {
		c.mu.Unlock()
		return false
	}
	c.st.leads = p.Leads
	c.st.page = p.Page
	c.st.total = p.Total
	c.st.totalPages = p.TotalPages
	c.st.showFooter = true
	c.st.mode = ModePage
	c.mu.Unlock()
	c.changed()
	return true
}

// Reset drops every displayed record, e.g. after logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.issued++
	size := c.st.pageSize
	c.st = state{leads: []domain.Lead{}, pageSize: size, showFooter: true, mode: ModePage}
	c.mu.Unlock()
	c.changed()
}
