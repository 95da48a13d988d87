package filter

import "sync"

// Panel holds the filter form between open and close. The zero value is a
// closed panel.
type Panel struct {
	mu       sync.Mutex
	open     bool
	criteria Criteria
}

type PanelState struct {
	Open     bool              `json:"open"`
	Criteria Criteria          `json:"criteria"`
	Preview  map[string]string `json:"preview,omitempty"`
}

// Open starts a fresh form. Reopening discards whatever was entered before.
func (p *Panel) Open() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	p.criteria = New()
	return p.stateLocked()
}

func (p *Panel) Set(c Criteria) PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	p.criteria = c
	return p.stateLocked()
}

func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// Apply converts the current form once and closes the panel.
func (p *Panel) Apply() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	params := Build(p.criteria)
	p.closeLocked()
	return params
}

// Clear resets every criterion, closes the panel and returns the empty
// mapping that means "unfiltered".
func (p *Panel) Clear() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.criteria = Cleared()
	return map[string]string{}
}

func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Panel) closeLocked() {
	p.open = false
	p.criteria = Criteria{}
}

func (p *Panel) stateLocked() PanelState {
	st := PanelState{Open: p.open, Criteria: p.criteria}
	if p.open {
		st.Preview = Build(p.criteria)
	}
	return st
}
