// Package nav keeps transient UI state (open modal, active filters, search)
// in sync with the browser history stack, so the hardware back button peels
// one layer of UI state at a time instead of leaving the page.
package nav

import "sync"

// Kind labels what a history entry represents.
type Kind string

const (
	KindMain   Kind = "main"
	KindModal  Kind = "modal"
	KindFilter Kind = "filter"
	KindSearch Kind = "search"
)

// FilterKind distinguishes the filter entries pushed on activation.
type FilterKind string

const (
	FilterCategory   FilterKind = "category"
	FilterImportance FilterKind = "importance"
	FilterBookmark   FilterKind = "bookmark"
)

// Entry is the state object pushed onto the history stack.
type Entry struct {
	Kind    Kind       `json:"kind"`
	Filter  FilterKind `json:"filter,omitempty"`
	TopicID int        `json:"topicId,omitempty"`
}

// History is the browser history surface the machine drives. On wasm it is
// window.history; tests supply a recording stub.
type History interface {
	Push(Entry)
	ReplaceBaseline(Entry)
}

// Effect tells the view which single layer a back event removed.
type Effect int

const (
	EffectNone Effect = iota
	EffectClosedModal
	EffectClearedSearch
	EffectClearedCategory
	EffectClearedImportance
	EffectClearedBookmarkOnly
)

// Machine mirrors the layered UI state. Opening a layer pushes a history
// entry; Pop removes exactly one layer per back event, in fixed precedence:
// modal first, then search, then category, importance, bookmark-only.
type Machine struct {
	mu sync.Mutex

	hist History

	modalTopic   *int
	search       string
	categoryID   *int
	importance   *int
	bookmarkOnly bool

	baselined bool
}

func NewMachine(hist History) *Machine {
	return &Machine{hist: hist}
}

// EnsureBaseline replaces the current history entry with the main-state
// marker so the first in-app back event has something beneath it. Safe to
// call more than once.
func (m *Machine) EnsureBaseline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.baselined {
		return
	}
	m.baselined = true
	m.hist.ReplaceBaseline(Entry{Kind: KindMain})
}

// OpenModal shows the detail modal for a topic, pushing a history entry.
// Opening while another modal is up just retargets it; no second push.
func (m *Machine) OpenModal(topicID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	already := m.modalTopic != nil
	id := topicID
	m.modalTopic = &id
	if !already {
		m.hist.Push(Entry{Kind: KindModal, TopicID: topicID})
	}
}

// CloseModal dismisses the modal from the UI (close button, backdrop click).
// The stale history entry above the baseline is tolerated; the next back
// event lands on a state the machine reconciles against.
func (m *Machine) CloseModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modalTopic = nil
}

// ModalTopic reports the topic shown in the modal, if open.
func (m *Machine) ModalTopic() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modalTopic == nil {
		return 0, false
	}
	return *m.modalTopic, true
}

// SetSearch records the query. Transitioning from empty to non-empty pushes
// a history entry; edits while already searching reuse the existing layer,
// and clearing the box removes the layer state without touching history.
func (m *Machine) SetSearch(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasActive := m.search != ""
	m.search = query
	if query != "" && !wasActive {
		m.hist.Push(Entry{Kind: KindSearch})
	}
}

func (m *Machine) Search() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.search
}

// SetCategory selects a category filter. Activation pushes; switching
// between categories reuses the layer; passing nil deselects.
func (m *Machine) SetCategory(id *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasActive := m.categoryID != nil
	m.categoryID = id
	if id != nil && !wasActive {
		m.hist.Push(Entry{Kind: KindFilter, Filter: FilterCategory})
	}
}

func (m *Machine) Category() *int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoryID
}

// SetImportance selects the importance-level filter.
func (m *Machine) SetImportance(level *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasActive := m.importance != nil
	m.importance = level
	if level != nil && !wasActive {
		m.hist.Push(Entry{Kind: KindFilter, Filter: FilterImportance})
	}
}

func (m *Machine) Importance() *int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importance
}

// SetBookmarkOnly toggles the bookmarked-only projection.
func (m *Machine) SetBookmarkOnly(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasActive := m.bookmarkOnly
	m.bookmarkOnly = on
	if on && !wasActive {
		m.hist.Push(Entry{Kind: KindFilter, Filter: FilterBookmark})
	}
}

func (m *Machine) BookmarkOnly() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookmarkOnly
}

// Pop handles one popstate event: it clears exactly one active layer,
// highest precedence first, and reports what it cleared. With nothing
// active it returns EffectNone, meaning the browser should leave the page.
func (m *Machine) Pop() Effect {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.modalTopic != nil:
		m.modalTopic = nil
		return EffectClosedModal
	case m.search != "":
		m.search = ""
		return EffectClearedSearch
	case m.categoryID != nil:
		m.categoryID = nil
		return EffectClearedCategory
	case m.importance != nil:
		m.importance = nil
		return EffectClearedImportance
	case m.bookmarkOnly:
		m.bookmarkOnly = false
		return EffectClearedBookmarkOnly
	}
	return EffectNone
}
