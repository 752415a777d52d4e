// Package notes owns the sticky-note annotations attached to one topic.
//
// Mutations are optimistic: local state changes first and the network call
// follows. The manager keeps a shadow copy of the last server-confirmed
// state per note; a geometry commit is skipped when nothing diverged, and
// any failed mutation triggers a full resync that replaces local state
// wholesale. This is deliberately simpler than per-field rollback.
package notes

import (
	"context"
	"fmt"
	"sync"

	"github.com/bine130/pe-subnote/internal/model"
)

const (
	// MinSize is the hard floor for note width and height.
	MinSize = 150

	// MinOpacity and MaxOpacity bound the opacity slider.
	MinOpacity = 0.1
	MaxOpacity = 1.0

	// DefaultColor is applied to newly created notes.
	DefaultColor = "yellow"

	defaultContent = "New note"
	cascadeBase    = 100
	cascadeStep    = 20
)

// Palette is the fixed set of note colors.
var Palette = []string{"yellow", "pink", "blue", "green"}

// ValidColor reports whether name is in the palette.
func ValidColor(name string) bool {
	for _, c := range Palette {
		if c == name {
			return true
		}
	}
	return false
}

// Service is the slice of the remote API the manager needs.
type Service interface {
	ListNotes(ctx context.Context, topicID int) ([]model.Note, error)
	CreateNote(ctx context.Context, data model.NoteCreate) (model.Note, error)
	UpdateNote(ctx context.Context, id string, data model.NoteUpdate) (model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Manager holds the authoritative in-memory note set for one topic. It is
// safe to call from the UI goroutine and from async completion goroutines.
type Manager struct {
	mu      sync.Mutex
	svc     Service
	topicID int
	notes   []model.Note
	synced  map[string]model.Note
}

func NewManager(svc Service, topicID int) *Manager {
	return &Manager{
		svc:     svc,
		topicID: topicID,
		synced:  make(map[string]model.Note),
	}
}

// Load replaces local state with the server's note set.
func (m *Manager) Load(ctx context.Context) error {
	fetched, err := m.svc.ListNotes(ctx, m.topicID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.replace(fetched)
	m.mu.Unlock()
	return nil
}

// Notes returns a copy of the current local note set.
func (m *Manager) Notes() []model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Note, len(m.notes))
	copy(out, m.notes)
	return out
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notes)
}

// Create asks the server for a new note and appends it once the id is
// assigned. The default position cascades with the note count so new notes
// do not stack exactly on top of each other.
func (m *Manager) Create(ctx context.Context) (model.Note, error) {
	m.mu.Lock()
	offset := float64(cascadeBase + len(m.notes)*cascadeStep)
	m.mu.Unlock()

	created, err := m.svc.CreateNote(ctx, model.NoteCreate{
		TopicID:   m.topicID,
		Content:   defaultContent,
		PositionX: offset,
		PositionY: offset,
		Color:     DefaultColor,
		Opacity:   MaxOpacity,
	})
	if err != nil {
		return model.Note{}, err
	}

	m.mu.Lock()
	m.notes = append(m.notes, created)
	m.synced[created.ID] = created
	m.mu.Unlock()
	return created, nil
}

// Move sets the note's position locally. No network traffic; callers commit
// at the end of the gesture.
func (m *Manager) Move(id string, x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.find(id); n != nil {
		n.PositionX = x
		n.PositionY = y
	}
}

// Resize sets the note's size locally, clamped to the minimum on each axis.
func (m *Manager) Resize(id string, w, h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.find(id); n != nil {
		n.Width = max(w, MinSize)
		n.Height = max(h, MinSize)
	}
}

// EndGesture commits whatever geometry diverged from the last server state.
// A gesture that ended where it started sends nothing.
func (m *Manager) EndGesture(ctx context.Context, id string) error {
	m.mu.Lock()
	n := m.find(id)
	if n == nil {
		m.mu.Unlock()
		return nil
	}
	base, ok := m.synced[id]
	var patch model.NoteUpdate
	if !ok || n.PositionX != base.PositionX || n.PositionY != base.PositionY {
		x, y := n.PositionX, n.PositionY
		patch.PositionX, patch.PositionY = &x, &y
	}
	if !ok || n.Width != base.Width || n.Height != base.Height {
		w, h := n.Width, n.Height
		patch.Width, patch.Height = &w, &h
	}
	m.mu.Unlock()

	if patch.IsZero() {
		return nil
	}
	return m.commit(ctx, id, patch)
}

// Recolor applies a palette color optimistically and persists it at once.
// Colors outside the palette are ignored.
func (m *Manager) Recolor(ctx context.Context, id, color string) error {
	if !ValidColor(color) {
		return nil
	}
	m.mu.Lock()
	n := m.find(id)
	if n == nil {
		m.mu.Unlock()
		return nil
	}
	n.Color = color
	m.mu.Unlock()

	return m.commit(ctx, id, model.NoteUpdate{Color: &color})
}

// SetOpacity applies an opacity optimistically, clamped to [0.1, 1.0].
func (m *Manager) SetOpacity(ctx context.Context, id string, opacity float64) error {
	opacity = min(max(opacity, MinOpacity), MaxOpacity)

	m.mu.Lock()
	n := m.find(id)
	if n == nil {
		m.mu.Unlock()
		return nil
	}
	n.Opacity = opacity
	m.mu.Unlock()

	return m.commit(ctx, id, model.NoteUpdate{Opacity: &opacity})
}

// EditContent persists new text, skipping the call when nothing changed
// since the last server state.
func (m *Manager) EditContent(ctx context.Context, id, text string) error {
	m.mu.Lock()
	n := m.find(id)
	if n == nil {
		m.mu.Unlock()
		return nil
	}
	if base, ok := m.synced[id]; ok && base.Content == text {
		m.mu.Unlock()
		return nil
	}
	n.Content = text
	m.mu.Unlock()

	return m.commit(ctx, id, model.NoteUpdate{Content: &text})
}

// Delete removes the note locally first, then remotely.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	removed := false
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			removed = true
			break
		}
	}
	delete(m.synced, id)
	m.mu.Unlock()
	if !removed {
		return nil
	}

	if err := m.svc.DeleteNote(ctx, id); err != nil {
		return m.resync(ctx, err)
	}
	return nil
}

// commit sends a patch and records the confirmed state. Local values are
// never overwritten by the response: the user may have moved on already and
// last-writer-wins locally.
func (m *Manager) commit(ctx context.Context, id string, patch model.NoteUpdate) error {
	updated, err := m.svc.UpdateNote(ctx, id, patch)
	if err != nil {
		return m.resync(ctx, err)
	}
	m.mu.Lock()
	m.synced[id] = updated
	m.mu.Unlock()
	return nil
}

// resync discards local state in favor of the server's after a failed
// mutation. The original failure is what callers see; a resync failure is
// attached to it.
func (m *Manager) resync(ctx context.Context, cause error) error {
	fetched, err := m.svc.ListNotes(ctx, m.topicID)
	if err != nil {
		return fmt.Errorf("note update failed and resync failed: %w", cause)
	}
	m.mu.Lock()
	m.replace(fetched)
	m.mu.Unlock()
	return fmt.Errorf("note update failed, state resynced: %w", cause)
}

func (m *Manager) replace(fetched []model.Note) {
	m.notes = fetched
	m.synced = make(map[string]model.Note, len(fetched))
	for _, n := range fetched {
		m.synced[n.ID] = n
	}
}

func (m *Manager) find(id string) *model.Note {
	for i := range m.notes {
		if m.notes[i].ID == id {
			return &m.notes[i]
		}
	}
	return nil
}
