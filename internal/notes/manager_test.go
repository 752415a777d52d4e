package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bine130/pe-subnote/internal/model"
)

// fakeService is an in-memory stand-in for the remote notes API. It mints
// server-assigned ids and can be told to fail the next update or delete.
type fakeService struct {
	notes       map[string]model.Note
	order       []string
	updateCalls int
	failNext    error
}

func newFakeService() *fakeService {
	return &fakeService{notes: make(map[string]model.Note)}
}

func (f *fakeService) ListNotes(_ context.Context, topicID int) ([]model.Note, error) {
	out := []model.Note{}
	for _, id := range f.order {
		if n, ok := f.notes[id]; ok && n.TopicID == topicID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeService) CreateNote(_ context.Context, data model.NoteCreate) (model.Note, error) {
	n := model.Note{
		ID:        uuid.NewString(),
		TopicID:   data.TopicID,
		Content:   data.Content,
		PositionX: data.PositionX,
		PositionY: data.PositionY,
		Width:     200,
		Height:    200,
		Color:     data.Color,
		Opacity:   data.Opacity,
	}
	f.notes[n.ID] = n
	f.order = append(f.order, n.ID)
	return n, nil
}

func (f *fakeService) UpdateNote(_ context.Context, id string, data model.NoteUpdate) (model.Note, error) {
	f.updateCalls++
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return model.Note{}, err
	}
	n, ok := f.notes[id]
	if !ok {
		return model.Note{}, errors.New("not found")
	}
	if data.Content != nil {
		n.Content = *data.Content
	}
	if data.PositionX != nil {
		n.PositionX = *data.PositionX
	}
	if data.PositionY != nil {
		n.PositionY = *data.PositionY
	}
	if data.Width != nil {
		n.Width = *data.Width
	}
	if data.Height != nil {
		n.Height = *data.Height
	}
	if data.Color != nil {
		n.Color = *data.Color
	}
	if data.Opacity != nil {
		n.Opacity = *data.Opacity
	}
	f.notes[id] = n
	return n, nil
}

func (f *fakeService) DeleteNote(_ context.Context, id string) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	delete(f.notes, id)
	return nil
}

func seed(t *testing.T, svc *fakeService, m *Manager, count int) []model.Note {
	t.Helper()
	ctx := context.Background()
	created := make([]model.Note, 0, count)
	for i := 0; i < count; i++ {
		n, err := m.Create(ctx)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		created = append(created, n)
	}
	return created
}

func TestCreateCascadesPosition(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	created := seed(t, svc, m, 3)

	for i, n := range created {
		want := float64(100 + 20*i)
		if n.PositionX != want || n.PositionY != want {
			t.Errorf("note %d at (%v,%v), want (%v,%v)", i, n.PositionX, n.PositionY, want, want)
		}
		if n.Color != DefaultColor || n.Opacity != 1.0 {
			t.Errorf("note %d defaults: color=%s opacity=%v", i, n.Color, n.Opacity)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
}

func TestEndGestureSkipsUnchangedGeometry(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 1)[0]
	ctx := context.Background()

	m.Move(n.ID, 250, 300)
	if err := m.EndGesture(ctx, n.ID); err != nil {
		t.Fatalf("EndGesture: %v", err)
	}
	if svc.updateCalls != 1 {
		t.Fatalf("updateCalls = %d, want 1", svc.updateCalls)
	}

	// Same position again: the delta against server state is zero.
	m.Move(n.ID, 250, 300)
	if err := m.EndGesture(ctx, n.ID); err != nil {
		t.Fatalf("EndGesture: %v", err)
	}
	if svc.updateCalls != 1 {
		t.Errorf("updateCalls = %d after no-op gesture, want 1", svc.updateCalls)
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 1)[0]

	m.Resize(n.ID, 10, -40)
	got := m.Notes()[0]
	if got.Width != MinSize || got.Height != MinSize {
		t.Errorf("size = (%v,%v), want (%v,%v)", got.Width, got.Height, float64(MinSize), float64(MinSize))
	}

	m.Resize(n.ID, 400, 175)
	got = m.Notes()[0]
	if got.Width != 400 || got.Height != 175 {
		t.Errorf("size = (%v,%v), want (400,175)", got.Width, got.Height)
	}
}

func TestResyncOnFailedUpdate(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 1)[0]
	ctx := context.Background()

	svc.failNext = errors.New("network down")
	m.Move(n.ID, 999, 999)
	err := m.EndGesture(ctx, n.ID)
	if err == nil {
		t.Fatal("expected error from failed commit")
	}

	// Local state must match the server, not the optimistic value.
	got := m.Notes()[0]
	want := svc.notes[n.ID]
	if got.PositionX != want.PositionX || got.PositionY != want.PositionY {
		t.Errorf("after resync at (%v,%v), server has (%v,%v)",
			got.PositionX, got.PositionY, want.PositionX, want.PositionY)
	}
}

func TestResyncOnFailedDelete(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 2)[0]
	ctx := context.Background()

	svc.failNext = errors.New("network down")
	if err := m.Delete(ctx, n.ID); err == nil {
		t.Fatal("expected error from failed delete")
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d after resync, want 2", m.Len())
	}
}

func TestDeleteIsOptimistic(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 2)[0]

	if err := m.Delete(context.Background(), n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if _, ok := svc.notes[n.ID]; ok {
		t.Error("note still on server")
	}
}

func TestEditContentSkipsUnchanged(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 1)[0]
	ctx := context.Background()

	if err := m.EditContent(ctx, n.ID, n.Content); err != nil {
		t.Fatalf("EditContent: %v", err)
	}
	if svc.updateCalls != 0 {
		t.Errorf("updateCalls = %d for unchanged content, want 0", svc.updateCalls)
	}

	if err := m.EditContent(ctx, n.ID, "revised"); err != nil {
		t.Fatalf("EditContent: %v", err)
	}
	if svc.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want 1", svc.updateCalls)
	}
	if m.Notes()[0].Content != "revised" {
		t.Errorf("content = %q", m.Notes()[0].Content)
	}
}

func TestSetOpacityClamps(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 1)[0]
	ctx := context.Background()

	if err := m.SetOpacity(ctx, n.ID, 0.01); err != nil {
		t.Fatalf("SetOpacity: %v", err)
	}
	if got := m.Notes()[0].Opacity; got != MinOpacity {
		t.Errorf("opacity = %v, want %v", got, MinOpacity)
	}
	if err := m.SetOpacity(ctx, n.ID, 3); err != nil {
		t.Fatalf("SetOpacity: %v", err)
	}
	if got := m.Notes()[0].Opacity; got != MaxOpacity {
		t.Errorf("opacity = %v, want %v", got, MaxOpacity)
	}
}

func TestRecolorRejectsUnknownColor(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	n := seed(t, svc, m, 1)[0]
	ctx := context.Background()

	if err := m.Recolor(ctx, n.ID, "magenta"); err != nil {
		t.Fatalf("Recolor: %v", err)
	}
	if svc.updateCalls != 0 {
		t.Errorf("updateCalls = %d for invalid color, want 0", svc.updateCalls)
	}
	if err := m.Recolor(ctx, n.ID, "pink"); err != nil {
		t.Fatalf("Recolor: %v", err)
	}
	if m.Notes()[0].Color != "pink" {
		t.Errorf("color = %q", m.Notes()[0].Color)
	}
}

func TestUnknownNoteIsNoOp(t *testing.T) {
	svc := newFakeService()
	m := NewManager(svc, 1)
	seed(t, svc, m, 1)
	ctx := context.Background()

	m.Move("missing", 1, 2)
	m.Resize("missing", 1, 2)
	if err := m.EndGesture(ctx, "missing"); err != nil {
		t.Errorf("EndGesture: %v", err)
	}
	if err := m.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if svc.updateCalls != 0 {
		t.Errorf("updateCalls = %d, want 0", svc.updateCalls)
	}
}
