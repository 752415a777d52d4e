package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/bine130/pe-subnote/internal/model"
)

// fakeCommentAPI keeps a flat store and serves it nested, like the server.
// With serveFlat it returns the rows as-is, parent ids only.
type fakeCommentAPI struct {
	nextID    int
	store     []model.Comment
	listCalls int
	failList  bool
	serveFlat bool
	liked     map[int]bool
}

func newFakeCommentAPI() *fakeCommentAPI {
	return &fakeCommentAPI{nextID: 1, liked: map[int]bool{}}
}

func (f *fakeCommentAPI) ListComments(_ context.Context, _ int) ([]model.Comment, error) {
	f.listCalls++
	if f.failList {
		return nil, errors.New("list failed")
	}
	if f.serveFlat {
		return append([]model.Comment(nil), f.store...), nil
	}
	return BuildTree(f.store), nil
}

func (f *fakeCommentAPI) CreateComment(_ context.Context, _ int, data model.CommentCreate) (model.Comment, error) {
	c := model.Comment{ID: f.nextID, Content: data.Content, ParentCommentID: data.ParentCommentID}
	f.nextID++
	f.store = append(f.store, c)
	return c, nil
}

func (f *fakeCommentAPI) UpdateComment(_ context.Context, _ int, commentID int, data model.CommentUpdate) (model.Comment, error) {
	for i := range f.store {
		if f.store[i].ID == commentID {
			f.store[i].Content = data.Content
			return f.store[i], nil
		}
	}
	return model.Comment{}, errors.New("not found")
}

func (f *fakeCommentAPI) DeleteComment(_ context.Context, _ int, commentID int) error {
	for i := range f.store {
		if f.store[i].ID == commentID {
			f.store = append(f.store[:i], f.store[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeCommentAPI) ToggleCommentLike(_ context.Context, _ int, commentID int) error {
	f.liked[commentID] = !f.liked[commentID]
	return nil
}

func TestThreadReloadsAfterEveryMutation(t *testing.T) {
	api := newFakeCommentAPI()
	th := NewThread(api, 1)
	ctx := context.Background()

	if err := th.Add(ctx, "first", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := th.Add(ctx, "reply", intp(1)); err != nil {
		t.Fatalf("Add reply: %v", err)
	}

	tree := th.Comments()
	if len(tree) != 1 || len(tree[0].Replies) != 1 {
		t.Fatalf("tree shape: roots=%d", len(tree))
	}
	if api.listCalls != 2 {
		t.Errorf("list calls = %d, want one per mutation", api.listCalls)
	}

	if err := th.Edit(ctx, 2, "edited"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got := th.Comments()[0].Replies[0].Content; got != "edited" {
		t.Errorf("content = %q after edit", got)
	}

	if err := th.Remove(ctx, 2); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := CountAll(th.Comments()); got != 1 {
		t.Errorf("CountAll = %d after remove, want 1", got)
	}

	if err := th.ToggleLike(ctx, 1); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !api.liked[1] {
		t.Error("like not recorded")
	}
	if api.listCalls != 5 {
		t.Errorf("list calls = %d, want 5", api.listCalls)
	}
}

func TestLoadNestsFlatResponses(t *testing.T) {
	api := newFakeCommentAPI()
	api.serveFlat = true
	th := NewThread(api, 1)
	ctx := context.Background()

	if err := th.Add(ctx, "root", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := th.Add(ctx, "reply", intp(1)); err != nil {
		t.Fatalf("Add reply: %v", err)
	}

	tree := th.Comments()
	if len(tree) != 1 || len(tree[0].Replies) != 1 {
		t.Fatalf("flat rows not nested: roots=%d", len(tree))
	}
	if tree[0].Replies[0].Content != "reply" {
		t.Errorf("reply content = %q", tree[0].Replies[0].Content)
	}

	// A pre-nested response loads to the same shape.
	api.serveFlat = false
	if err := th.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	nested := th.Comments()
	if len(nested) != 1 || len(nested[0].Replies) != 1 {
		t.Fatalf("nested rows reshaped: roots=%d", len(nested))
	}
}

func TestThreadBlankContentIsNoOp(t *testing.T) {
	api := newFakeCommentAPI()
	th := NewThread(api, 1)
	ctx := context.Background()

	if err := th.Add(ctx, "   \n", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(api.store) != 0 || api.listCalls != 0 {
		t.Errorf("blank add hit the server: store=%d lists=%d", len(api.store), api.listCalls)
	}
}

func TestThreadKeepsOldTreeWhenReloadFails(t *testing.T) {
	api := newFakeCommentAPI()
	th := NewThread(api, 1)
	ctx := context.Background()

	if err := th.Add(ctx, "first", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	api.failList = true
	if err := th.Add(ctx, "second", nil); err == nil {
		t.Fatal("expected reload error")
	}
	// The write went through, but the visible tree stays at the last
	// successful load.
	if len(api.store) != 2 {
		t.Fatalf("store = %d, want 2", len(api.store))
	}
	if got := th.Len(); got != 1 {
		t.Errorf("visible roots = %d, want 1", got)
	}
}

func TestComposerSingleActiveTarget(t *testing.T) {
	var c Composer

	c.StartReply(3)
	c.SetDraft("half a reply")
	if id, ok := c.ReplyingTo(); !ok || id != 3 {
		t.Fatalf("ReplyingTo = %d,%v", id, ok)
	}

	// Starting an edit cancels the reply and reseeds the draft.
	c.StartEdit(7, "original text")
	if _, ok := c.ReplyingTo(); ok {
		t.Error("reply target survived StartEdit")
	}
	if id, ok := c.Editing(); !ok || id != 7 {
		t.Fatalf("Editing = %d,%v", id, ok)
	}
	if c.Draft() != "original text" {
		t.Errorf("draft = %q, want seeded content", c.Draft())
	}

	// Switching reply targets drops the previous draft.
	c.StartReply(9)
	if _, ok := c.Editing(); ok {
		t.Error("edit target survived StartReply")
	}
	if c.Draft() != "" {
		t.Errorf("draft = %q, want empty", c.Draft())
	}

	c.Cancel()
	if _, ok := c.ReplyingTo(); ok {
		t.Error("reply target survived Cancel")
	}
}
