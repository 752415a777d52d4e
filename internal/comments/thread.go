package comments

import (
	"context"
	"strings"
	"sync"

	"github.com/bine130/pe-subnote/internal/model"
)

// Service is the slice of the remote API the thread needs.
type Service interface {
	ListComments(ctx context.Context, topicID int) ([]model.Comment, error)
	CreateComment(ctx context.Context, topicID int, data model.CommentCreate) (model.Comment, error)
	UpdateComment(ctx context.Context, topicID, commentID int, data model.CommentUpdate) (model.Comment, error)
	DeleteComment(ctx context.Context, topicID, commentID int) error
	ToggleCommentLike(ctx context.Context, topicID, commentID int) error
}

// Thread holds the comment tree for one topic. Every mutation performs its
// network call and then reloads the full set; nothing is applied
// optimistically, so likes and replies from other users show up on the next
// write as well.
type Thread struct {
	mu      sync.Mutex
	svc     Service
	topicID int
	tree    []model.Comment
}

func NewThread(svc Service, topicID int) *Thread {
	return &Thread{svc: svc, topicID: topicID}
}

// Load replaces the tree with the server's current set, rebuilt through
// BuildTree so flat rows and pre-nested replies come out the same.
func (t *Thread) Load(ctx context.Context) error {
	fetched, err := t.svc.ListComments(ctx, t.topicID)
	if err != nil {
		return err
	}
	tree := BuildTree(flatten(fetched))
	t.mu.Lock()
	t.tree = tree
	t.mu.Unlock()
	return nil
}

// Comments returns the current tree (top-level comments with nested replies).
func (t *Thread) Comments() []model.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Comment, len(t.tree))
	copy(out, t.tree)
	return out
}

// Len is the number of top-level comments.
func (t *Thread) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tree)
}

// Add posts a comment (or a reply when parentID is set) and reloads. Blank
// content is a silent no-op.
func (t *Thread) Add(ctx context.Context, content string, parentID *int) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	_, err := t.svc.CreateComment(ctx, t.topicID, model.CommentCreate{
		Content:         content,
		ParentCommentID: parentID,
	})
	if err != nil {
		return err
	}
	return t.Load(ctx)
}

// Edit rewrites a comment's content and reloads.
func (t *Thread) Edit(ctx context.Context, commentID int, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if _, err := t.svc.UpdateComment(ctx, t.topicID, commentID, model.CommentUpdate{Content: content}); err != nil {
		return err
	}
	return t.Load(ctx)
}

// Remove deletes a comment and reloads.
func (t *Thread) Remove(ctx context.Context, commentID int) error {
	if err := t.svc.DeleteComment(ctx, t.topicID, commentID); err != nil {
		return err
	}
	return t.Load(ctx)
}

// ToggleLike flips the viewer's like and reloads.
func (t *Thread) ToggleLike(ctx context.Context, commentID int) error {
	if err := t.svc.ToggleCommentLike(ctx, t.topicID, commentID); err != nil {
		return err
	}
	return t.Load(ctx)
}
