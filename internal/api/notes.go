package api

import (
	"context"
	"strconv"

	"github.com/bine130/pe-subnote/internal/model"
)

// ListNotes returns the caller's sticky notes, optionally scoped to one
// topic (topicID > 0).
func (c *Client) ListNotes(ctx context.Context, topicID int) ([]model.Note, error) {
	path := "/api/notes"
	if topicID > 0 {
		path += "?topic_id=" + strconv.Itoa(topicID)
	}
	var notes []model.Note
	if err := c.get(ctx, path, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (model.Note, error) {
	var note model.Note
	err := c.get(ctx, "/api/notes/"+id, &note)
	return note, err
}

func (c *Client) CreateNote(ctx context.Context, data model.NoteCreate) (model.Note, error) {
	var note model.Note
	err := c.post(ctx, "/api/notes", data, &note)
	return note, err
}

// UpdateNote sends a partial patch; only the non-nil fields change.
func (c *Client) UpdateNote(ctx context.Context, id string, data model.NoteUpdate) (model.Note, error) {
	var note model.Note
	err := c.patch(ctx, "/api/notes/"+id, data, &note)
	return note, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/notes/"+id)
}
