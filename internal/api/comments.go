package api

import (
	"context"
	"fmt"

	"github.com/bine130/pe-subnote/internal/model"
)

// ListComments returns the comment tree for a topic, already nested by the
// server and ordered newest-first at each level.
func (c *Client) ListComments(ctx context.Context, topicID int) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.get(ctx, fmt.Sprintf("/api/topics/%d/comments", topicID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, topicID int, data model.CommentCreate) (model.Comment, error) {
	var comment model.Comment
	err := c.post(ctx, fmt.Sprintf("/api/topics/%d/comments", topicID), data, &comment)
	return comment, err
}

func (c *Client) UpdateComment(ctx context.Context, topicID, commentID int, data model.CommentUpdate) (model.Comment, error) {
	var comment model.Comment
	err := c.patch(ctx, fmt.Sprintf("/api/topics/%d/comments/%d", topicID, commentID), data, &comment)
	return comment, err
}

func (c *Client) DeleteComment(ctx context.Context, topicID, commentID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/topics/%d/comments/%d", topicID, commentID))
}

func (c *Client) ToggleCommentLike(ctx context.Context, topicID, commentID int) error {
	return c.post(ctx, fmt.Sprintf("/api/topics/%d/comments/%d/like", topicID, commentID), nil, nil)
}
