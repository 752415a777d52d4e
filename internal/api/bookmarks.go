package api

import (
	"context"
	"fmt"

	"github.com/bine130/pe-subnote/internal/model"
)

func (c *Client) ListBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := c.get(ctx, "/api/bookmarks", &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// ToggleBookmark flips membership and reports the resulting state. The
// server's toggle response carries no body, so a check request follows.
func (c *Client) ToggleBookmark(ctx context.Context, topicID int) (bool, error) {
	body := struct {
		TopicID int `json:"topic_id"`
	}{TopicID: topicID}
	if err := c.post(ctx, "/api/bookmarks", body, nil); err != nil {
		return false, err
	}
	return c.CheckBookmark(ctx, topicID)
}

func (c *Client) CheckBookmark(ctx context.Context, topicID int) (bool, error) {
	var bookmarked bool
	err := c.get(ctx, fmt.Sprintf("/api/bookmarks/check/%d", topicID), &bookmarked)
	return bookmarked, err
}
