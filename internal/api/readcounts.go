package api

import (
	"context"
	"fmt"

	"github.com/bine130/pe-subnote/internal/model"
)

func (c *Client) ListReadCounts(ctx context.Context) ([]model.ReadCount, error) {
	var counts []model.ReadCount
	if err := c.get(ctx, "/api/read-counts", &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (c *Client) GetReadCount(ctx context.Context, topicID int) (model.ReadCount, error) {
	var count model.ReadCount
	err := c.get(ctx, fmt.Sprintf("/api/read-counts/%d", topicID), &count)
	return count, err
}

// IncrementReadCount bumps the caller's read counter for a topic.
func (c *Client) IncrementReadCount(ctx context.Context, topicID int) (model.ReadCount, error) {
	body := struct {
		TopicID int `json:"topic_id"`
	}{TopicID: topicID}
	var count model.ReadCount
	err := c.post(ctx, "/api/read-counts", body, &count)
	return count, err
}
