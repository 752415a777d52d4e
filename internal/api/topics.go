package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bine130/pe-subnote/internal/model"
)

// TopicQuery filters the topic listing. Nil pointer fields are omitted from
// the request entirely, which the server reads as "no filter".
type TopicQuery struct {
	CategoryID  *int
	Search      string
	IsPublished *bool
	Skip        int
	Limit       int
}

func (q TopicQuery) values() url.Values {
	v := url.Values{}
	if q.CategoryID != nil {
		v.Set("category_id", strconv.Itoa(*q.CategoryID))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.IsPublished != nil {
		v.Set("is_published", strconv.FormatBool(*q.IsPublished))
	}
	v.Set("skip", strconv.Itoa(q.Skip))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

func (c *Client) ListTopics(ctx context.Context, q TopicQuery) ([]model.TopicSummary, error) {
	var topics []model.TopicSummary
	if err := c.get(ctx, "/api/topics/?"+q.values().Encode(), &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *Client) GetTopic(ctx context.Context, id int) (model.Topic, error) {
	var topic model.Topic
	err := c.get(ctx, fmt.Sprintf("/api/topics/%d", id), &topic)
	return topic, err
}

func (c *Client) CreateTopic(ctx context.Context, data model.TopicCreate) (model.Topic, error) {
	var topic model.Topic
	err := c.post(ctx, "/api/topics/", data, &topic)
	return topic, err
}

func (c *Client) UpdateTopic(ctx context.Context, id int, data model.TopicUpdate) (model.Topic, error) {
	var topic model.Topic
	err := c.put(ctx, fmt.Sprintf("/api/topics/%d", id), data, &topic)
	return topic, err
}

func (c *Client) DeleteTopic(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/topics/%d", id))
}

// TogglePublish flips the publish flag and returns the updated topic.
func (c *Client) TogglePublish(ctx context.Context, id int) (model.Topic, error) {
	var topic model.Topic
	err := c.post(ctx, fmt.Sprintf("/api/topics/%d/publish", id), nil, &topic)
	return topic, err
}
