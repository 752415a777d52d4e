package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bine130/pe-subnote/internal/model"
)

func (c *Client) ListTemplates(ctx context.Context, category string) ([]model.TemplateSummary, error) {
	path := "/api/templates/"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var templates []model.TemplateSummary
	if err := c.get(ctx, path, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (c *Client) GetTemplate(ctx context.Context, id int) (model.Template, error) {
	var tmpl model.Template
	err := c.get(ctx, fmt.Sprintf("/api/templates/%d", id), &tmpl)
	return tmpl, err
}

func (c *Client) CreateTemplate(ctx context.Context, data model.TemplateCreate) (model.Template, error) {
	var tmpl model.Template
	err := c.post(ctx, "/api/templates/", data, &tmpl)
	return tmpl, err
}

func (c *Client) UpdateTemplate(ctx context.Context, id int, data model.TemplateUpdate) (model.Template, error) {
	var tmpl model.Template
	err := c.put(ctx, fmt.Sprintf("/api/templates/%d", id), data, &tmpl)
	return tmpl, err
}

func (c *Client) DeleteTemplate(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/templates/%d", id))
}
