package api

import (
	"context"
	"fmt"

	"github.com/bine130/pe-subnote/internal/model"
)

// CategoryTree fetches the nested category tree. The endpoint is public and
// works without a token.
func (c *Client) CategoryTree(ctx context.Context) ([]model.CategoryNode, error) {
	var tree []model.CategoryNode
	if err := c.get(ctx, "/api/categories/tree", &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.get(ctx, "/api/categories/", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (model.Category, error) {
	var cat model.Category
	err := c.get(ctx, fmt.Sprintf("/api/categories/%d", id), &cat)
	return cat, err
}

func (c *Client) CreateCategory(ctx context.Context, data model.CategoryCreate) (model.Category, error) {
	var cat model.Category
	err := c.post(ctx, "/api/categories/", data, &cat)
	return cat, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int, data model.CategoryUpdate) (model.Category, error) {
	var cat model.Category
	err := c.put(ctx, fmt.Sprintf("/api/categories/%d", id), data, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/categories/%d", id))
}

// ReorderCategories applies a batch of parent/position moves in one call.
func (c *Client) ReorderCategories(ctx context.Context, moves []model.CategoryReorder) error {
	return c.post(ctx, "/api/categories/reorder", moves, nil)
}
