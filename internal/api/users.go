package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bine130/pe-subnote/internal/model"
)

// UserQuery filters the admin user listing.
type UserQuery struct {
	ApprovalStatus string
	Role           string
	Skip           int
	Limit          int
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) ([]model.User, error) {
	v := url.Values{}
	if q.ApprovalStatus != "" {
		v.Set("approval_status", q.ApprovalStatus)
	}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	v.Set("skip", strconv.Itoa(q.Skip))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	var users []model.User
	if err := c.get(ctx, "/api/users/?"+v.Encode(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PendingUsers lists accounts awaiting approval, newest first.
func (c *Client) PendingUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/api/users/pending", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, data model.UserUpdate) (model.User, error) {
	var user model.User
	err := c.patch(ctx, "/api/users/"+id, data, &user)
	return user, err
}
