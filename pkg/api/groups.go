package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListGroups lists the groups of the organization using offset pagination
func (c *Client) ListGroups(ctx context.Context, page Offset, opts ...RequestOption) (*GroupList, error) {
	q := url.Values{}
	if page.Offset > 0 {
		q.Set("offset", strconv.Itoa(page.Offset))
	}
	if page.Results > 0 {
		q.Set("results", strconv.Itoa(page.Results))
	}

	var out GroupList
	if err := c.Get(ctx, "/groups", q, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateGroup(ctx context.Context, name string, opts ...RequestOption) (*Group, error) {
	var out Group
	if err := c.Post(ctx, "/groups", nameBody{Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetGroup(ctx context.Context, id string, opts ...RequestOption) (*Group, error) {
	var out Group
	if err := c.Get(ctx, route("groups", id), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id string, opts ...RequestOption) error {
	return c.Delete(ctx, route("groups", id), opts...)
}

func (c *Client) ListGroupMembers(ctx context.Context, groupID string, opts ...RequestOption) ([]GroupMember, error) {
	var out []GroupMember
	if err := c.Get(ctx, route("groups", groupID, "members"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetGroupMember(ctx context.Context, groupID, email string, opts ...RequestOption) (*GroupMember, error) {
	var out GroupMember
	if err := c.Get(ctx, route("groups", groupID, "members", email), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddGroupMember(ctx context.Context, groupID, email string, opts ...RequestOption) (*GroupMember, error) {
	var out GroupMember
	if err := c.Post(ctx, route("groups", groupID, "members"), emailBody{Email: email}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveGroupMember(ctx context.Context, groupID, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("groups", groupID, "members", email), opts...)
}
