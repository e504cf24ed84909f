package api

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListUsers lists the users of the organization, one page at a time
func (c *Client) ListUsers(ctx context.Context, page Page, opts ...RequestOption) (*UserList, error) {
	q := url.Values{}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if page.After != "" {
		q.Set("after", page.After)
	}
	if page.Before != "" {
		q.Set("before", page.Before)
	}

	var out UserList
	if err := c.Get(ctx, "/users", q, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, email string, opts ...RequestOption) (*User, error) {
	var out User
	if err := c.Get(ctx, route("users", email), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, email, firstName, lastName string, opts ...RequestOption) (*User, error) {
	var out User
	in := userBody{Email: email, FirstName: firstName, LastName: lastName}
	if err := c.Post(ctx, "/users", in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, email, firstName, lastName string, opts ...RequestOption) (*User, error) {
	var out User
	in := userBody{Email: email, FirstName: firstName, LastName: lastName}
	if err := c.Put(ctx, route("users", email), in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("users", email), opts...)
}

// UpdateUserPassword sets the password. The body is a bare JSON string.
func (c *Client) UpdateUserPassword(ctx context.Context, email, password string, opts ...RequestOption) error {
	data, err := jsonMarshal(password)
	if err != nil {
		return err
	}
	req := &Request{
		Method:      http.MethodPut,
		Route:       route("users", email, "password"),
		Body:        bytes.NewReader(data),
		ContentType: contentTypeJSON,
	}
	return c.Do(ctx, req, nil, opts...)
}

// DeleteUserPassword removes the password, leaving only external login
func (c *Client) DeleteUserPassword(ctx context.Context, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("users", email, "password"), opts...)
}

func (c *Client) GetUserTwoFactor(ctx context.Context, email string, opts ...RequestOption) (*TwoFactor, error) {
	var out TwoFactor
	if err := c.Get(ctx, route("users", email, "two_factor"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// DisableUserTwoFactor turns two-factor authentication off. There is no
// route to turn it on.
func (c *Client) DisableUserTwoFactor(ctx context.Context, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("users", email, "two_factor"), opts...)
}

func (c *Client) ListUserDevices(ctx context.Context, email string, opts ...RequestOption) ([]Device, error) {
	var out []Device
	if err := c.Get(ctx, route("users", email, "devices"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUserShares(ctx context.Context, email string, opts ...RequestOption) ([]SharedFolder, error) {
	var out []SharedFolder
	if err := c.Get(ctx, route("users", email, "shares"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
