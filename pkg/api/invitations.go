package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListInvitations(ctx context.Context, email string, opts ...RequestOption) ([]Invitation, error) {
	var out []Invitation
	if err := c.Get(ctx, route("users", email, "invitations"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetInvitation(ctx context.Context, email, shareID string, opts ...RequestOption) (*Invitation, error) {
	var out Invitation
	if err := c.Get(ctx, route("users", email, "invitations", shareID), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation joins the shared folder. With external set the folder is
// not synced to the user's devices.
func (c *Client) AcceptInvitation(ctx context.Context, email, shareID string, external bool, opts ...RequestOption) (*SharedFolder, error) {
	var q url.Values
	if external {
		q = url.Values{"external": {"1"}}
	}
	req := &Request{
		Method: http.MethodPost,
		Route:  route("users", email, "invitations", shareID),
		Query:  q,
	}

	var out SharedFolder
	if err := c.Do(ctx, req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// IgnoreInvitation declines the invitation
func (c *Client) IgnoreInvitation(ctx context.Context, email, shareID string, opts ...RequestOption) error {
	return c.Delete(ctx, route("users", email, "invitations", shareID), opts...)
}

func (c *Client) GetInvitee(ctx context.Context, email string, opts ...RequestOption) (*Invitee, error) {
	var out Invitee
	if err := c.Get(ctx, route("invitees", email), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvitee invites email to sign up, on behalf of inviter
func (c *Client) CreateInvitee(ctx context.Context, inviter, email string, opts ...RequestOption) (*Invitee, error) {
	var out Invitee
	in := inviteeBody{EmailTo: email, EmailFrom: inviter}
	if err := c.Post(ctx, "/invitees", in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInvitee(ctx context.Context, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("invitees", email), opts...)
}
