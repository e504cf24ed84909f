package api

import "context"

func (c *Client) CreateSharedFolder(ctx context.Context, name string, opts ...RequestOption) (*SharedFolder, error) {
	var out SharedFolder
	if err := c.Post(ctx, "/shares", nameBody{Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSharedFolder(ctx context.Context, id string, opts ...RequestOption) (*SharedFolder, error) {
	var out SharedFolder
	if err := c.Get(ctx, route("shares", id), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Members

func (c *Client) ListSFMembers(ctx context.Context, shareID string, opts ...RequestOption) ([]SFMember, error) {
	var out []SFMember
	if err := c.Get(ctx, route("shares", shareID, "members"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSFMember(ctx context.Context, shareID, email string, opts ...RequestOption) (*SFMember, error) {
	var out SFMember
	if err := c.Get(ctx, route("shares", shareID, "members", email), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddSFMember(ctx context.Context, shareID, email string, permissions []string, opts ...RequestOption) (*SFMember, error) {
	var out SFMember
	in := memberBody{Email: email, Permissions: nonNil(permissions)}
	if err := c.Post(ctx, route("shares", shareID, "members"), in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSFMember(ctx context.Context, shareID, email string, permissions []string, opts ...RequestOption) (*SFMember, error) {
	var out SFMember
	in := permissionsBody{Permissions: nonNil(permissions)}
	if err := c.Put(ctx, route("shares", shareID, "members", email), in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveSFMember(ctx context.Context, shareID, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("shares", shareID, "members", email), opts...)
}

// Group members

func (c *Client) ListSFGroupMembers(ctx context.Context, shareID string, opts ...RequestOption) ([]SFGroupMember, error) {
	var out []SFGroupMember
	if err := c.Get(ctx, route("shares", shareID, "groups"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSFGroupMember(ctx context.Context, shareID, groupID string, opts ...RequestOption) (*SFGroupMember, error) {
	var out SFGroupMember
	if err := c.Get(ctx, route("shares", shareID, "groups", groupID), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddSFGroupMember(ctx context.Context, shareID, groupID string, permissions []string, opts ...RequestOption) (*SFGroupMember, error) {
	var out SFGroupMember
	in := groupMemberBody{ID: groupID, Permissions: nonNil(permissions)}
	if err := c.Post(ctx, route("shares", shareID, "groups"), in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSFGroupMember(ctx context.Context, shareID, groupID string, permissions []string, opts ...RequestOption) (*SFGroupMember, error) {
	var out SFGroupMember
	in := permissionsBody{Permissions: nonNil(permissions)}
	if err := c.Put(ctx, route("shares", shareID, "groups", groupID), in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveSFGroupMember(ctx context.Context, shareID, groupID string, opts ...RequestOption) error {
	return c.Delete(ctx, route("shares", shareID, "groups", groupID), opts...)
}

// Pending members

func (c *Client) ListSFPendingMembers(ctx context.Context, shareID string, opts ...RequestOption) ([]SFPendingMember, error) {
	var out []SFPendingMember
	if err := c.Get(ctx, route("shares", shareID, "pending"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSFPendingMember(ctx context.Context, shareID, email string, opts ...RequestOption) (*SFPendingMember, error) {
	var out SFPendingMember
	if err := c.Get(ctx, route("shares", shareID, "pending", email), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddSFPendingMember invites email to the shared folder
func (c *Client) AddSFPendingMember(ctx context.Context, shareID, email string, permissions []string, note string, opts ...RequestOption) (*SFPendingMember, error) {
	var out SFPendingMember
	in := pendingBody{Email: email, Permissions: nonNil(permissions), Note: note}
	if err := c.Post(ctx, route("shares", shareID, "pending"), in, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveSFPendingMember(ctx context.Context, shareID, email string, opts ...RequestOption) error {
	return c.Delete(ctx, route("shares", shareID, "pending", email), opts...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
