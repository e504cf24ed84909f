package api

import "context"

func (c *Client) GetFolder(ctx context.Context, id string, opts ...RequestOption) (*Folder, error) {
	var out Folder
	if err := c.Get(ctx, route("folders", id), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFolderPath(ctx context.Context, id string, opts ...RequestOption) (*ParentPath, error) {
	var out ParentPath
	if err := c.Get(ctx, route("folders", id, "path"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFolderChildren(ctx context.Context, id string, opts ...RequestOption) (*Children, error) {
	var out Children
	if err := c.Get(ctx, route("folders", id, "children"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFolder(ctx context.Context, parent, name string, opts ...RequestOption) (*Folder, error) {
	var out Folder
	if err := c.Post(ctx, "/folders", parentName{Parent: parent, Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// MoveFolder renames and/or reparents a folder
func (c *Client) MoveFolder(ctx context.Context, id, parent, name string, opts ...RequestOption) (*Folder, error) {
	var out Folder
	if err := c.Put(ctx, route("folders", id), parentName{Parent: parent, Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFolder(ctx context.Context, id string, opts ...RequestOption) error {
	return c.Delete(ctx, route("folders", id), opts...)
}
