package api

import "context"

func (c *Client) GetDevice(ctx context.Context, id string, opts ...RequestOption) (*Device, error) {
	var out Device
	if err := c.Get(ctx, route("devices", id), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDevice renames a device
func (c *Client) UpdateDevice(ctx context.Context, id, name string, opts ...RequestOption) (*Device, error) {
	var out Device
	if err := c.Put(ctx, route("devices", id), nameBody{Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDeviceStatus(ctx context.Context, id string, opts ...RequestOption) (*DeviceStatus, error) {
	var out DeviceStatus
	if err := c.Get(ctx, route("devices", id, "status"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}
