package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Ning0612/aerofs-go/internal/progress"
)

func (c *Client) GetFile(ctx context.Context, id string, opts ...RequestOption) (*File, error) {
	var out File
	if err := c.Get(ctx, route("files", id), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFilePath(ctx context.Context, id string, opts ...RequestOption) (*ParentPath, error) {
	var out ParentPath
	if err := c.Get(ctx, route("files", id, "path"), nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFile(ctx context.Context, parent, name string, opts ...RequestOption) (*File, error) {
	var out File
	if err := c.Post(ctx, "/files", parentName{Parent: parent, Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// MoveFile renames and/or reparents a file
func (c *Client) MoveFile(ctx context.Context, id, parent, name string, opts ...RequestOption) (*File, error) {
	var out File
	if err := c.Put(ctx, route("files", id), parentName{Parent: parent, Name: name}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFile(ctx context.Context, id string, opts ...RequestOption) error {
	return c.Delete(ctx, route("files", id), opts...)
}

// GetFileContent reads the whole content into memory. Use ResponseHeader to
// obtain the Content-Type and ETag.
func (c *Client) GetFileContent(ctx context.Context, id string, opts ...RequestOption) ([]byte, error) {
	resp, err := c.send(ctx, &Request{Method: http.MethodGet, Route: route("files", id, "content")}, opts)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read content: %w", err)
	}
	return data, nil
}

// DownloadFileContent streams the content to w and returns the byte count.
// Combine with Range and IfRange to resume a partial download.
func (c *Client) DownloadFileContent(ctx context.Context, id string, w io.Writer, opts ...RequestOption) (int64, error) {
	rc := newRequestConfig(opts)
	reporter := progress.OrNull(rc.reporter)

	resp, err := c.send(ctx, &Request{Method: http.MethodGet, Route: route("files", id, "content")}, opts)
	if err != nil {
		reporter.Error(err)
		return 0, err
	}
	defer closeBody(resp.Body)

	reporter.Start(id, resp.ContentLength)
	n, err := io.Copy(progress.NewProgressWriter(w, reporter), resp.Body)
	if err != nil {
		err = fmt.Errorf("api: download content: %w", err)
		reporter.Error(err)
		return n, err
	}
	reporter.Complete()
	return n, nil
}
