package api

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/progress"
)

// MaxChunkSize is the size of every chunk but the last one
const MaxChunkSize = 1 << 20

// UploadFileContent replaces the content of a file with everything read
// from r, holding at most one chunk in memory.
//
// Content that fits in one chunk goes out as a single PUT. Anything larger
// runs the handshake: an empty PUT with "Content-Range: bytes */*" returns
// an Upload-ID, each chunk is PUT with its exact byte range, and a final
// empty PUT with "Content-Range: bytes */{total}" commits the upload.
//
// An If-Match passed in opts conditions the first request. Once the server
// hands out an ETag during the handshake, that ETag conditions every
// following request. ResponseHeader receives the headers of the last request.
func (c *Client) UploadFileContent(ctx context.Context, id string, r io.Reader, opts ...RequestOption) error {
	rc := newRequestConfig(opts)
	reporter := progress.OrNull(rc.reporter)

	err := c.upload(ctx, id, r, opts, rc, reporter)
	if err != nil {
		reporter.Error(err)
		return err
	}
	reporter.Complete()
	return nil
}

func (c *Client) upload(ctx context.Context, id string, r io.Reader, opts []RequestOption, rc *requestConfig, reporter progress.Reporter) error {
	contentRoute := route("files", id, "content")
	br := bufio.NewReader(r)
	buf := make([]byte, MaxChunkSize)

	n, last, err := readChunk(br, buf)
	if err != nil {
		return err
	}

	reporter.Start(id, -1)

	if last {
		h, err := c.putContent(ctx, contentRoute, buf[:n], nil, opts)
		if err != nil {
			return err
		}
		reporter.Update(int64(n))
		c.log.Debug("uploaded content", "file", id, "bytes", n)
		saveHeader(rc, h)
		return nil
	}

	h, err := c.putContent(ctx, contentRoute, nil, http.Header{
		"Content-Range": {"bytes */*"},
	}, opts)
	if err != nil {
		return err
	}
	uploadID := h.Get("Upload-ID")
	if uploadID == "" {
		return fmt.Errorf("%w: upload of %s returned no Upload-ID", domain.ErrProtocol, id)
	}
	etag := h.Get("ETag")
	c.log.Debug("upload started", "file", id, "upload_id", uploadID)

	tagged := func(contentRange string) http.Header {
		hdr := make(http.Header)
		hdr.Set("Upload-ID", uploadID)
		hdr.Set("Content-Range", contentRange)
		if etag != "" {
			hdr.Set("If-Match", etag)
		}
		return hdr
	}

	var total int64
	for n > 0 {
		contentRange := fmt.Sprintf("bytes %d-%d/*", total, total+int64(n)-1)
		if _, err := c.putContent(ctx, contentRoute, buf[:n], tagged(contentRange), opts); err != nil {
			return err
		}
		total += int64(n)
		reporter.Update(total)
		c.log.Debug("uploaded chunk", "file", id, "range", contentRange)

		if last {
			break
		}
		if n, last, err = readChunk(br, buf); err != nil {
			return err
		}
	}

	h, err = c.putContent(ctx, contentRoute, nil, tagged(fmt.Sprintf("bytes */%d", total)), opts)
	if err != nil {
		return err
	}
	c.log.Debug("upload committed", "file", id, "bytes", total)
	saveHeader(rc, h)
	return nil
}

// readChunk fills buf and reports whether the reader is exhausted
func readChunk(br *bufio.Reader, buf []byte) (int, bool, error) {
	n, err := io.ReadFull(br, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, true, nil
	case err != nil:
		return n, false, fmt.Errorf("api: read content: %w", err)
	}

	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return n, true, nil
		}
		return n, false, fmt.Errorf("api: read content: %w", err)
	}
	return n, false, nil
}

// putContent sends one raw PUT. extra headers win over the caller's options.
func (c *Client) putContent(ctx context.Context, contentRoute string, body []byte, extra http.Header, opts []RequestOption) (http.Header, error) {
	req := &Request{
		Method:      http.MethodPut,
		Route:       contentRoute,
		ContentType: contentTypeStream,
	}
	if body != nil {
		req.Body = bytes.NewReader(body)
	}

	var h http.Header
	all := make([]RequestOption, 0, len(opts)+len(extra)+1)
	all = append(all, opts...)
	for k, vs := range extra {
		for _, v := range vs {
			all = append(all, WithHeader(k, v))
		}
	}
	all = append(all, ResponseHeader(&h))

	if err := c.Do(ctx, req, nil, all...); err != nil {
		return nil, err
	}
	return h, nil
}

func saveHeader(rc *requestConfig, h http.Header) {
	if rc.respHeader != nil {
		*rc.respHeader = h
	}
}
