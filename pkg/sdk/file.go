package sdk

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/logger"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// File is a file in a user's tree
type File struct {
	client *api.Client
	state  attr.State
	id     string

	name         attr.Field[string]
	parent       attr.Field[*Folder]
	lastModified attr.Field[time.Time]
	size         attr.Field[int64]
	mimeType     attr.Field[string]
	path         attr.Field[[]*Folder]
	content      attr.Field[[]byte]
	contentState attr.Field[ContentState]
}

// NewFile returns an unloaded reference to the file id. Pass an empty id and
// call Create to make a new file.
func NewFile(c *api.Client, id string) *File {
	f := &File{client: c, id: id}
	f.name = attr.Synced[string](&f.state, "name", f.Load, f.pushName)
	f.parent = attr.Synced[*Folder](&f.state, "parent", f.Load, f.pushParent)
	f.lastModified = attr.ReadOnly[time.Time](&f.state, "last_modified", f.Load)
	f.size = attr.ReadOnly[int64](&f.state, "size", f.Load)
	f.mimeType = attr.ReadOnly[string](&f.state, "mime_type", f.Load)
	f.path = attr.ReadOnly[[]*Folder](&f.state, "path", f.loadPath)
	f.content = attr.Synced[[]byte](&f.state, "content", f.loadContent, f.pushContent)
	f.contentState = attr.ReadOnly[ContentState](&f.state, "content_state", f.Load)
	return f
}

func newFileFrom(c *api.Client, data *api.File) *File {
	f := NewFile(c, data.ID)
	f.fromResponse(data)
	return f
}

func (f *File) ID() string { return f.id }

func (f *File) Name(ctx context.Context) (string, error) { return f.name.Get(ctx) }

// SetName renames the file, conditioned on the last seen ETag
func (f *File) SetName(ctx context.Context, name string) error { return f.name.Set(ctx, name) }

// Parent returns an unloaded reference to the containing folder
func (f *File) Parent(ctx context.Context) (*Folder, error) { return f.parent.Get(ctx) }

// SetParent moves the file under parent, conditioned on the last seen ETag
func (f *File) SetParent(ctx context.Context, parent *Folder) error {
	return f.parent.Set(ctx, parent)
}

// LastModified is unavailable for files that never had content
func (f *File) LastModified(ctx context.Context) (time.Time, error) {
	return f.lastModified.Get(ctx)
}

func (f *File) Size(ctx context.Context) (int64, error) { return f.size.Get(ctx) }

func (f *File) MimeType(ctx context.Context) (string, error) { return f.mimeType.Get(ctx) }

// Path returns the ancestors of the file, root first
func (f *File) Path(ctx context.Context) ([]*Folder, error) { return f.path.Get(ctx) }

func (f *File) ContentState(ctx context.Context) (ContentState, error) {
	return f.contentState.Get(ctx)
}

// Content downloads the whole content on first use. The MIME type is taken
// from the download response.
func (f *File) Content(ctx context.Context) ([]byte, error) { return f.content.Get(ctx) }

// SetContent uploads data unconditionally and reloads the metadata
func (f *File) SetContent(ctx context.Context, data []byte) error {
	return f.content.Set(ctx, data)
}

// ETags returns the concurrency token captured from the last response
func (f *File) ETags() []string { return f.state.ETags() }

// Equal reports whether both refer to the same file
func (f *File) Equal(other *File) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.id == other.id
}

func (f *File) fromResponse(data *api.File) {
	var size int64
	if data.Size != nil {
		size = *data.Size
	}
	state := domain.ContentUnknown
	if data.ContentState != nil {
		state = domain.ParseContentState(*data.ContentState)
	}

	f.id = data.ID
	f.name.Fill(data.Name)
	if data.Parent != nil {
		f.parent.Fill(NewFolder(f.client, *data.Parent))
	}
	if data.LastModified != nil {
		f.lastModified.Fill(*data.LastModified)
	} else {
		f.lastModified.Clear()
	}
	f.size.Fill(size)
	f.mimeType.Fill(data.MimeType)
	f.contentState.Fill(state)
}

// Load fetches the file metadata and its ETag
func (f *File) Load(ctx context.Context) error {
	t := track(&f.state)
	data, err := f.client.GetFile(ctx, f.id, t.option())
	if err != nil {
		return err
	}
	f.fromResponse(data)
	t.save()
	return nil
}

func (f *File) loadPath(ctx context.Context) error {
	data, err := f.client.GetFilePath(ctx, f.id)
	if err != nil {
		return err
	}
	f.path.Fill(foldersFrom(f.client, data.Folders))
	return nil
}

func (f *File) loadContent(ctx context.Context) error {
	t := track(&f.state)
	data, err := f.client.GetFileContent(ctx, f.id, t.option())
	if err != nil {
		return err
	}
	f.content.Fill(data)
	if ct := t.header.Get("Content-Type"); ct != "" {
		f.mimeType.Fill(ct)
	}
	t.save()
	return nil
}

func (f *File) pushName(ctx context.Context, name string) error {
	parent, err := f.parent.Get(ctx)
	if err != nil {
		return err
	}
	return f.Move(ctx, parent.ID(), name, true)
}

func (f *File) pushParent(ctx context.Context, parent *Folder) error {
	name, err := f.name.Get(ctx)
	if err != nil {
		return err
	}
	return f.Move(ctx, parent.ID(), name, true)
}

func (f *File) pushContent(ctx context.Context, data []byte) error {
	if err := f.upload(ctx, bytes.NewReader(data), false); err != nil {
		return err
	}
	return f.Load(ctx)
}

// UploadContent replaces the content with everything read from r and reloads
// the metadata. With matching set the upload only succeeds if the file is
// unchanged since it was last seen. The content is not kept in memory.
func (f *File) UploadContent(ctx context.Context, r io.Reader, matching bool, opts ...api.RequestOption) error {
	if f.state.Deleted() {
		return &attr.FieldError{Field: "content", Err: domain.ErrDeleted}
	}
	if err := f.upload(ctx, r, matching, opts...); err != nil {
		return err
	}
	f.content.Clear()
	return f.Load(ctx)
}

func (f *File) upload(ctx context.Context, r io.Reader, matching bool, opts ...api.RequestOption) error {
	log := logger.With("component", "sdk", "file", f.id)

	var h http.Header
	opts = append(opts, api.IfMatch(f.state.Condition(matching)...), api.ResponseHeader(&h))
	if err := f.client.UploadFileContent(ctx, f.id, r, opts...); err != nil {
		log.Warn("content upload failed", "error", err)
		return err
	}
	f.state.SetETags(h.Values("ETag")...)
	log.Debug("content uploaded", "matching", matching)
	return nil
}

// DownloadContent streams the content to w without keeping it in memory
func (f *File) DownloadContent(ctx context.Context, w io.Writer, opts ...api.RequestOption) (int64, error) {
	if f.state.Deleted() {
		return 0, &attr.FieldError{Field: "content", Err: domain.ErrDeleted}
	}
	t := track(&f.state)
	n, err := f.client.DownloadFileContent(ctx, f.id, w, append(opts, t.option())...)
	if err != nil {
		return n, err
	}
	if ct := t.header.Get("Content-Type"); ct != "" {
		f.mimeType.Fill(ct)
	}
	t.save()
	return n, nil
}

// Create makes an empty file named name under parentID and adopts its identifier
func (f *File) Create(ctx context.Context, parentID, name string) error {
	t := track(&f.state)
	data, err := f.client.CreateFile(ctx, parentID, name, t.option())
	if err != nil {
		return err
	}
	f.fromResponse(data)
	t.save()
	return nil
}

// Move renames and reparents the file. With matching set the move only
// succeeds if the file is unchanged since it was last seen.
func (f *File) Move(ctx context.Context, parentID, name string, matching bool) error {
	t := track(&f.state)
	data, err := f.client.MoveFile(ctx, f.id, parentID, name,
		api.IfMatch(f.state.Condition(matching)...), t.option())
	if err != nil {
		return err
	}
	f.fromResponse(data)
	t.save()
	return nil
}

func (f *File) Delete(ctx context.Context, matching bool) error {
	if err := f.client.DeleteFile(ctx, f.id, api.IfMatch(f.state.Condition(matching)...)); err != nil {
		return err
	}
	f.state.MarkDeleted()
	return nil
}
