package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// Folder is a folder in a user's tree
type Folder struct {
	client *api.Client
	state  attr.State
	id     string

	name         attr.Field[string]
	parent       attr.Field[*Folder]
	isShared     attr.Field[bool]
	sharedFolder attr.Field[*SharedFolder]
	path         attr.Field[[]*Folder]
	children     attr.Field[*Children]
}

// NewFolder returns an unloaded reference to the folder id. Pass an empty id
// and call Create to make a new folder.
func NewFolder(c *api.Client, id string) *Folder {
	f := &Folder{client: c, id: id}
	f.name = attr.Synced[string](&f.state, "name", f.Load, f.pushName)
	f.parent = attr.Synced[*Folder](&f.state, "parent", f.Load, f.pushParent)
	f.isShared = attr.ReadOnly[bool](&f.state, "is_shared", f.Load)
	f.sharedFolder = attr.ReadOnly[*SharedFolder](&f.state, "shared_folder", f.Load)
	f.path = attr.ReadOnly[[]*Folder](&f.state, "path", f.loadPath)
	f.children = attr.ReadOnly[*Children](&f.state, "children", f.loadChildren)
	return f
}

func newFolderFrom(c *api.Client, data *api.Folder) *Folder {
	f := NewFolder(c, data.ID)
	f.fromResponse(data)
	return f
}

func (f *Folder) ID() string { return f.id }

func (f *Folder) Name(ctx context.Context) (string, error) { return f.name.Get(ctx) }

// SetName renames the folder, conditioned on the last seen ETag
func (f *Folder) SetName(ctx context.Context, name string) error { return f.name.Set(ctx, name) }

// Parent returns an unloaded reference to the parent folder
func (f *Folder) Parent(ctx context.Context) (*Folder, error) { return f.parent.Get(ctx) }

// SetParent moves the folder under parent, conditioned on the last seen ETag
func (f *Folder) SetParent(ctx context.Context, parent *Folder) error {
	return f.parent.Set(ctx, parent)
}

func (f *Folder) IsShared(ctx context.Context) (bool, error) { return f.isShared.Get(ctx) }

// SharedFolder returns the share rooted at this folder. It is unavailable
// for folders that are not shared.
func (f *Folder) SharedFolder(ctx context.Context) (*SharedFolder, error) {
	return f.sharedFolder.Get(ctx)
}

// Path returns the ancestors of the folder, root first
func (f *Folder) Path(ctx context.Context) ([]*Folder, error) { return f.path.Get(ctx) }

func (f *Folder) Children(ctx context.Context) (*Children, error) { return f.children.Get(ctx) }

// ETags returns the concurrency token captured from the last response
func (f *Folder) ETags() []string { return f.state.ETags() }

// Equal reports whether both refer to the same folder
func (f *Folder) Equal(other *Folder) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.id == other.id
}

// fromResponse assigns every field from a folder payload. Path and children
// listings carry no parent, in which case the known parent is kept.
func (f *Folder) fromResponse(data *api.Folder) {
	var shared *SharedFolder
	if data.IsShared && data.SID != nil {
		shared = NewSharedFolder(f.client, *data.SID)
	}

	f.id = data.ID
	f.name.Fill(data.Name)
	if data.Parent != nil {
		f.parent.Fill(NewFolder(f.client, *data.Parent))
	}
	f.isShared.Fill(data.IsShared)
	if shared != nil {
		f.sharedFolder.Fill(shared)
	} else {
		f.sharedFolder.Clear()
	}
}

// Load fetches the folder metadata and its ETag
func (f *Folder) Load(ctx context.Context) error {
	t := track(&f.state)
	data, err := f.client.GetFolder(ctx, f.id, t.option())
	if err != nil {
		return err
	}
	f.fromResponse(data)
	t.save()
	return nil
}

func (f *Folder) loadPath(ctx context.Context) error {
	data, err := f.client.GetFolderPath(ctx, f.id)
	if err != nil {
		return err
	}
	f.path.Fill(foldersFrom(f.client, data.Folders))
	return nil
}

func (f *Folder) loadChildren(ctx context.Context) error {
	data, err := f.client.GetFolderChildren(ctx, f.id)
	if err != nil {
		return err
	}
	f.children.Fill(newChildrenFrom(f.client, f.id, data))
	return nil
}

func (f *Folder) pushName(ctx context.Context, name string) error {
	parent, err := f.parent.Get(ctx)
	if err != nil {
		return err
	}
	return f.Move(ctx, parent.ID(), name, true)
}

func (f *Folder) pushParent(ctx context.Context, parent *Folder) error {
	name, err := f.name.Get(ctx)
	if err != nil {
		return err
	}
	return f.Move(ctx, parent.ID(), name, true)
}

// Create makes a folder named name under parentID and adopts its identifier
func (f *Folder) Create(ctx context.Context, parentID, name string) error {
	t := track(&f.state)
	data, err := f.client.CreateFolder(ctx, parentID, name, t.option())
	if err != nil {
		return err
	}
	f.fromResponse(data)
	t.save()
	return nil
}

// Move renames and reparents the folder. With matching set the move only
// succeeds if the folder is unchanged since it was last seen.
func (f *Folder) Move(ctx context.Context, parentID, name string, matching bool) error {
	t := track(&f.state)
	data, err := f.client.MoveFolder(ctx, f.id, parentID, name,
		api.IfMatch(f.state.Condition(matching)...), t.option())
	if err != nil {
		return err
	}
	f.fromResponse(data)
	t.save()
	return nil
}

// Delete removes the folder and everything in it
func (f *Folder) Delete(ctx context.Context, matching bool) error {
	if err := f.client.DeleteFolder(ctx, f.id, api.IfMatch(f.state.Condition(matching)...)); err != nil {
		return err
	}
	f.state.MarkDeleted()
	return nil
}

func foldersFrom(c *api.Client, data []api.Folder) []*Folder {
	out := make([]*Folder, 0, len(data))
	for i := range data {
		out = append(out, newFolderFrom(c, &data[i]))
	}
	return out
}

// Children is a snapshot of the content of a folder
type Children struct {
	state attr.State
	id    string

	folders attr.Field[[]*Folder]
	files   attr.Field[[]*File]
}

func newChildrenFrom(c *api.Client, id string, data *api.Children) *Children {
	ch := &Children{id: id}
	ch.folders = attr.Local[[]*Folder](&ch.state, "folders")
	ch.files = attr.Local[[]*File](&ch.state, "files")

	files := make([]*File, 0, len(data.Files))
	for i := range data.Files {
		files = append(files, newFileFrom(c, &data.Files[i]))
	}
	ch.folders.Fill(foldersFrom(c, data.Folders))
	ch.files.Fill(files)
	return ch
}

// ID is the identifier of the listed folder
func (ch *Children) ID() string { return ch.id }

func (ch *Children) Folders() []*Folder {
	v, _ := ch.folders.Stored()
	return v
}

func (ch *Children) Files() []*File {
	v, _ := ch.files.Stored()
	return v
}
