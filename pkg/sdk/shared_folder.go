package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// SharedFolder is a folder shared between several users and groups
type SharedFolder struct {
	client *api.Client
	state  attr.State
	id     string

	name              attr.Field[string]
	isExternal        attr.Field[bool]
	members           attr.Field[[]*SFMember]
	groups            attr.Field[[]*SFGroupMember]
	pending           attr.Field[[]*SFPendingMember]
	callerPermissions attr.Field[Permissions]
}

func NewSharedFolder(c *api.Client, id string) *SharedFolder {
	sf := &SharedFolder{client: c, id: id}
	sf.name = attr.ReadOnly[string](&sf.state, "name", sf.Load)
	sf.isExternal = attr.ReadOnly[bool](&sf.state, "is_external", sf.Load)
	sf.members = attr.ReadOnly[[]*SFMember](&sf.state, "members", sf.Load)
	sf.groups = attr.ReadOnly[[]*SFGroupMember](&sf.state, "groups", sf.Load)
	sf.pending = attr.ReadOnly[[]*SFPendingMember](&sf.state, "pending", sf.Load)
	sf.callerPermissions = attr.ReadOnly[Permissions](&sf.state, "caller_permissions", sf.Load)
	return sf
}

func newSharedFolderFrom(c *api.Client, data *api.SharedFolder) (*SharedFolder, error) {
	sf := NewSharedFolder(c, data.ID)
	if err := sf.fromResponse(data); err != nil {
		return nil, err
	}
	return sf, nil
}

func (sf *SharedFolder) ID() string { return sf.id }

func (sf *SharedFolder) Name(ctx context.Context) (string, error) { return sf.name.Get(ctx) }

// IsExternal reports whether the share lives outside the caller's root
func (sf *SharedFolder) IsExternal(ctx context.Context) (bool, error) {
	return sf.isExternal.Get(ctx)
}

func (sf *SharedFolder) Members(ctx context.Context) ([]*SFMember, error) {
	return sf.members.Get(ctx)
}

func (sf *SharedFolder) Groups(ctx context.Context) ([]*SFGroupMember, error) {
	return sf.groups.Get(ctx)
}

func (sf *SharedFolder) Pending(ctx context.Context) ([]*SFPendingMember, error) {
	return sf.pending.Get(ctx)
}

// CallerPermissions is what the token owner may do in this share
func (sf *SharedFolder) CallerPermissions(ctx context.Context) (Permissions, error) {
	return sf.callerPermissions.Get(ctx)
}

func (sf *SharedFolder) Equal(other *SharedFolder) bool {
	if sf == nil || other == nil {
		return sf == other
	}
	return sf.id == other.id
}

func (sf *SharedFolder) fromResponse(data *api.SharedFolder) error {
	members := make([]*SFMember, 0, len(data.Members))
	for i := range data.Members {
		m, err := newSFMemberFrom(sf.client, data.ID, &data.Members[i])
		if err != nil {
			return err
		}
		members = append(members, m)
	}
	groups := make([]*SFGroupMember, 0, len(data.Groups))
	for i := range data.Groups {
		g, err := newSFGroupMemberFrom(sf.client, data.ID, &data.Groups[i])
		if err != nil {
			return err
		}
		groups = append(groups, g)
	}
	pending := make([]*SFPendingMember, 0, len(data.Pending))
	for i := range data.Pending {
		p, err := newSFPendingMemberFrom(sf.client, data.ID, &data.Pending[i])
		if err != nil {
			return err
		}
		pending = append(pending, p)
	}
	perms, err := domain.ParsePermissions(data.CallerEffectivePermissions)
	if err != nil {
		return err
	}

	sf.id = data.ID
	sf.name.Fill(data.Name)
	sf.isExternal.Fill(data.IsExternal)
	sf.members.Fill(members)
	sf.groups.Fill(groups)
	sf.pending.Fill(pending)
	sf.callerPermissions.Fill(perms)
	return nil
}

func (sf *SharedFolder) Load(ctx context.Context) error {
	data, err := sf.client.GetSharedFolder(ctx, sf.id)
	if err != nil {
		return err
	}
	return sf.fromResponse(data)
}

// Create makes a new shared folder and adopts its identifier
func (sf *SharedFolder) Create(ctx context.Context, name string) error {
	data, err := sf.client.CreateSharedFolder(ctx, name)
	if err != nil {
		return err
	}
	return sf.fromResponse(data)
}
