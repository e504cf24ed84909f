package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// SFGroupMember is a group with access to a shared folder
type SFGroupMember struct {
	client       *api.Client
	state        attr.State
	sharedFolder *SharedFolder
	id           string

	name        attr.Field[string]
	permissions attr.Field[Permissions]
}

func NewSFGroupMember(c *api.Client, shareID, groupID string) *SFGroupMember {
	g := &SFGroupMember{client: c, sharedFolder: NewSharedFolder(c, shareID), id: groupID}
	g.name = attr.ReadOnly[string](&g.state, "name", g.Load)
	g.permissions = attr.Synced[Permissions](&g.state, "permissions", g.Load, g.pushPermissions)
	return g
}

func newSFGroupMemberFrom(c *api.Client, shareID string, data *api.SFGroupMember) (*SFGroupMember, error) {
	g := NewSFGroupMember(c, shareID, data.ID)
	if err := g.fromResponse(data); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *SFGroupMember) SharedFolder() *SharedFolder { return g.sharedFolder }

// ID is the group identifier
func (g *SFGroupMember) ID() string { return g.id }

// Group returns an unloaded reference to the group itself
func (g *SFGroupMember) Group() *Group { return NewGroup(g.client, g.id) }

func (g *SFGroupMember) Name(ctx context.Context) (string, error) { return g.name.Get(ctx) }

func (g *SFGroupMember) Permissions(ctx context.Context) (Permissions, error) {
	return g.permissions.Get(ctx)
}

func (g *SFGroupMember) SetPermissions(ctx context.Context, perms Permissions) error {
	return g.permissions.Set(ctx, perms)
}

func (g *SFGroupMember) Equal(other *SFGroupMember) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.sharedFolder.Equal(other.sharedFolder) && g.id == other.id
}

func (g *SFGroupMember) fromResponse(data *api.SFGroupMember) error {
	perms, err := domain.ParsePermissions(data.Permissions)
	if err != nil {
		return err
	}
	g.id = data.ID
	g.name.Fill(data.Name)
	g.permissions.Fill(perms)
	return nil
}

func (g *SFGroupMember) Load(ctx context.Context) error {
	data, err := g.client.GetSFGroupMember(ctx, g.sharedFolder.ID(), g.id)
	if err != nil {
		return err
	}
	return g.fromResponse(data)
}

func (g *SFGroupMember) pushPermissions(ctx context.Context, perms Permissions) error {
	data, err := g.client.UpdateSFGroupMember(ctx, g.sharedFolder.ID(), g.id, perms.Strings())
	if err != nil {
		return err
	}
	return g.fromResponse(data)
}

// Create adds the group groupID to the share with perms
func (g *SFGroupMember) Create(ctx context.Context, groupID string, perms Permissions) error {
	data, err := g.client.AddSFGroupMember(ctx, g.sharedFolder.ID(), groupID, perms.Strings())
	if err != nil {
		return err
	}
	return g.fromResponse(data)
}

func (g *SFGroupMember) Delete(ctx context.Context) error {
	if err := g.client.RemoveSFGroupMember(ctx, g.sharedFolder.ID(), g.id); err != nil {
		return err
	}
	g.state.MarkDeleted()
	return nil
}
