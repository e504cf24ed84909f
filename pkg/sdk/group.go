package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// Group is a named set of users that can be given access to shares
type Group struct {
	client *api.Client
	state  attr.State
	id     string

	name    attr.Field[string]
	members attr.Field[[]*GroupMember]
}

func NewGroup(c *api.Client, id string) *Group {
	g := &Group{client: c, id: id}
	g.name = attr.ReadOnly[string](&g.state, "name", g.Load)
	g.members = attr.ReadOnly[[]*GroupMember](&g.state, "members", g.Load)
	return g
}

func (g *Group) ID() string { return g.id }

func (g *Group) Name(ctx context.Context) (string, error) { return g.name.Get(ctx) }

func (g *Group) Members(ctx context.Context) ([]*GroupMember, error) { return g.members.Get(ctx) }

func (g *Group) Equal(other *Group) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.id == other.id
}

func (g *Group) fromResponse(data *api.Group) {
	members := make([]*GroupMember, 0, len(data.Members))
	for i := range data.Members {
		m := NewGroupMember(g.client, data.ID, data.Members[i].Email)
		m.fromResponse(&data.Members[i])
		members = append(members, m)
	}

	g.id = data.ID
	g.name.Fill(data.Name)
	g.members.Fill(members)
}

func (g *Group) Load(ctx context.Context) error {
	data, err := g.client.GetGroup(ctx, g.id)
	if err != nil {
		return err
	}
	g.fromResponse(data)
	return nil
}

// Create makes a group and adopts its identifier
func (g *Group) Create(ctx context.Context, name string) error {
	data, err := g.client.CreateGroup(ctx, name)
	if err != nil {
		return err
	}
	g.fromResponse(data)
	return nil
}

func (g *Group) Delete(ctx context.Context) error {
	if err := g.client.DeleteGroup(ctx, g.id); err != nil {
		return err
	}
	g.state.MarkDeleted()
	return nil
}

// ListGroups returns one page of the organization's groups and whether more
// follow. Groups are paginated by offset, unlike users.
func ListGroups(ctx context.Context, c *api.Client, page api.Offset) ([]*Group, bool, error) {
	data, err := c.ListGroups(ctx, page)
	if err != nil {
		return nil, false, err
	}
	groups := make([]*Group, 0, len(data.Data))
	for i := range data.Data {
		g := NewGroup(c, data.Data[i].ID)
		g.fromResponse(&data.Data[i])
		groups = append(groups, g)
	}
	return groups, data.HasMore, nil
}
