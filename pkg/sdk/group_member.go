package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// GroupMember is a user belonging to a group
type GroupMember struct {
	client *api.Client
	state  attr.State
	group  *Group
	email  string

	firstName attr.Field[string]
	lastName  attr.Field[string]
}

func NewGroupMember(c *api.Client, groupID, email string) *GroupMember {
	m := &GroupMember{client: c, group: NewGroup(c, groupID), email: email}
	m.firstName = attr.ReadOnly[string](&m.state, "first_name", m.Load)
	m.lastName = attr.ReadOnly[string](&m.state, "last_name", m.Load)
	return m
}

// Group returns an unloaded reference to the group
func (m *GroupMember) Group() *Group { return m.group }

func (m *GroupMember) Email() string { return m.email }

// User returns an unloaded reference to the member's account
func (m *GroupMember) User() *User { return NewUser(m.client, m.email) }

func (m *GroupMember) FirstName(ctx context.Context) (string, error) { return m.firstName.Get(ctx) }

func (m *GroupMember) LastName(ctx context.Context) (string, error) { return m.lastName.Get(ctx) }

func (m *GroupMember) Equal(other *GroupMember) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.group.Equal(other.group) && m.email == other.email
}

func (m *GroupMember) fromResponse(data *api.GroupMember) {
	m.email = data.Email
	m.firstName.Fill(data.FirstName)
	m.lastName.Fill(data.LastName)
}

func (m *GroupMember) Load(ctx context.Context) error {
	data, err := m.client.GetGroupMember(ctx, m.group.ID(), m.email)
	if err != nil {
		return err
	}
	m.fromResponse(data)
	return nil
}

// Create adds email to the group
func (m *GroupMember) Create(ctx context.Context, email string) error {
	data, err := m.client.AddGroupMember(ctx, m.group.ID(), email)
	if err != nil {
		return err
	}
	m.fromResponse(data)
	return nil
}

func (m *GroupMember) Delete(ctx context.Context) error {
	if err := m.client.RemoveGroupMember(ctx, m.group.ID(), m.email); err != nil {
		return err
	}
	m.state.MarkDeleted()
	return nil
}
