package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// SFMember is a user with access to a shared folder
type SFMember struct {
	client       *api.Client
	state        attr.State
	sharedFolder *SharedFolder
	email        string

	firstName   attr.Field[string]
	lastName    attr.Field[string]
	permissions attr.Field[Permissions]
}

func NewSFMember(c *api.Client, shareID, email string) *SFMember {
	m := &SFMember{client: c, sharedFolder: NewSharedFolder(c, shareID), email: email}
	m.firstName = attr.ReadOnly[string](&m.state, "first_name", m.Load)
	m.lastName = attr.ReadOnly[string](&m.state, "last_name", m.Load)
	m.permissions = attr.Synced[Permissions](&m.state, "permissions", m.Load, m.pushPermissions)
	return m
}

func newSFMemberFrom(c *api.Client, shareID string, data *api.SFMember) (*SFMember, error) {
	m := NewSFMember(c, shareID, data.Email)
	if err := m.fromResponse(data); err != nil {
		return nil, err
	}
	return m, nil
}

// SharedFolder returns an unloaded reference to the share
func (m *SFMember) SharedFolder() *SharedFolder { return m.sharedFolder }

func (m *SFMember) Email() string { return m.email }

func (m *SFMember) FirstName(ctx context.Context) (string, error) { return m.firstName.Get(ctx) }

func (m *SFMember) LastName(ctx context.Context) (string, error) { return m.lastName.Get(ctx) }

func (m *SFMember) Permissions(ctx context.Context) (Permissions, error) {
	return m.permissions.Get(ctx)
}

// SetPermissions replaces the permissions unconditionally
func (m *SFMember) SetPermissions(ctx context.Context, perms Permissions) error {
	return m.permissions.Set(ctx, perms)
}

// Role is the role name matching the member's permissions
func (m *SFMember) Role(ctx context.Context) (Role, error) {
	perms, err := m.permissions.Get(ctx)
	if err != nil {
		return "", err
	}
	return domain.RoleFor(perms), nil
}

func (m *SFMember) ETags() []string { return m.state.ETags() }

// Equal compares the share and the email
func (m *SFMember) Equal(other *SFMember) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.sharedFolder.Equal(other.sharedFolder) && m.email == other.email
}

func (m *SFMember) fromResponse(data *api.SFMember) error {
	perms, err := domain.ParsePermissions(data.Permissions)
	if err != nil {
		return err
	}
	m.email = data.Email
	m.firstName.Fill(data.FirstName)
	m.lastName.Fill(data.LastName)
	m.permissions.Fill(perms)
	return nil
}

func (m *SFMember) Load(ctx context.Context) error {
	t := track(&m.state)
	data, err := m.client.GetSFMember(ctx, m.sharedFolder.ID(), m.email, t.option())
	if err != nil {
		return err
	}
	if err := m.fromResponse(data); err != nil {
		return err
	}
	t.save()
	return nil
}

func (m *SFMember) pushPermissions(ctx context.Context, perms Permissions) error {
	return m.UpdatePermissions(ctx, perms, false)
}

// UpdatePermissions replaces the permissions. With matching set the update
// only succeeds if the membership is unchanged since it was last seen.
func (m *SFMember) UpdatePermissions(ctx context.Context, perms Permissions, matching bool) error {
	if m.state.Deleted() {
		return &attr.FieldError{Field: "permissions", Err: domain.ErrDeleted}
	}
	t := track(&m.state)
	data, err := m.client.UpdateSFMember(ctx, m.sharedFolder.ID(), m.email, perms.Strings(),
		api.IfMatch(m.state.Condition(matching)...), t.option())
	if err != nil {
		return err
	}
	if err := m.fromResponse(data); err != nil {
		return err
	}
	t.save()
	return nil
}

// Create adds email to the share with perms
func (m *SFMember) Create(ctx context.Context, email string, perms Permissions) error {
	data, err := m.client.AddSFMember(ctx, m.sharedFolder.ID(), email, perms.Strings())
	if err != nil {
		return err
	}
	return m.fromResponse(data)
}

// Delete removes the member from the share
func (m *SFMember) Delete(ctx context.Context, matching bool) error {
	err := m.client.RemoveSFMember(ctx, m.sharedFolder.ID(), m.email,
		api.IfMatch(m.state.Condition(matching)...))
	if err != nil {
		return err
	}
	m.state.MarkDeleted()
	return nil
}
