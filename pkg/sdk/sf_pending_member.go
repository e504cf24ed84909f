package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// SFPendingMember is an invitation to a shared folder that was not answered yet
type SFPendingMember struct {
	client       *api.Client
	state        attr.State
	sharedFolder *SharedFolder
	email        string

	firstName   attr.Field[string]
	lastName    attr.Field[string]
	inviter     attr.Field[*User]
	permissions attr.Field[Permissions]
	note        attr.Field[string]
}

func NewSFPendingMember(c *api.Client, shareID, email string) *SFPendingMember {
	p := &SFPendingMember{client: c, sharedFolder: NewSharedFolder(c, shareID), email: email}
	p.firstName = attr.ReadOnly[string](&p.state, "first_name", p.Load)
	p.lastName = attr.ReadOnly[string](&p.state, "last_name", p.Load)
	p.inviter = attr.ReadOnly[*User](&p.state, "inviter", p.Load)
	p.permissions = attr.ReadOnly[Permissions](&p.state, "permissions", p.Load)
	p.note = attr.ReadOnly[string](&p.state, "note", p.Load)
	return p
}

func newSFPendingMemberFrom(c *api.Client, shareID string, data *api.SFPendingMember) (*SFPendingMember, error) {
	p := NewSFPendingMember(c, shareID, data.Email)
	if err := p.fromResponse(data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SFPendingMember) SharedFolder() *SharedFolder { return p.sharedFolder }

func (p *SFPendingMember) Email() string { return p.email }

// FirstName is unavailable when the invitee has no account yet
func (p *SFPendingMember) FirstName(ctx context.Context) (string, error) {
	return p.firstName.Get(ctx)
}

// LastName is unavailable when the invitee has no account yet
func (p *SFPendingMember) LastName(ctx context.Context) (string, error) {
	return p.lastName.Get(ctx)
}

func (p *SFPendingMember) Inviter(ctx context.Context) (*User, error) { return p.inviter.Get(ctx) }

func (p *SFPendingMember) Permissions(ctx context.Context) (Permissions, error) {
	return p.permissions.Get(ctx)
}

func (p *SFPendingMember) Note(ctx context.Context) (string, error) { return p.note.Get(ctx) }

func (p *SFPendingMember) Equal(other *SFPendingMember) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.sharedFolder.Equal(other.sharedFolder) && p.email == other.email
}

func (p *SFPendingMember) fromResponse(data *api.SFPendingMember) error {
	perms, err := domain.ParsePermissions(data.Permissions)
	if err != nil {
		return err
	}

	p.email = data.Email
	fillOptional(&p.firstName, data.FirstName)
	fillOptional(&p.lastName, data.LastName)
	p.inviter.Fill(NewUser(p.client, data.InvitedBy))
	p.permissions.Fill(perms)
	fillOptional(&p.note, data.Note)
	return nil
}

func (p *SFPendingMember) Load(ctx context.Context) error {
	data, err := p.client.GetSFPendingMember(ctx, p.sharedFolder.ID(), p.email)
	if err != nil {
		return err
	}
	return p.fromResponse(data)
}

// Create invites email to the share
func (p *SFPendingMember) Create(ctx context.Context, email string, perms Permissions, note string) error {
	data, err := p.client.AddSFPendingMember(ctx, p.sharedFolder.ID(), email, perms.Strings(), note)
	if err != nil {
		return err
	}
	return p.fromResponse(data)
}

// Delete revokes the invitation
func (p *SFPendingMember) Delete(ctx context.Context) error {
	if err := p.client.RemoveSFPendingMember(ctx, p.sharedFolder.ID(), p.email); err != nil {
		return err
	}
	p.state.MarkDeleted()
	return nil
}

// fillOptional fills f when v is present and clears it otherwise
func fillOptional[T any](f *attr.Field[T], v *T) {
	if v == nil {
		f.Clear()
		return
	}
	f.Fill(*v)
}
