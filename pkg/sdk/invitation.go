package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// Invitation is an offer made to a user to join a shared folder
type Invitation struct {
	client *api.Client
	state  attr.State
	user   *User
	id     string

	shareName   attr.Field[string]
	inviter     attr.Field[*User]
	permissions attr.Field[Permissions]
}

// NewInvitation returns an unloaded reference to the invitation of email to
// the share shareID
func NewInvitation(c *api.Client, email, shareID string) *Invitation {
	inv := &Invitation{client: c, user: NewUser(c, email), id: shareID}
	inv.shareName = attr.ReadOnly[string](&inv.state, "share_name", inv.Load)
	inv.inviter = attr.ReadOnly[*User](&inv.state, "inviter", inv.Load)
	inv.permissions = attr.ReadOnly[Permissions](&inv.state, "permissions", inv.Load)
	return inv
}

func newInvitationFrom(c *api.Client, email string, data *api.Invitation) (*Invitation, error) {
	inv := NewInvitation(c, email, data.ShareID)
	if err := inv.fromResponse(data); err != nil {
		return nil, err
	}
	return inv, nil
}

// User returns an unloaded reference to the invited user
func (inv *Invitation) User() *User { return inv.user }

// ID is the identifier of the share
func (inv *Invitation) ID() string { return inv.id }

func (inv *Invitation) ShareName(ctx context.Context) (string, error) {
	return inv.shareName.Get(ctx)
}

func (inv *Invitation) Inviter(ctx context.Context) (*User, error) { return inv.inviter.Get(ctx) }

func (inv *Invitation) Permissions(ctx context.Context) (Permissions, error) {
	return inv.permissions.Get(ctx)
}

func (inv *Invitation) Equal(other *Invitation) bool {
	if inv == nil || other == nil {
		return inv == other
	}
	return inv.user.Equal(other.user) && inv.id == other.id
}

func (inv *Invitation) fromResponse(data *api.Invitation) error {
	perms, err := domain.ParsePermissions(data.Permissions)
	if err != nil {
		return err
	}
	inv.id = data.ShareID
	inv.shareName.Fill(data.ShareName)
	inv.inviter.Fill(NewUser(inv.client, data.InvitedBy))
	inv.permissions.Fill(perms)
	return nil
}

func (inv *Invitation) Load(ctx context.Context) error {
	data, err := inv.client.GetInvitation(ctx, inv.user.Email(), inv.id)
	if err != nil {
		return err
	}
	return inv.fromResponse(data)
}

// Accept joins the share. With external set the share is not synced to the
// user's devices. The invitation no longer exists afterwards.
func (inv *Invitation) Accept(ctx context.Context, external bool) (*SharedFolder, error) {
	if inv.state.Deleted() {
		return nil, &attr.FieldError{Field: "share_id", Err: domain.ErrDeleted}
	}
	data, err := inv.client.AcceptInvitation(ctx, inv.user.Email(), inv.id, external)
	if err != nil {
		return nil, err
	}
	inv.state.MarkDeleted()
	return newSharedFolderFrom(inv.client, data)
}

// Delete ignores the invitation
func (inv *Invitation) Delete(ctx context.Context) error {
	if err := inv.client.IgnoreInvitation(ctx, inv.user.Email(), inv.id); err != nil {
		return err
	}
	inv.state.MarkDeleted()
	return nil
}
