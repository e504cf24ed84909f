package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// Invitee is someone invited to sign up on the appliance
type Invitee struct {
	client *api.Client
	state  attr.State
	email  string

	inviter    attr.Field[*User]
	signupCode attr.Field[string]
}

func NewInvitee(c *api.Client, email string) *Invitee {
	i := &Invitee{client: c, email: email}
	i.inviter = attr.ReadOnly[*User](&i.state, "inviter", i.Load)
	i.signupCode = attr.ReadOnly[string](&i.state, "signup_code", i.Load)
	return i
}

func (i *Invitee) Email() string { return i.email }

func (i *Invitee) Inviter(ctx context.Context) (*User, error) { return i.inviter.Get(ctx) }

// SignupCode is only disclosed to privileged callers
func (i *Invitee) SignupCode(ctx context.Context) (string, error) { return i.signupCode.Get(ctx) }

func (i *Invitee) Equal(other *Invitee) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.email == other.email
}

func (i *Invitee) fromResponse(data *api.Invitee) {
	i.email = data.EmailTo
	i.inviter.Fill(NewUser(i.client, data.EmailFrom))
	fillOptional(&i.signupCode, data.SignupCode)
}

func (i *Invitee) Load(ctx context.Context) error {
	data, err := i.client.GetInvitee(ctx, i.email)
	if err != nil {
		return err
	}
	i.fromResponse(data)
	return nil
}

// Create sends the sign-up invitation on behalf of inviterEmail
func (i *Invitee) Create(ctx context.Context, inviterEmail string) error {
	data, err := i.client.CreateInvitee(ctx, inviterEmail, i.email)
	if err != nil {
		return err
	}
	i.fromResponse(data)
	return nil
}

func (i *Invitee) Delete(ctx context.Context) error {
	if err := i.client.DeleteInvitee(ctx, i.email); err != nil {
		return err
	}
	i.state.MarkDeleted()
	return nil
}
