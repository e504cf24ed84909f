package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// User is an account on the appliance, identified by email
type User struct {
	client *api.Client
	state  attr.State
	email  string

	firstName   attr.Field[string]
	lastName    attr.Field[string]
	shares      attr.Field[[]*SharedFolder]
	invitations attr.Field[[]*Invitation]
	password    attr.Field[string]
	twoFactor   attr.Field[bool]
	devices     attr.Field[[]*Device]
}

func NewUser(c *api.Client, email string) *User {
	u := &User{client: c, email: email}
	u.firstName = attr.Synced[string](&u.state, "first_name", u.Load, u.pushFirstName)
	u.lastName = attr.Synced[string](&u.state, "last_name", u.Load, u.pushLastName)
	u.shares = attr.ReadOnly[[]*SharedFolder](&u.state, "shares", u.Load)
	u.invitations = attr.ReadOnly[[]*Invitation](&u.state, "invitations", u.Load)
	u.password = attr.WriteOnly[string](&u.state, "password", u.pushPassword)
	u.twoFactor = attr.Synced[bool](&u.state, "two_factor", u.loadTwoFactor, u.pushTwoFactor)
	u.devices = attr.ReadOnly[[]*Device](&u.state, "devices", u.loadDevices)
	return u
}

func (u *User) Email() string { return u.email }

func (u *User) FirstName(ctx context.Context) (string, error) { return u.firstName.Get(ctx) }

func (u *User) SetFirstName(ctx context.Context, v string) error { return u.firstName.Set(ctx, v) }

func (u *User) LastName(ctx context.Context) (string, error) { return u.lastName.Get(ctx) }

func (u *User) SetLastName(ctx context.Context, v string) error { return u.lastName.Set(ctx, v) }

// Shares is unavailable unless the token grants access to shares
func (u *User) Shares(ctx context.Context) ([]*SharedFolder, error) { return u.shares.Get(ctx) }

// Invitations is unavailable unless the token grants access to invitations
func (u *User) Invitations(ctx context.Context) ([]*Invitation, error) {
	return u.invitations.Get(ctx)
}

// SetPassword changes the password. An empty password removes it.
func (u *User) SetPassword(ctx context.Context, password string) error {
	return u.password.Set(ctx, password)
}

// TwoFactor reports whether two-factor authentication is enforced
func (u *User) TwoFactor(ctx context.Context) (bool, error) { return u.twoFactor.Get(ctx) }

// SetTwoFactor can only disable two-factor authentication. Enabling it
// returns ErrNoRoute.
func (u *User) SetTwoFactor(ctx context.Context, enforce bool) error {
	return u.twoFactor.Set(ctx, enforce)
}

func (u *User) Devices(ctx context.Context) ([]*Device, error) { return u.devices.Get(ctx) }

func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.email == other.email
}

// fromResponse assigns every field. Shares and invitations are only
// present when the token carries the matching scopes.
func (u *User) fromResponse(data *api.User) error {
	var shares []*SharedFolder
	if data.Shares != nil {
		shares = make([]*SharedFolder, 0, len(*data.Shares))
		for i := range *data.Shares {
			sf, err := newSharedFolderFrom(u.client, &(*data.Shares)[i])
			if err != nil {
				return err
			}
			shares = append(shares, sf)
		}
	}
	var invitations []*Invitation
	if data.Invitations != nil {
		invitations = make([]*Invitation, 0, len(*data.Invitations))
		for i := range *data.Invitations {
			inv, err := newInvitationFrom(u.client, u.email, &(*data.Invitations)[i])
			if err != nil {
				return err
			}
			invitations = append(invitations, inv)
		}
	}

	u.firstName.Fill(data.FirstName)
	u.lastName.Fill(data.LastName)
	if data.Shares != nil {
		u.shares.Fill(shares)
	}
	if data.Invitations != nil {
		u.invitations.Fill(invitations)
	}
	return nil
}

func (u *User) Load(ctx context.Context) error {
	data, err := u.client.GetUser(ctx, u.email)
	if err != nil {
		return err
	}
	return u.fromResponse(data)
}

func (u *User) loadTwoFactor(ctx context.Context) error {
	data, err := u.client.GetUserTwoFactor(ctx, u.email)
	if err != nil {
		return err
	}
	u.twoFactor.Fill(data.Enforce)
	return nil
}

func (u *User) loadDevices(ctx context.Context) error {
	data, err := u.client.ListUserDevices(ctx, u.email)
	if err != nil {
		return err
	}
	devices := make([]*Device, 0, len(data))
	for i := range data {
		devices = append(devices, newDeviceFrom(u.client, &data[i]))
	}
	u.devices.Fill(devices)
	return nil
}

// pushFirstName sends both names since the route replaces them together
func (u *User) pushFirstName(ctx context.Context, first string) error {
	last, err := u.lastName.Get(ctx)
	if err != nil {
		return err
	}
	return u.update(ctx, first, last)
}

func (u *User) pushLastName(ctx context.Context, last string) error {
	first, err := u.firstName.Get(ctx)
	if err != nil {
		return err
	}
	return u.update(ctx, first, last)
}

func (u *User) update(ctx context.Context, first, last string) error {
	data, err := u.client.UpdateUser(ctx, u.email, first, last)
	if err != nil {
		return err
	}
	return u.fromResponse(data)
}

func (u *User) pushPassword(ctx context.Context, password string) error {
	if password == "" {
		return u.client.DeleteUserPassword(ctx, u.email)
	}
	return u.client.UpdateUserPassword(ctx, u.email, password)
}

func (u *User) pushTwoFactor(ctx context.Context, enforce bool) error {
	if enforce {
		// the stored value was never applied
		u.twoFactor.Clear()
		return &attr.FieldError{Field: "two_factor", Err: domain.ErrNoRoute}
	}
	return u.client.DisableUserTwoFactor(ctx, u.email)
}

// Create makes the account
func (u *User) Create(ctx context.Context, firstName, lastName string) error {
	data, err := u.client.CreateUser(ctx, u.email, firstName, lastName)
	if err != nil {
		return err
	}
	return u.fromResponse(data)
}

func (u *User) Delete(ctx context.Context) error {
	if err := u.client.DeleteUser(ctx, u.email); err != nil {
		return err
	}
	u.state.MarkDeleted()
	return nil
}
