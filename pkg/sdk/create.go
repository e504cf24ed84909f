package sdk

import (
	"context"

	"github.com/Ning0612/aerofs-go/pkg/api"
)

// CreateUser makes an account and returns it fully loaded
func CreateUser(ctx context.Context, c *api.Client, email, firstName, lastName string) (*User, error) {
	u := NewUser(c, email)
	if err := u.Create(ctx, firstName, lastName); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateFolder makes a folder under parentID and returns it fully loaded
func CreateFolder(ctx context.Context, c *api.Client, parentID, name string) (*Folder, error) {
	f := NewFolder(c, "")
	if err := f.Create(ctx, parentID, name); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFile makes an empty file under parentID and returns it fully loaded
func CreateFile(ctx context.Context, c *api.Client, parentID, name string) (*File, error) {
	f := NewFile(c, "")
	if err := f.Create(ctx, parentID, name); err != nil {
		return nil, err
	}
	return f, nil
}

func CreateSharedFolder(ctx context.Context, c *api.Client, name string) (*SharedFolder, error) {
	sf := NewSharedFolder(c, "")
	if err := sf.Create(ctx, name); err != nil {
		return nil, err
	}
	return sf, nil
}

func CreateGroup(ctx context.Context, c *api.Client, name string) (*Group, error) {
	g := NewGroup(c, "")
	if err := g.Create(ctx, name); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateInvitee invites email to sign up on behalf of inviterEmail
func CreateInvitee(ctx context.Context, c *api.Client, inviterEmail, email string) (*Invitee, error) {
	i := NewInvitee(c, email)
	if err := i.Create(ctx, inviterEmail); err != nil {
		return nil, err
	}
	return i, nil
}

// ListUsers returns one page of the organization's users and whether more
// follow. Users are paginated by cursor.
func ListUsers(ctx context.Context, c *api.Client, page api.Page) ([]*User, bool, error) {
	data, err := c.ListUsers(ctx, page)
	if err != nil {
		return nil, false, err
	}
	users := make([]*User, 0, len(data.Data))
	for i := range data.Data {
		u := NewUser(c, data.Data[i].Email)
		if err := u.fromResponse(&data.Data[i]); err != nil {
			return nil, false, err
		}
		users = append(users, u)
	}
	return users, data.HasMore, nil
}
