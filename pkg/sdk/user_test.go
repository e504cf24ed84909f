package sdk

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ning0612/aerofs-go/internal/attr"
	"github.com/Ning0612/aerofs-go/internal/testutil"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

func TestUser_ScopeGatedFields(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/users/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "Ada", "last_name": "Lovelace",
		"shares": []any{map[string]any{
			"id": "s1", "name": "team", "is_external": false,
			"members": []any{}, "groups": []any{}, "pending": []any{},
			"caller_effective_permissions": []string{"WRITE", "MANAGE"},
		}},
	}))
	ctx := context.Background()

	u := NewUser(c, "a@b.c")
	shares, err := u.Shares(ctx)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	perms, err := shares[0].CallerPermissions(ctx)
	require.NoError(t, err)
	assert.True(t, perms.Has(Permission("MANAGE")))

	_, err = u.Invitations(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)

	var fe *attr.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "invitations", fe.Field)
}

func TestUser_SetFirstName(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/users/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "Ada", "last_name": "Lovelace",
	}))
	srv.Route("PUT", "/users/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "Augusta", "last_name": "Lovelace",
	}))
	ctx := context.Background()

	u := NewUser(c, "a@b.c")
	require.NoError(t, u.SetFirstName(ctx, "Augusta"))

	first, err := u.FirstName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", first)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.JSONEq(t, `{"email":"a@b.c","first_name":"Augusta","last_name":"Lovelace"}`, string(reqs[1].Body))
}

func TestUser_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		method   string
		status   int
	}{
		{"set", "hunter2", "PUT", http.StatusNoContent},
		{"remove", "", "DELETE", http.StatusNoContent},
		{"server error", "hunter2", "PUT", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(t)
			srv.Route(tt.method, "/users/a@b.c/password", testutil.Status(tt.status))
			ctx := context.Background()

			u := NewUser(c, "a@b.c")
			err := u.SetPassword(ctx, tt.password)
			if tt.status >= 300 {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			_, err = u.password.Get(ctx)
			assert.ErrorIs(t, err, ErrWriteOnly)
			_, stored := u.password.Stored()
			assert.False(t, stored, "password must not be retained")
			assert.Equal(t, 1, srv.Count(tt.method, "/users/a@b.c/password"))
		})
	}
}

func TestUser_TwoFactor(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/users/a@b.c/two_factor", testutil.JSON(http.StatusOK, map[string]bool{"enforce": true}))
	srv.Route("DELETE", "/users/a@b.c/two_factor", testutil.Status(http.StatusNoContent))
	ctx := context.Background()

	u := NewUser(c, "a@b.c")
	enforced, err := u.TwoFactor(ctx)
	require.NoError(t, err)
	assert.True(t, enforced)

	err = u.SetTwoFactor(ctx, true)
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.False(t, u.twoFactor.Loaded(), "a refused value is not kept")

	require.NoError(t, u.SetTwoFactor(ctx, false))
	enforced, err = u.TwoFactor(ctx)
	require.NoError(t, err)
	assert.False(t, enforced)

	assert.Equal(t, 1, srv.Count("GET", "/users/a@b.c/two_factor"))
	assert.Equal(t, 1, srv.Count("DELETE", "/users/a@b.c/two_factor"))
}

func TestUser_Devices(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/users/a@b.c/devices", testutil.JSON(http.StatusOK, []any{
		map[string]any{"id": "d1", "owner": "a@b.c", "name": "laptop", "os_family": "Linux",
			"install_date": "2023-05-01T00:00:00Z"},
	}))
	srv.Route("GET", "/devices/d1/status", testutil.JSON(http.StatusOK, map[string]any{
		"online": false, "last_seen": "2024-01-01T12:00:00Z",
	}))
	ctx := context.Background()

	u := NewUser(c, "a@b.c")
	devices, err := u.Devices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)

	d := devices[0]
	owner, err := d.Owner(ctx)
	require.NoError(t, err)
	assert.True(t, owner.Equal(u))

	status, err := d.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Online)
	assert.Equal(t, 2024, status.LastSeen.Year())

	family, err := d.OSFamily(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Linux", family)
	assert.Len(t, srv.Requests(), 2)
}

func TestDevice_SetName(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("PUT", "/devices/d1", testutil.JSON(http.StatusOK, map[string]any{
		"id": "d1", "owner": "a@b.c", "name": "desktop", "os_family": "Windows",
		"install_date": "2023-05-01T00:00:00Z",
	}))
	ctx := context.Background()

	d := NewDevice(c, "d1")
	require.NoError(t, d.SetName(ctx, "desktop"))

	family, err := d.OSFamily(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Windows", family)
	assert.JSONEq(t, `{"name":"desktop"}`, string(srv.Requests()[0].Body))
}

func TestCreateUserAndDelete(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/users", testutil.JSON(http.StatusCreated, map[string]any{
		"email": "n@b.c", "first_name": "New", "last_name": "User",
	}))
	srv.Route("DELETE", "/users/n@b.c", testutil.Status(http.StatusNoContent))
	ctx := context.Background()

	u, err := CreateUser(ctx, c, "n@b.c", "New", "User")
	require.NoError(t, err)
	last, err := u.LastName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "User", last)

	require.NoError(t, u.Delete(ctx))
	_, err = u.FirstName(ctx)
	assert.ErrorIs(t, err, ErrDeleted)
	assert.Len(t, srv.Requests(), 2)
}

func TestListUsers(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/users", testutil.JSON(http.StatusOK, map[string]any{
		"data": []any{
			map[string]any{"email": "a@b.c", "first_name": "A", "last_name": "B"},
		},
		"has_more": true,
	}))

	users, more, err := ListUsers(context.Background(), c, api.Page{Limit: 1, After: "z@b.c"})
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.c", users[0].Email())
	assert.Equal(t, "after=z%40b.c&limit=1", srv.Requests()[0].Query)
}
