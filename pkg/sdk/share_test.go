package sdk

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/testutil"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

func shareJSON() map[string]any {
	return map[string]any{
		"id": "s1", "name": "team", "is_external": true,
		"members": []any{map[string]any{
			"email": "a@b.c", "first_name": "Ada", "last_name": "L",
			"permissions": []string{"WRITE"},
		}},
		"groups": []any{map[string]any{
			"id": "g1", "name": "eng", "permissions": []string{},
		}},
		"pending": []any{map[string]any{
			"email": "new@b.c", "invited_by": "a@b.c",
			"permissions": []string{"WRITE", "MANAGE"}, "note": "welcome",
		}},
		"caller_effective_permissions": []string{"WRITE"},
	}
}

func TestSharedFolder_Load(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/shares/s1", testutil.JSON(http.StatusOK, shareJSON()))
	ctx := context.Background()

	sf := NewSharedFolder(c, "s1")
	external, err := sf.IsExternal(ctx)
	require.NoError(t, err)
	assert.True(t, external)

	members, err := sf.Members(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].SharedFolder().Equal(sf))
	role, err := members[0].Role(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, role)

	groups, err := sf.Groups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].Group().ID())

	pending, err := sf.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	note, err := pending[0].Note(ctx)
	require.NoError(t, err)
	assert.Equal(t, "welcome", note)
	inviter, err := pending[0].Inviter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", inviter.Email())
	assert.Equal(t, 1, srv.Count("GET", "/shares/s1"))

	// no account yet, so the names stay unavailable after a reload
	srv.Route("GET", "/shares/s1/pending/new@b.c", testutil.JSON(http.StatusOK, shareJSON()["pending"].([]any)[0]))
	_, err = pending[0].FirstName(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSharedFolder_UnknownPermission(t *testing.T) {
	c, srv := newTestClient(t)
	data := shareJSON()
	data["caller_effective_permissions"] = []string{"OWN_EVERYTHING"}
	srv.Route("GET", "/shares/s1", testutil.JSON(http.StatusOK, data))

	sf := NewSharedFolder(c, "s1")
	_, err := sf.Name(context.Background())
	assert.ErrorIs(t, err, ErrProtocol)
	assert.False(t, sf.name.Loaded(), "a rejected payload assigns nothing")
}

func TestSFMember_UpdatePermissions(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/shares/s1/members/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "Ada", "last_name": "L", "permissions": []string{"WRITE"},
	}, "ETag", `"m1"`))
	srv.Route("PUT", "/shares/s1/members/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "Ada", "last_name": "L", "permissions": []string{"WRITE", "MANAGE"},
	}, "ETag", `"m2"`))
	ctx := context.Background()

	m := NewSFMember(c, "s1", "a@b.c")
	require.NoError(t, m.Load(ctx))

	owner := Permissions{domain.PermissionWrite, domain.PermissionManage}
	require.NoError(t, m.UpdatePermissions(ctx, owner, true))

	role, err := m.Role(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, role)
	assert.Equal(t, []string{`"m2"`}, m.ETags())

	require.NoError(t, m.SetPermissions(ctx, Permissions{domain.PermissionWrite}))

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, `"m1"`, reqs[1].Header.Get("If-Match"))
	assert.JSONEq(t, `{"permissions":["WRITE","MANAGE"]}`, string(reqs[1].Body))
	assert.Empty(t, reqs[2].Header.Get("If-Match"), "field writes are unconditional")
}

func TestSFMember_DeleteMatching(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/shares/s1/members/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "Ada", "last_name": "L", "permissions": []string{},
	}, "ETag", `"m1"`))
	srv.Route("DELETE", "/shares/s1/members/a@b.c", testutil.Status(http.StatusNoContent))
	ctx := context.Background()

	m := NewSFMember(c, "s1", "a@b.c")
	require.NoError(t, m.Load(ctx))
	require.NoError(t, m.Delete(ctx, true))

	assert.Equal(t, `"m1"`, srv.Requests()[1].Header.Get("If-Match"))
	assert.ErrorIs(t, m.UpdatePermissions(ctx, nil, false), ErrDeleted)
}

func TestSFGroupMember_Create(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/shares/s1/groups", testutil.JSON(http.StatusCreated, map[string]any{
		"id": "g1", "name": "eng", "permissions": []string{"MANAGE"},
	}))
	ctx := context.Background()

	g := NewSFGroupMember(c, "s1", "")
	require.NoError(t, g.Create(ctx, "g1", Permissions{domain.PermissionManage}))
	assert.Equal(t, "g1", g.ID())

	name, err := g.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eng", name)
	assert.JSONEq(t, `{"id":"g1","permissions":["MANAGE"]}`, string(srv.Requests()[0].Body))
}

func TestGroup(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/groups", testutil.JSON(http.StatusCreated, map[string]any{
		"id": "g1", "name": "eng",
		"members": []any{map[string]any{"email": "a@b.c", "first_name": "Ada", "last_name": "L"}},
	}))
	srv.Route("GET", "/groups", testutil.JSON(http.StatusOK, map[string]any{
		"data":     []any{map[string]any{"id": "g1", "name": "eng", "members": []any{}}},
		"has_more": false,
	}))
	srv.Route("DELETE", "/groups/g1", testutil.Status(http.StatusNoContent))
	ctx := context.Background()

	g, err := CreateGroup(ctx, c, "eng")
	require.NoError(t, err)
	members, err := g.Members(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].Group().Equal(g))
	first, err := members[0].FirstName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", first)

	groups, more, err := ListGroups(ctx, c, api.Offset{Offset: 0, Results: 10})
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Equal(g))

	require.NoError(t, g.Delete(ctx))
	_, err = g.Name(ctx)
	assert.ErrorIs(t, err, ErrDeleted)
}

func TestInvitation_Accept(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/users/a@b.c/invitations/s1", testutil.JSON(http.StatusOK, map[string]any{
		"share_id": "s1", "share_name": "team", "invited_by": "boss@b.c", "permissions": []string{"WRITE"},
	}))
	srv.Route("POST", "/users/a@b.c/invitations/s1", testutil.JSON(http.StatusCreated, shareJSON()))
	ctx := context.Background()

	inv := NewInvitation(c, "a@b.c", "s1")
	inviter, err := inv.Inviter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "boss@b.c", inviter.Email())

	sf, err := inv.Accept(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "s1", sf.ID())
	assert.Equal(t, "external=1", srv.Requests()[1].Query)

	_, err = inv.ShareName(ctx)
	assert.ErrorIs(t, err, ErrDeleted, "an accepted invitation is gone")
}

func TestInvitee(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/invitees", testutil.JSON(http.StatusCreated, map[string]any{
		"email_to": "new@b.c", "email_from": "a@b.c",
	}))
	ctx := context.Background()

	i, err := CreateInvitee(ctx, c, "a@b.c", "new@b.c")
	require.NoError(t, err)

	inviter, err := i.Inviter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", inviter.Email())
	assert.JSONEq(t, `{"email_to":"new@b.c","email_from":"a@b.c"}`, string(srv.Requests()[0].Body))

	srv.Route("GET", "/invitees/new@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email_to": "new@b.c", "email_from": "a@b.c", "signup_code": "c0de",
	}))
	code, err := i.SignupCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c0de", code)
}
