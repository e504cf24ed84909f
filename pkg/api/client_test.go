package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/logger"
	"github.com/Ning0612/aerofs-go/internal/testutil"
)

func newTestClient(t *testing.T) (*Client, *testutil.Server) {
	t.Helper()
	srv := testutil.NewServer(t)
	c, err := NewClient(Config{Hostname: "unused", AccessToken: "tok"}, WithBaseURL(srv.BaseURL()))
	require.NoError(t, err)
	return c, srv
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{Hostname: "share.example.com"})
	assert.ErrorIs(t, err, domain.ErrEmptyAccessToken)

	_, err = NewClient(Config{AccessToken: "tok"})
	assert.Error(t, err, "hostname is required without a base URL")

	c, err := NewClient(Config{Hostname: "share.example.com", AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "https://share.example.com/api/v1.3", c.BaseURL())

	c, err = NewClient(Config{Hostname: "h:8080", AccessToken: "tok", APIVersion: "1.2", Scheme: "http"})
	require.NoError(t, err)
	assert.Equal(t, "http://h:8080/api/v1.2", c.BaseURL())
}

func TestDo_Headers(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/folders", testutil.JSON(http.StatusCreated, Folder{ID: "f1", Name: "docs"}))
	srv.Route("GET", "/folders/f1", testutil.JSON(http.StatusOK, Folder{ID: "f1"}))

	_, err := c.CreateFolder(context.Background(), "r1", "docs")
	require.NoError(t, err)
	_, err = c.GetFolder(context.Background(), "f1")
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)

	post := reqs[0]
	assert.Equal(t, "Bearer tok", post.Header.Get("Authorization"))
	assert.Equal(t, "strict", post.Header.Get("Endpoint-Consistency"))
	assert.Equal(t, "application/json", post.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"parent":"r1","name":"docs"}`, string(post.Body))

	get := reqs[1]
	assert.Equal(t, "Bearer tok", get.Header.Get("Authorization"))
	assert.Empty(t, get.Header.Get("Content-Type"), "no body, no content type")
	assert.Empty(t, get.Header.Get("If-Match"), "headers must not leak between requests")
}

func TestDo_ConditionalHeaders(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("DELETE", "/files/f1", testutil.Status(http.StatusNoContent))
	srv.Route("GET", "/files/f1", testutil.JSON(http.StatusOK, File{ID: "f1"}, "ETag", `"v2"`))

	ctx := context.Background()
	require.NoError(t, c.DeleteFile(ctx, "f1", IfMatch(`"v1"`, `"v0"`)))

	var h http.Header
	_, err := c.GetFile(ctx, "f1", IfNoneMatch(`"v1"`), ResponseHeader(&h))
	require.NoError(t, err)
	assert.Equal(t, `"v2"`, h.Get("ETag"))

	require.NoError(t, c.DeleteFile(ctx, "f1", IfMatch()))

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, `"v1", "v0"`, reqs[0].Header.Get("If-Match"))
	assert.Equal(t, `"v1"`, reqs[1].Header.Get("If-None-Match"))
	_, present := reqs[2].Header["If-Match"]
	assert.False(t, present, "empty token list sends no precondition")
}

func TestHTTPError_Mapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrPermissionDenied},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrAlreadyExists},
		{http.StatusPreconditionFailed, domain.ErrPreconditionFailed},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c, srv := newTestClient(t)
			srv.Route("GET", "/groups/g1", testutil.JSON(tt.status, map[string]string{
				"type":    "SOME_TYPE",
				"message": "nope",
			}))

			_, err := c.GetGroup(context.Background(), "g1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.NotErrorIs(t, err, domain.ErrProtocol)

			var he *HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, tt.status, he.StatusCode)
			assert.Equal(t, "SOME_TYPE", he.Code)
			assert.Equal(t, "nope", he.Message)
			assert.Contains(t, he.Error(), "/groups/g1")
		})
	}
}

func TestHTTPError_PlainBody(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/devices/d1", testutil.Raw(http.StatusInternalServerError, []byte("boom\n")))

	_, err := c.GetDevice(context.Background(), "d1")
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "GET /devices/d1: 500 Internal Server Error: boom", he.Error())
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestDo_EmptyBodySucceeds(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("PUT", "/devices/d1", testutil.Status(http.StatusOK))

	dev, err := c.UpdateDevice(context.Background(), "d1", "laptop")
	require.NoError(t, err)
	assert.Equal(t, "", dev.ID)
}

func TestDo_MalformedJSON(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/devices/d1", testutil.Raw(http.StatusOK, []byte("{not json")))

	_, err := c.GetDevice(context.Background(), "d1")
	assert.ErrorIs(t, err, domain.ErrProtocol)
}

func TestUserRoutes(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	srv.Route("GET", "/users", testutil.JSON(http.StatusOK, UserList{
		Data:    []User{{Email: "a@b.c"}},
		HasMore: true,
	}))
	srv.Route("PUT", "/users/a@b.c/password", testutil.Status(http.StatusNoContent))
	srv.Route("GET", "/users/a@b.c", testutil.JSON(http.StatusOK, map[string]any{
		"email": "a@b.c", "first_name": "A", "last_name": "B",
		"shares": []any{},
	}))

	list, err := c.ListUsers(ctx, Page{Limit: 10, After: "x@y.z"})
	require.NoError(t, err)
	assert.True(t, list.HasMore)
	require.Len(t, list.Data, 1)

	require.NoError(t, c.UpdateUserPassword(ctx, "a@b.c", `pa"ss`))

	u, err := c.GetUser(ctx, "a@b.c")
	require.NoError(t, err)
	require.NotNil(t, u.Shares, "present-but-empty list must be distinguishable")
	assert.Empty(t, *u.Shares)
	assert.Nil(t, u.Invitations)

	reqs := srv.Requests()
	assert.Equal(t, "after=x%40y.z&limit=10", reqs[0].Query)

	var pw string
	require.NoError(t, json.Unmarshal(reqs[1].Body, &pw))
	assert.Equal(t, `pa"ss`, pw)
	assert.Equal(t, `"pa\"ss"`, string(reqs[1].Body))
}

func TestGroupPagination(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("GET", "/groups", testutil.JSON(http.StatusOK, GroupList{}))

	_, err := c.ListGroups(context.Background(), Offset{Offset: 20, Results: 10})
	require.NoError(t, err)
	assert.Equal(t, "offset=20&results=10", srv.Requests()[0].Query)
}

func TestAcceptInvitation(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/users/a@b.c/invitations/s1", testutil.JSON(http.StatusCreated, SharedFolder{ID: "s1"}))

	sf, err := c.AcceptInvitation(context.Background(), "a@b.c", "s1", true)
	require.NoError(t, err)
	assert.Equal(t, "s1", sf.ID)
	assert.Equal(t, "external=1", srv.Requests()[0].Query)
}

func TestShareMemberRoutes(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Route("POST", "/shares/s1/members", testutil.JSON(http.StatusCreated, SFMember{Email: "a@b.c"}))

	_, err := c.AddSFMember(context.Background(), "s1", "a@b.c", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c","permissions":[]}`, string(srv.Requests()[0].Body))
}

func TestRouteEscaping(t *testing.T) {
	assert.Equal(t, "/users/a@b.c/devices", route("users", "a@b.c", "devices"))
	assert.Equal(t, "/folders/a%2Fb", route("folders", "a/b"))
}

func TestDo_DebugLogIsSanitized(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := logger.NewSlogLogger(logger.Config{Level: logger.LevelDebug, Console: buf})
	require.NoError(t, err)
	defer l.Shutdown()

	srv := testutil.NewServer(t)
	srv.Route("DELETE", "/auth/token/secret-token-1", testutil.Status(http.StatusNoContent))
	c, err := NewClient(Config{Hostname: "unused", AccessToken: "bearer-value-9"},
		WithBaseURL(srv.BaseURL()), WithLogger(l))
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "/auth/token/secret-token-1"))

	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "route=/auth/token/***")
	assert.Contains(t, out, "status=204")
	assert.NotContains(t, out, "secret-token-1")
	assert.NotContains(t, out, "bearer-value-9")
}
