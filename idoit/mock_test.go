package idoit_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/akyaiy/godoit/idoit"
	"github.com/akyaiy/godoit/internal/server/mock"
	"github.com/akyaiy/godoit/internal/server/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const route = "/src/jsonrpc.php"

func newMockClient(t *testing.T, username, password string) *idoit.Client {
	t.Helper()
	ep, err := mock.New(&mock.EndpointInit{
		APIKey:      "key",
		RequireAuth: true,
		Users:       map[string]string{"admin": "admin"},
		Route:       route,
	})
	require.NoError(t, err)
	t.Cleanup(func() { ep.Close() })

	srv := httptest.NewServer(ep.Handler)
	t.Cleanup(srv.Close)

	return idoit.New(&idoit.ClientInit{
		URL:      srv.URL + route,
		APIKey:   "key",
		Username: username,
		Password: password,
	})
}

func TestClient_AgainstMock_Session(t *testing.T) {
	ctx := context.Background()
	c := newMockClient(t, "admin", "admin")

	login, err := c.Login(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, login.SessionID)
	assert.Equal(t, login.SessionID, c.Session())
	assert.Equal(t, "admin", login.Username)

	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, mock.DefaultVersion, v.Version)

	_, err = c.Login(ctx)
	require.ErrorIs(t, err, idoit.ErrAlreadyLoggedIn)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Session())

	// basic auth takes over once the session is gone
	_, err = c.Version(ctx)
	require.NoError(t, err)
}

func TestClient_AgainstMock_Rejected(t *testing.T) {
	ctx := context.Background()

	c := newMockClient(t, "admin", "wrong")
	_, err := c.Login(ctx)
	var reqErr *idoit.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, rpc.ErrAuthFailed, reqErr.Code)
	assert.Empty(t, c.Session())

	anon := newMockClient(t, "", "")
	_, err = anon.Version(ctx)
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, rpc.ErrAuthFailed, reqErr.Code)

	c.SetSession("stale")
	_, err = c.Version(ctx)
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, rpc.ErrSessionExpired, reqErr.Code)
}

func TestClient_AgainstMock_ObjectLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newMockClient(t, "admin", "admin")
	_, err := c.Login(ctx)
	require.NoError(t, err)

	created, err := c.ObjectCreate(ctx, "C__OBJTYPE__SERVER", "web01", &idoit.ObjectCreateOptions{
		Description: idoit.String("frontend"),
	})
	require.NoError(t, err)
	require.True(t, created.Success)
	id := int64(created.ID)

	obj, err := c.ObjectRead(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "web01", obj.Title)
	assert.Equal(t, idoit.ID(5), obj.ObjectType)

	_, err = c.ObjectUpdate(ctx, id, "web01.example")
	require.NoError(t, err)

	hits, err := c.Search(ctx, "example")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "web01.example", hits[0].Value)

	_, err = c.ObjectArchive(ctx, id)
	require.NoError(t, err)
	obj, err = c.ObjectRead(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, idoit.ID(3), obj.Status)

	_, err = c.ObjectRecycle(ctx, id)
	require.NoError(t, err)
	_, err = c.ObjectMarkAsTemplate(ctx, id)
	require.NoError(t, err)
	obj, err = c.ObjectRead(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, idoit.ID(6), obj.Status)

	_, err = c.ObjectDelete(ctx, id, idoit.StatusDeleted)
	require.NoError(t, err)
	_, err = c.ObjectPurge(ctx, id)
	require.NoError(t, err)

	_, err = c.ObjectRead(ctx, id)
	var reqErr *idoit.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, rpc.ErrObjectNotFound, reqErr.Code)
}

func TestClient_AgainstMock_Constants(t *testing.T) {
	c := newMockClient(t, "admin", "admin")

	consts, err := c.Constants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Server", consts.ObjectTypes["C__OBJTYPE__SERVER"])
	assert.Contains(t, consts.Categories.Global, "C__CATG__GLOBAL")
	assert.Contains(t, consts.RecordStates, idoit.StatusArchived)
}
