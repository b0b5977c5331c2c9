package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLitePersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	p, err := OpenSQLite(ctx, path)
	require.NoError(t, err)

	v, err := p.Load(ctx)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, p.Save(ctx, true))
	require.NoError(t, p.Close())

	p, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer p.Close()

	v, err = p.Load(ctx)
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, p.Save(ctx, false))
	v, err = p.Load(ctx)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestStateRequiresInit(t *testing.T) {
	s := NewState(&MemoryPersister{})
	assert.ErrorIs(t, s.Set(context.Background(), true), ErrNotInitialized)
}

func TestStateLoadsOnceAndWritesThrough(t *testing.T) {
	ctx := context.Background()
	p := &MemoryPersister{value: true}
	s := NewState(p)
	require.NoError(t, s.Init(ctx))
	assert.True(t, s.Authenticated())

	p.value = false
	require.NoError(t, s.Init(ctx))
	assert.True(t, s.Authenticated())

	require.NoError(t, s.Set(ctx, false))
	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, p.Saves())
}

type failingPersister struct{}

func (failingPersister) Load(context.Context) (bool, error) { return false, nil }
func (failingPersister) Save(context.Context, bool) error   { return errors.New("disk full") }

func TestStateKeepsValueWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	s := NewState(failingPersister{})
	require.NoError(t, s.Init(ctx))
	assert.Error(t, s.Set(ctx, true))
	assert.False(t, s.Authenticated())
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	s := NewState(nil)
	require.NoError(t, s.Init(ctx))
	a := NewAuthenticator(DefaultCredentials(), s)

	res, err := a.Login(ctx, "admin", "wrong")
	require.NoError(t, err)
	assert.Equal(t, LoginResult{Message: MsgLoginFailed}, res)
	assert.False(t, s.Authenticated())

	res, err = a.Login(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, res.Success)

	res, err = a.Login(ctx, "admin", "sistemas")
	require.NoError(t, err)
	assert.Equal(t, LoginResult{Success: true, Message: MsgLoginOK, User: DisplayName}, res)
	assert.True(t, s.Authenticated())

	res, err = a.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, MsgLogoutOK, res.Message)
	assert.False(t, a.State().Authenticated())
}
