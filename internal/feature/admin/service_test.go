package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillloop/internal/domain"
	"skillloop/internal/repo"
)

func adminFixture() (*repo.MemStore, *Service) {
	store := repo.NewMemStore()
	store.AddUser(domain.User{ID: "u1", Name: "Alice", Email: "alice@krce.ac.in"})
	store.AddUser(domain.User{ID: "u2", Name: "Bob", Email: "bob@krce.ac.in"})
	return store, NewService(store, nil, zap.NewNop())
}

func TestSetBanned_Toggle(t *testing.T) {
	store, svc := adminFixture()
	ctx := context.Background()

	u, err := svc.SetBanned(ctx, "u1", true)
	require.NoError(t, err)
	assert.True(t, u.Banned)

	got, _ := store.Users().FindByID(ctx, "u1")
	assert.True(t, got.Banned, "flag persisted")

	u, err = svc.SetBanned(ctx, "u1", false)
	require.NoError(t, err)
	assert.False(t, u.Banned)
}

func TestSetBanned_KeepsUserRow(t *testing.T) {
	store, svc := adminFixture()
	ctx := context.Background()

	_, err := svc.SetBanned(ctx, "u2", true)
	require.NoError(t, err)

	// 封禁不是删除：行还在，历史引用不被破坏
	got, err := store.Users().FindByID(ctx, "u2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bob", got.Name)
}

func TestSetBanned_UnknownUser(t *testing.T) {
	_, svc := adminFixture()
	_, err := svc.SetBanned(context.Background(), "ghost", true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUsers_Search(t *testing.T) {
	_, svc := adminFixture()
	ctx := context.Background()

	all, err := svc.Users(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := svc.Users(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "u1", byName[0].ID)

	byEmail, err := svc.Users(ctx, "bob@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "u2", byEmail[0].ID)
}
