package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersdata/backend/internal/model"
	"usersdata/backend/internal/store"
)

func strPtr(s string) *string { return &s }

func TestCreateAndGetUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, model.User{Name: "A", Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotZero(t, created.CreatedAt)
	assert.NotZero(t, created.UpdatedAt)

	got, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "h1", got.PasswordHash)

	byEmail, err := s.GetUserByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.GetUserByID(ctx, "missing-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, model.User{Name: "A", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	// Case-insensitive: the same address must never produce a second row.
	_, err = s.CreateUser(ctx, model.User{Name: "B", Email: "A@X.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrConflict)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestListUsers_EmptyIsValid(t *testing.T) {
	s := NewStore()

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestReplaceUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, model.User{Name: "A", Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	err = s.ReplaceUser(ctx, created.ID, model.User{Name: "B", Email: "b@x.com", PasswordHash: "h2"})
	require.NoError(t, err)

	got, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, "b@x.com", got.Email)
	assert.Equal(t, "h2", got.PasswordHash)

	err = s.ReplaceUser(ctx, "missing-id", model.User{Name: "X", Email: "x@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReplaceUser_EmailConflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, model.User{Name: "A", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	b, err := s.CreateUser(ctx, model.User{Name: "B", Email: "b@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	err = s.ReplaceUser(ctx, b.ID, model.User{Name: "B", Email: "a@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, store.ErrConflict)

	// Keeping your own address is not a conflict.
	err = s.ReplaceUser(ctx, b.ID, model.User{Name: "B2", Email: "b@x.com", PasswordHash: "h"})
	assert.NoError(t, err)
}

func TestPatchUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, model.User{Name: "A", Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	err = s.PatchUser(ctx, created.ID, model.UserPatch{Name: strPtr("A2")})
	require.NoError(t, err)

	got, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "h1", got.PasswordHash)

	err = s.PatchUser(ctx, created.ID, model.UserPatch{
		Email:        strPtr("a2@x.com"),
		PasswordHash: strPtr("h2"),
	})
	require.NoError(t, err)

	got, err = s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2@x.com", got.Email)
	assert.Equal(t, "h2", got.PasswordHash)

	err = s.PatchUser(ctx, "missing-id", model.UserPatch{Name: strPtr("X")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, model.User{Name: "A", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, created.ID))

	_, err = s.GetUserByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteUser(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The address is free again after deletion.
	_, err = s.CreateUser(ctx, model.User{Name: "A2", Email: "a@x.com", PasswordHash: "h"})
	assert.NoError(t, err)
}
