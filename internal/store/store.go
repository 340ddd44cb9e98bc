package store

import (
	"context"
	"errors"

	"usersdata/backend/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// Store is the persistence surface for the account relation. Implementations
// report a duplicate email as ErrConflict and a targeted read/update/delete
// that touched zero rows as ErrNotFound; everything else is a store failure.
type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ReplaceUser(ctx context.Context, id string, u model.User) error
	PatchUser(ctx context.Context, id string, p model.UserPatch) error
	DeleteUser(ctx context.Context, id string) error
}
