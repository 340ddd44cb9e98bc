package postgres

import (
	"context"
	"fmt"
	"strings"

	"usersdata/backend/internal/model"
	"usersdata/backend/internal/store"
)

const userColumns = `id::text, name, email, password_hash, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := s.pool.QueryRow(ctx, `
		insert into public.users (name, email, password_hash)
		values ($1, $2, $3)
		returning `+userColumns+`
	`, u.Name, u.Email, u.PasswordHash).Scan(
		&out.ID,
		&out.Name,
		&out.Email,
		&out.PasswordHash,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		select `+userColumns+`
		from public.users
		where id = $1::uuid
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		select `+userColumns+`
		from public.users
		where lower(email) = lower($1)
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		select `+userColumns+`
		from public.users
		order by created_at asc
	`)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) ReplaceUser(ctx context.Context, id string, u model.User) error {
	cmdTag, err := s.pool.Exec(ctx, `
		update public.users
		set name = $2,
		    email = $3,
		    password_hash = $4,
		    updated_at = now()
		where id = $1::uuid
	`, id, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		return mapPgErr(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) PatchUser(ctx context.Context, id string, p model.UserPatch) error {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	appendSet := func(col string, v string) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		appendSet("name", *p.Name)
	}
	if p.Email != nil {
		appendSet("email", *p.Email)
	}
	if p.PasswordHash != nil {
		appendSet("password_hash", *p.PasswordHash)
	}

	query := `
		update public.users
		set ` + strings.Join(sets, ", ") + `
		where id = $1::uuid
	`
	cmdTag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapPgErr(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	cmdTag, err := s.pool.Exec(ctx, `
		delete from public.users
		where id = $1::uuid
	`, id)
	if err != nil {
		return mapPgErr(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
