package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"usersdata/backend/internal/model"
	"usersdata/backend/internal/store"
)

// Store is a mutex-guarded in-memory account store. It backs the tests and
// the no-DSN development mode; uniqueness and not-found semantics match the
// Postgres store.
type Store struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]model.User),
	}
}

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.User{}, store.ErrConflict
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ReplaceUser(_ context.Context, id string, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if err := s.emailTaken(u.Email, id); err != nil {
		return err
	}

	existing.Name = u.Name
	existing.Email = u.Email
	existing.PasswordHash = u.PasswordHash
	existing.UpdatedAt = time.Now().UTC()
	s.users[id] = existing
	return nil
}

func (s *Store) PatchUser(_ context.Context, id string, p model.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if p.Email != nil {
		if err := s.emailTaken(*p.Email, id); err != nil {
			return err
		}
		existing.Email = *p.Email
	}
	if p.Name != nil {
		existing.Name = *p.Name
	}
	if p.PasswordHash != nil {
		existing.PasswordHash = *p.PasswordHash
	}
	existing.UpdatedAt = time.Now().UTC()
	s.users[id] = existing
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// emailTaken checks uniqueness against every account except selfID.
// Callers hold s.mu.
func (s *Store) emailTaken(email, selfID string) error {
	for _, u := range s.users {
		if u.ID != selfID && strings.EqualFold(u.Email, email) {
			return store.ErrConflict
		}
	}
	return nil
}
