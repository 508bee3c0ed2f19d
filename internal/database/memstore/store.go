// Package memstore - хранилище в памяти с тем же контрактом, что и
// database.Database. Используется для локального запуска (DATABASE_URL=memory://)
// и в тестах.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/trail-service/internal/database"
	"github.com/thereayou/trail-service/internal/models"
)

type Store struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]models.User
	trails map[uuid.UUID]models.Trail
	seq    map[uuid.UUID]uint64 // порядок вставки: разрешает равные created_at
	next   uint64
	now    func() time.Time
}

func New() *Store {
	return &Store{
		users:  make(map[uuid.UUID]models.User),
		trails: make(map[uuid.UUID]models.Trail),
		seq:    make(map[uuid.UUID]uint64),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return uuid.Nil, &database.DuplicateKeyError{Field: "username", Constraint: "idx_users_username"}
		}
		if u.Email == email {
			return uuid.Nil, &database.DuplicateKeyError{Field: "email", Constraint: "idx_users_email"}
		}
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
		CreatedAt:    s.now(),
	}
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *Store) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || !u.Active {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username && u.Active {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	now := s.now()
	u.LastLoginAt = &now
	s.users[id] = u
	return nil
}

// SetUserActive нужен только тестам: через API пользователя не деактивировать
func (s *Store) SetUserActive(id uuid.UUID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		u.Active = active
		s.users[id] = u
	}
}

func (s *Store) CreateTrail(ctx context.Context, trail *models.Trail) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[trail.OwnerID]; !ok {
		return uuid.Nil, database.ErrNotFound
	}

	t := *trail
	t.ID = uuid.New()
	t.CreatedAt = s.now()
	s.trails[t.ID] = t
	s.next++
	s.seq[t.ID] = s.next

	trail.ID = t.ID
	trail.CreatedAt = t.CreatedAt
	return t.ID, nil
}

func (s *Store) FindTrailByID(ctx context.Context, id uuid.UUID) (*models.Trail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trails[id]
	if !ok || t.IsDeleted {
		return nil, database.ErrNotFound
	}
	return &t, nil
}

func (s *Store) UpdateTrail(ctx context.Context, id uuid.UUID, f models.TrailFields, mod models.Modification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trails[id]
	if !ok || t.IsDeleted || t.OwnerID != mod.By {
		return database.ErrNotFound
	}
	t.TrailFields = f
	at, by := mod.At, mod.By
	t.LastModifiedAt = &at
	t.LastModifiedBy = &by
	s.trails[id] = t
	return nil
}

func (s *Store) SoftDeleteTrail(ctx context.Context, id uuid.UUID, mod models.Modification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trails[id]
	if !ok || t.IsDeleted || t.OwnerID != mod.By {
		return database.ErrNotFound
	}
	t.IsDeleted = true
	at, by := mod.At, mod.By
	t.LastModifiedAt = &at
	t.LastModifiedBy = &by
	s.trails[id] = t
	return nil
}

func (s *Store) ListPublicTrails(ctx context.Context) ([]models.Trail, error) {
	return s.SearchTrails(ctx, "", "")
}

func (s *Store) SearchTrails(ctx context.Context, term string, difficulty models.Difficulty) ([]models.Trail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(term)
	trails := make([]models.Trail, 0)
	for _, t := range s.trails {
		if !t.IsPublic || t.IsDeleted {
			continue
		}
		if term != "" && !containsFold(term, t.Name, t.NearestTown, t.FinishLocation) {
			continue
		}
		if difficulty != "" && t.Difficulty != difficulty {
			continue
		}
		trails = append(trails, t)
	}

	sort.Slice(trails, func(i, j int) bool {
		if !trails[i].CreatedAt.Equal(trails[j].CreatedAt) {
			return trails[i].CreatedAt.After(trails[j].CreatedAt)
		}
		return s.seq[trails[i].ID] > s.seq[trails[j].ID]
	})
	return trails, nil
}

func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
