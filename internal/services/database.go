package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/trail-service/internal/models"
)

// UserStore - контракт хранилища пользователей
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TrailStore - контракт хранилища маршрутов. Все чтения исключают удалённые
// записи, списки - ещё и непубличные.
type TrailStore interface {
	FindTrailByID(ctx context.Context, id uuid.UUID) (*models.Trail, error)
	CreateTrail(ctx context.Context, trail *models.Trail) (uuid.UUID, error)
	UpdateTrail(ctx context.Context, id uuid.UUID, fields models.TrailFields, mod models.Modification) error
	SoftDeleteTrail(ctx context.Context, id uuid.UUID, mod models.Modification) error
	ListPublicTrails(ctx context.Context) ([]models.Trail, error)
	SearchTrails(ctx context.Context, term string, difficulty models.Difficulty) ([]models.Trail, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(userID uuid.UUID, username string) (string, time.Time, error)
}

// TrailListCache кэширует результаты ListPublic/Search. Ключ берётся один
// раз до чтения хранилища и используется и для GetList, и для SetList.
// Ошибки кэша не прерывают запрос.
type TrailListCache interface {
	ListKey(ctx context.Context, term string, difficulty models.Difficulty) (string, error)
	GetList(ctx context.Context, key string) ([]models.Trail, bool, error)
	SetList(ctx context.Context, key string, trails []models.Trail) error
	Invalidate(ctx context.Context) error
}
