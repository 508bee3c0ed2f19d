package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/trail-service/internal/database/memstore"
	"github.com/thereayou/trail-service/internal/models"
	"github.com/thereayou/trail-service/internal/services"
	"github.com/thereayou/trail-service/pkg/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	store  *memstore.Store
	tokens *auth.JWTManager
	auth   *services.AuthService
	trails *services.TrailService
	hook   *test.Hook
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCache(t, nil)
}

func newTestEnvWithCache(t *testing.T, cache services.TrailListCache) *testEnv {
	t.Helper()
	log, hook := test.NewNullLogger()
	store := memstore.New()
	tokens := auth.NewJWTManager(testSecret, time.Hour)
	passwords := auth.NewPasswordManager(bcrypt.MinCost)

	return &testEnv{
		store:  store,
		tokens: tokens,
		auth:   services.NewAuthService(store, passwords, tokens, log),
		trails: services.NewTrailService(store, store, cache, log),
		hook:   hook,
	}
}

func (e *testEnv) register(t *testing.T, username string) uuid.UUID {
	t.Helper()
	res, err := e.auth.Register(context.Background(), services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return res.UserID
}

func (e *testEnv) createTrail(t *testing.T, owner uuid.UUID, name string, mutate ...func(*services.TrailInput)) uuid.UUID {
	t.Helper()
	in := services.TrailInput{Fields: models.TrailFields{Name: name}}
	for _, m := range mutate {
		m(&in)
	}
	id, err := e.trails.Create(context.Background(), owner, in)
	require.NoError(t, err)
	return id
}

func boolPtr(b bool) *bool { return &b }
