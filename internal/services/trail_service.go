package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/trail-service/internal/database"
	"github.com/thereayou/trail-service/internal/models"
)

// TrailInput - поля маршрута из запроса. Fields.IsPublic игнорируется:
// видимость задаёт Public, и nil означает "публичный".
type TrailInput struct {
	Fields models.TrailFields
	Public *bool
}

func (in TrailInput) fields() models.TrailFields {
	f := in.Fields
	f.IsPublic = in.Public == nil || *in.Public
	return f
}

type SearchQuery struct {
	Term       string
	Difficulty models.Difficulty
}

type TrailService struct {
	users  UserStore
	trails TrailStore
	cache  TrailListCache
	guard  Guard
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewTrailService: cache может быть nil, тогда списки всегда читаются из хранилища
func NewTrailService(users UserStore, trails TrailStore, cache TrailListCache, log logrus.FieldLogger) *TrailService {
	return &TrailService{
		users:  users,
		trails: trails,
		cache:  cache,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *TrailService) Create(ctx context.Context, ownerID uuid.UUID, in TrailInput) (uuid.UUID, error) {
	if _, err := s.users.FindUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return uuid.Nil, ErrUnauthenticated
		}
		return uuid.Nil, internal("find owner", err)
	}

	trail := &models.Trail{
		OwnerID:     ownerID,
		TrailFields: in.fields(),
	}
	id, err := s.trails.CreateTrail(ctx, trail)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return uuid.Nil, ErrUnauthenticated
		}
		return uuid.Nil, internal("create trail", err)
	}

	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"trail_id": id, "user_id": ownerID}).Info("trail created")
	return id, nil
}

// Get: actor == nil для анонимного запроса
func (s *TrailService) Get(ctx context.Context, trailID uuid.UUID, actor *uuid.UUID) (*models.Trail, error) {
	trail, err := s.find(ctx, trailID)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanRead(actor, trail) {
		return nil, ErrForbidden
	}
	return trail, nil
}

func (s *TrailService) Update(ctx context.Context, trailID, actorID uuid.UUID, in TrailInput) error {
	if err := s.authorizeMutation(ctx, trailID, actorID, "update"); err != nil {
		return err
	}

	mod := models.Modification{By: actorID, At: s.now()}
	if err := s.trails.UpdateTrail(ctx, trailID, in.fields(), mod); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return internal("update trail", err)
	}

	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"trail_id": trailID, "user_id": actorID}).Info("trail updated")
	return nil
}

// Delete - мягкое удаление, строка остаётся в хранилище
func (s *TrailService) Delete(ctx context.Context, trailID, actorID uuid.UUID) error {
	if err := s.authorizeMutation(ctx, trailID, actorID, "delete"); err != nil {
		return err
	}

	mod := models.Modification{By: actorID, At: s.now()}
	if err := s.trails.SoftDeleteTrail(ctx, trailID, mod); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return internal("delete trail", err)
	}

	s.invalidate(ctx)
	s.log.WithFields(logrus.Fields{"trail_id": trailID, "user_id": actorID}).Info("trail deleted")
	return nil
}

func (s *TrailService) ListPublic(ctx context.Context) ([]models.Trail, error) {
	return s.list(ctx, SearchQuery{}, func() ([]models.Trail, error) {
		return s.trails.ListPublicTrails(ctx)
	})
}

// Search без фильтров совпадает с ListPublic
func (s *TrailService) Search(ctx context.Context, q SearchQuery) ([]models.Trail, error) {
	if q.Term == "" && q.Difficulty == "" {
		return s.ListPublic(ctx)
	}
	return s.list(ctx, q, func() ([]models.Trail, error) {
		return s.trails.SearchTrails(ctx, q.Term, q.Difficulty)
	})
}

func (s *TrailService) find(ctx context.Context, trailID uuid.UUID) (*models.Trail, error) {
	trail, err := s.trails.FindTrailByID(ctx, trailID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internal("find trail", err)
	}
	return trail, nil
}

func (s *TrailService) authorizeMutation(ctx context.Context, trailID, actorID uuid.UUID, action string) error {
	trail, err := s.find(ctx, trailID)
	if err != nil {
		return err
	}
	if !s.guard.CanMutate(actorID, trail) {
		s.log.WithFields(logrus.Fields{
			"trail_id": trailID,
			"user_id":  actorID,
			"action":   action,
		}).Warn("forbidden trail mutation")
		return ErrForbidden
	}
	return nil
}

func (s *TrailService) list(ctx context.Context, q SearchQuery, load func() ([]models.Trail, error)) ([]models.Trail, error) {
	key := s.cacheKey(ctx, q)
	if key != "" {
		trails, ok, err := s.cache.GetList(ctx, key)
		if err != nil {
			s.log.WithError(err).Warn("trail cache read failed")
		} else if ok {
			return trails, nil
		}
	}

	trails, err := load()
	if err != nil {
		return nil, internal("list trails", err)
	}

	if key != "" {
		if err := s.cache.SetList(ctx, key, trails); err != nil {
			s.log.WithError(err).Warn("trail cache write failed")
		}
	}
	return trails, nil
}

// cacheKey возвращает "" если кэш выключен или недоступен
func (s *TrailService) cacheKey(ctx context.Context, q SearchQuery) string {
	if s.cache == nil {
		return ""
	}
	key, err := s.cache.ListKey(ctx, q.Term, q.Difficulty)
	if err != nil {
		s.log.WithError(err).Warn("trail cache read failed")
		return ""
	}
	return key
}

func (s *TrailService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Error("trail cache invalidation failed")
	}
}
