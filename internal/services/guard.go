package services

import (
	"github.com/google/uuid"
	"github.com/thereayou/trail-service/internal/models"
)

// Guard решает, что пользователь может делать с маршрутом.
// Отказ - это false, а не ошибка; в ErrForbidden его превращает вызывающий.
type Guard struct{}

// CanRead: публичный маршрут виден всем, приватный - только владельцу.
// actor == nil означает анонимный запрос.
func (Guard) CanRead(actor *uuid.UUID, trail *models.Trail) bool {
	if trail == nil || trail.IsDeleted {
		return false
	}
	if trail.IsPublic {
		return true
	}
	return actor != nil && *actor == trail.OwnerID
}

// CanMutate: менять и удалять может только владелец, независимо от видимости
func (Guard) CanMutate(actor uuid.UUID, trail *models.Trail) bool {
	if trail == nil || trail.IsDeleted {
		return false
	}
	return actor != uuid.Nil && actor == trail.OwnerID
}
