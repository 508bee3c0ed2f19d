package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/thereayou/trail-service/internal/models"
)

func TestGuard(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	trail := func(public, deleted bool) *models.Trail {
		return &models.Trail{
			OwnerID:     owner,
			TrailFields: models.TrailFields{Name: "Ridge", IsPublic: public},
			IsDeleted:   deleted,
		}
	}

	tests := []struct {
		name       string
		actor      *uuid.UUID
		trail      *models.Trail
		wantRead   bool
		wantMutate bool
	}{
		{name: "owner of public trail", actor: &owner, trail: trail(true, false), wantRead: true, wantMutate: true},
		{name: "owner of private trail", actor: &owner, trail: trail(false, false), wantRead: true, wantMutate: true},
		{name: "stranger on public trail", actor: &stranger, trail: trail(true, false), wantRead: true},
		{name: "stranger on private trail", actor: &stranger, trail: trail(false, false)},
		{name: "anonymous on public trail", trail: trail(true, false), wantRead: true},
		{name: "anonymous on private trail", trail: trail(false, false)},
		{name: "owner of deleted trail", actor: &owner, trail: trail(true, true)},
		{name: "nil trail", actor: &owner},
	}

	var g Guard
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantRead, g.CanRead(tt.actor, tt.trail))

			actor := uuid.Nil
			if tt.actor != nil {
				actor = *tt.actor
			}
			assert.Equal(t, tt.wantMutate, g.CanMutate(actor, tt.trail))
		})
	}
}
