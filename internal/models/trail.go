package models

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyHard        Difficulty = "Hard"
	DifficultyChallenging Difficulty = "Challenging"
)

// Valid допускает пустое значение: сложность у маршрута необязательна
func (d Difficulty) Valid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyChallenging:
		return true
	}
	return false
}

// TrailFields - изменяемая владельцем часть маршрута
type TrailFields struct {
	Name               string     `gorm:"size:200;not null" json:"name"`
	Summary            string     `gorm:"size:1000" json:"summary"`
	Description        string     `gorm:"type:text" json:"description"`
	LengthMiles        *float64   `gorm:"type:numeric(8,2)" json:"lengthMiles,omitempty"`
	LengthKm           *float64   `gorm:"type:numeric(8,2)" json:"lengthKm,omitempty"`
	Difficulty         Difficulty `gorm:"size:20;check:difficulty IN ('','Easy','Moderate','Hard','Challenging')" json:"difficulty"`
	AccessibilityNotes string     `gorm:"size:500" json:"accessibilityNotes"`
	RouteType          string     `gorm:"size:50" json:"routeType"`
	NearestTown        string     `gorm:"size:100" json:"nearestTown"`
	StartPostcode      string     `gorm:"size:20" json:"startPostcode"`
	FinishLocation     string     `gorm:"size:200" json:"finishLocation"`
	FinishPostcode     string     `gorm:"size:20" json:"finishPostcode"`
	IsPublic           bool       `gorm:"not null;index" json:"isPublic"`
}

type Trail struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	TrailFields
	IsDeleted      bool       `gorm:"not null;index" json:"isDeleted"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty"`
	LastModifiedBy *uuid.UUID `gorm:"type:uuid" json:"lastModifiedBy,omitempty"`

	// Связи
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// Modification - кто и когда последним менял маршрут
type Modification struct {
	By uuid.UUID
	At time.Time
}
