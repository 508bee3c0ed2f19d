package dto

import (
	"time"

	"github.com/google/uuid"
)

// TrailRequest используется и для создания, и для полной перезаписи маршрута
type TrailRequest struct {
	Name               string   `json:"name" binding:"required,notblank,max=200"`
	Summary            string   `json:"summary" binding:"max=1000"`
	Description        string   `json:"description"`
	LengthMiles        *float64 `json:"lengthMiles" binding:"omitempty,gte=0"`
	LengthKm           *float64 `json:"lengthKm" binding:"omitempty,gte=0"`
	Difficulty         string   `json:"difficulty" binding:"omitempty,difficulty"`
	AccessibilityNotes string   `json:"accessibilityNotes" binding:"max=500"`
	RouteType          string   `json:"routeType" binding:"max=50"`
	NearestTown        string   `json:"nearestTown" binding:"max=100"`
	StartPostcode      string   `json:"startPostcode" binding:"max=20"`
	FinishLocation     string   `json:"finishLocation" binding:"max=200"`
	FinishPostcode     string   `json:"finishPostcode" binding:"max=20"`
	IsPublic           *bool    `json:"isPublic"`
}

type SearchQuery struct {
	Q          string `form:"q" binding:"max=200"`
	Difficulty string `form:"difficulty" binding:"omitempty,difficulty"`
}

type TrailResponse struct {
	ID                 uuid.UUID  `json:"id"`
	OwnerID            uuid.UUID  `json:"ownerId"`
	Name               string     `json:"name"`
	Summary            string     `json:"summary,omitempty"`
	Description        string     `json:"description,omitempty"`
	LengthMiles        *float64   `json:"lengthMiles,omitempty"`
	LengthKm           *float64   `json:"lengthKm,omitempty"`
	Difficulty         string     `json:"difficulty,omitempty"`
	AccessibilityNotes string     `json:"accessibilityNotes,omitempty"`
	RouteType          string     `json:"routeType,omitempty"`
	NearestTown        string     `json:"nearestTown,omitempty"`
	StartPostcode      string     `json:"startPostcode,omitempty"`
	FinishLocation     string     `json:"finishLocation,omitempty"`
	FinishPostcode     string     `json:"finishPostcode,omitempty"`
	IsPublic           bool       `json:"isPublic"`
	CreatedAt          time.Time  `json:"createdAt"`
	LastModifiedAt     *time.Time `json:"lastModifiedAt,omitempty"`
	LastModifiedBy     *uuid.UUID `json:"lastModifiedBy,omitempty"`
}
