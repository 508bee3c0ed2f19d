package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/trail-service/internal/handlers/dto"
	"github.com/thereayou/trail-service/internal/middleware"
	"github.com/thereayou/trail-service/internal/models"
	"github.com/thereayou/trail-service/internal/services"
)

type TrailHandler struct {
	trails *services.TrailService
	log    logrus.FieldLogger
}

func NewTrailHandler(trails *services.TrailService, log logrus.FieldLogger) *TrailHandler {
	RegisterValidators()
	return &TrailHandler{trails: trails, log: log}
}

// ListTrails возвращает публичные маршруты, новые первыми
func (h *TrailHandler) ListTrails(c *gin.Context) {
	trails, err := h.trails.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trails": formatTrails(trails)})
}

// SearchTrails фильтрует публичные маршруты по строке и сложности
func (h *TrailHandler) SearchTrails(c *gin.Context) {
	var req dto.SearchQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	trails, err := h.trails.Search(c.Request.Context(), services.SearchQuery{
		Term:       strings.TrimSpace(req.Q),
		Difficulty: models.Difficulty(req.Difficulty),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trails": formatTrails(trails)})
}

// GetTrail: приватный маршрут видит только владелец
func (h *TrailHandler) GetTrail(c *gin.Context) {
	trailID, ok := trailIDParam(c)
	if !ok {
		return
	}

	var actor *uuid.UUID
	if userID, ok := middleware.CurrentUserID(c); ok {
		actor = &userID
	}

	trail, err := h.trails.Get(c.Request.Context(), trailID, actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, formatTrail(trail))
}

func (h *TrailHandler) CreateTrail(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.TrailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	id, err := h.trails.Create(c.Request.Context(), userID, trailInput(req))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateTrail перезаписывает маршрут; доступно только владельцу
func (h *TrailHandler) UpdateTrail(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	trailID, ok := trailIDParam(c)
	if !ok {
		return
	}

	var req dto.TrailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}

	if err := h.trails.Update(c.Request.Context(), trailID, userID, trailInput(req)); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "trail updated successfully"})
}

// DeleteTrail помечает маршрут удалённым; доступно только владельцу
func (h *TrailHandler) DeleteTrail(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	trailID, ok := trailIDParam(c)
	if !ok {
		return
	}

	if err := h.trails.Delete(c.Request.Context(), trailID, userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "trail deleted successfully"})
}

func trailIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trail id"})
		return uuid.Nil, false
	}
	return id, true
}

func trailInput(req dto.TrailRequest) services.TrailInput {
	return services.TrailInput{
		Fields: models.TrailFields{
			Name:               strings.TrimSpace(req.Name),
			Summary:            req.Summary,
			Description:        req.Description,
			LengthMiles:        req.LengthMiles,
			LengthKm:           req.LengthKm,
			Difficulty:         models.Difficulty(req.Difficulty),
			AccessibilityNotes: req.AccessibilityNotes,
			RouteType:          req.RouteType,
			NearestTown:        req.NearestTown,
			StartPostcode:      req.StartPostcode,
			FinishLocation:     req.FinishLocation,
			FinishPostcode:     req.FinishPostcode,
		},
		Public: req.IsPublic,
	}
}

func formatTrails(trails []models.Trail) []dto.TrailResponse {
	res := make([]dto.TrailResponse, len(trails))
	for i := range trails {
		res[i] = formatTrail(&trails[i])
	}
	return res
}

// formatTrail не отдаёт флаг удаления: удалённые маршруты сюда не попадают
func formatTrail(t *models.Trail) dto.TrailResponse {
	return dto.TrailResponse{
		ID:                 t.ID,
		OwnerID:            t.OwnerID,
		Name:               t.Name,
		Summary:            t.Summary,
		Description:        t.Description,
		LengthMiles:        t.LengthMiles,
		LengthKm:           t.LengthKm,
		Difficulty:         string(t.Difficulty),
		AccessibilityNotes: t.AccessibilityNotes,
		RouteType:          t.RouteType,
		NearestTown:        t.NearestTown,
		StartPostcode:      t.StartPostcode,
		FinishLocation:     t.FinishLocation,
		FinishPostcode:     t.FinishPostcode,
		IsPublic:           t.IsPublic,
		CreatedAt:          t.CreatedAt,
		LastModifiedAt:     t.LastModifiedAt,
		LastModifiedBy:     t.LastModifiedBy,
	}
}
