package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/trail-service/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateTrail(ctx context.Context, trail *models.Trail) (uuid.UUID, error) {
	if err := d.db.WithContext(ctx).Omit("Owner").Create(trail).Error; err != nil {
		return uuid.Nil, translateError(err)
	}
	return trail.ID, nil
}

// FindTrailByID не возвращает удалённые маршруты
func (d *Database) FindTrailByID(ctx context.Context, id uuid.UUID) (*models.Trail, error) {
	var trail models.Trail
	err := d.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&trail).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &trail, nil
}

// UpdateTrail перезаписывает изменяемые поля одним UPDATE. Владелец и флаг
// удаления в условии: маршрут, удалённый или переданный между проверкой и
// записью, не изменится.
func (d *Database) UpdateTrail(ctx context.Context, id uuid.UUID, f models.TrailFields, mod models.Modification) error {
	res := d.db.WithContext(ctx).Model(&models.Trail{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, mod.By, false).
		Updates(map[string]interface{}{
			"name":                f.Name,
			"summary":             f.Summary,
			"description":         f.Description,
			"length_miles":        f.LengthMiles,
			"length_km":           f.LengthKm,
			"difficulty":          f.Difficulty,
			"accessibility_notes": f.AccessibilityNotes,
			"route_type":          f.RouteType,
			"nearest_town":        f.NearestTown,
			"start_postcode":      f.StartPostcode,
			"finish_location":     f.FinishLocation,
			"finish_postcode":     f.FinishPostcode,
			"is_public":           f.IsPublic,
			"last_modified_at":    mod.At,
			"last_modified_by":    mod.By,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteTrail только выставляет is_deleted; обратного перехода нет
func (d *Database) SoftDeleteTrail(ctx context.Context, id uuid.UUID, mod models.Modification) error {
	res := d.db.WithContext(ctx).Model(&models.Trail{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, mod.By, false).
		Updates(map[string]interface{}{
			"is_deleted":       true,
			"last_modified_at": mod.At,
			"last_modified_by": mod.By,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) ListPublicTrails(ctx context.Context) ([]models.Trail, error) {
	return d.SearchTrails(ctx, "", "")
}

// SearchTrails: пустые term и difficulty не сужают выборку
func (d *Database) SearchTrails(ctx context.Context, term string, difficulty models.Difficulty) ([]models.Trail, error) {
	query := publicTrails(d.db.WithContext(ctx))

	if term != "" {
		pattern := "%" + escapeLike(term) + "%"
		query = query.Where("(name ILIKE ? OR nearest_town ILIKE ? OR finish_location ILIKE ?)", pattern, pattern, pattern)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	trails := make([]models.Trail, 0)
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&trails).Error
	if err != nil {
		return nil, err
	}
	return trails, nil
}

func publicTrails(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Trail{}).Where("is_public = ? AND is_deleted = ?", true, false)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
