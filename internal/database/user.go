package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/trail-service/internal/models"
)

func (d *Database) CreateUser(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error) {
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       true,
	}
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		return uuid.Nil, translateError(err)
	}
	return user.ID, nil
}

func (d *Database) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	err := d.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	err := d.db.WithContext(ctx).
		Where("username = ? AND active = ?", username, true).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// ExistsByUsername учитывает и неактивных пользователей: индекс уникален по всей таблице
func (d *Database) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (d *Database) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (d *Database) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	res := d.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
