package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smart-task-planner/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromTelegram finds or creates a user based on TelegramID and refreshes
// the Telegram profile fields. Preferences are left untouched.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID int64, firstName, username, timezone string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		if user.FirstName == firstName && user.Username == username {
			return &user, nil
		}
		updates := map[string]interface{}{
			"first_name": firstName,
			"username":   username,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		user.FirstName = firstName
		user.Username = username
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{
			TelegramID: telegramID,
			FirstName:  firstName,
			Username:   username,
			Mood:       "Energetic",
			Timezone:   timezone,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, user *model.User, name string) error {
	if err := r.updateField(ctx, user, "name", name); err != nil {
		return err
	}
	user.Name = name
	return nil
}

func (r *UserRepository) UpdateMood(ctx context.Context, user *model.User, mood string) error {
	if err := r.updateField(ctx, user, "mood", mood); err != nil {
		return err
	}
	user.Mood = mood
	return nil
}

func (r *UserRepository) UpdateTimezone(ctx context.Context, user *model.User, timezone string) error {
	if err := r.updateField(ctx, user, "timezone", timezone); err != nil {
		return err
	}
	user.Timezone = timezone
	return nil
}

func (r *UserRepository) updateField(ctx context.Context, user *model.User, column string, value string) error {
	if err := r.db.WithContext(ctx).Model(user).Update(column, value).Error; err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
