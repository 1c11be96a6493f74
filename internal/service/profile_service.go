package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smart-task-planner/internal/model"
	"smart-task-planner/internal/planner"
	"smart-task-planner/internal/repository"
)

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrEmptyName       = errors.New("name is empty")
)

// ProfileService manages per-user preferences: name, mood and timezone.
type ProfileService struct {
	userRepo        *repository.UserRepository
	defaultTimezone string
}

func NewProfileService(userRepo *repository.UserRepository, defaultTimezone string) *ProfileService {
	return &ProfileService{userRepo: userRepo, defaultTimezone: defaultTimezone}
}

func (s *ProfileService) Ensure(ctx context.Context, telegramID int64, firstName, username string) (*model.User, error) {
	return s.userRepo.UpsertFromTelegram(ctx, telegramID, firstName, username, s.defaultTimezone)
}

func (s *ProfileService) SetName(ctx context.Context, user *model.User, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.userRepo.UpdateName(ctx, user, name)
}

// SetMood validates raw before storing the canonical mood name.
func (s *ProfileService) SetMood(ctx context.Context, user *model.User, raw string) (planner.Mood, error) {
	mood, err := planner.ParseMood(raw)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdateMood(ctx, user, string(mood)); err != nil {
		return "", err
	}
	return mood, nil
}

func (s *ProfileService) SetTimezone(ctx context.Context, user *model.User, name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	loc, err := loadLocation(name)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateTimezone(ctx, user, loc.String()); err != nil {
		return nil, err
	}
	return loc, nil
}

// Mood returns the stored mood, falling back to Energetic for rows written
// before the column existed.
func (s *ProfileService) Mood(user *model.User) planner.Mood {
	mood, err := planner.ParseMood(user.Mood)
	if err != nil {
		return planner.MoodEnergetic
	}
	return mood
}

// Location resolves the user's timezone, then the default, then UTC.
func (s *ProfileService) Location(user *model.User) *time.Location {
	for _, name := range []string{user.Timezone, s.defaultTimezone} {
		if name == "" {
			continue
		}
		if loc, err := loadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

func (s *ProfileService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListAll(ctx)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}
