package model

import "time"

// User stores Telegram user metadata and planning preferences.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	FirstName  string
	Username   string
	// Name is the display name the user picked with /name; optional.
	Name      string
	Mood      string `gorm:"default:Energetic"`
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName prefers the chosen name over the Telegram first name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.FirstName
}
