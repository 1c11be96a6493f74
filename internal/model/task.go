package model

import "time"

// Task is a stored to-do item owned by one user key.
type Task struct {
	ID        uint   `gorm:"primaryKey"`
	UserKey   string `gorm:"index;not null"`
	Text      string `gorm:"not null"`
	Done      bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
