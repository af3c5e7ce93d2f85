package model

import (
	"gorm.io/gorm"
)

// Task belongs to exactly one user. UserID is set from the authenticated
// requester at creation and is immutable afterwards.
type Task struct {
	gorm.Model
	Description string `gorm:"column:description;not null"`
	Completed   bool   `gorm:"column:completed;default:false;not null"`
	UserID      uint   `gorm:"column:user_id;index;not null"`
}
