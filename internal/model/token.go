package model

import (
	"gorm.io/gorm"
)

// SessionToken is one live login session. A bearer credential is only
// accepted while its row exists; logout deletes the row, logout-all deletes
// every row for the user.
type SessionToken struct {
	gorm.Model
	UserID uint   `gorm:"column:user_id;index;not null"`
	Token  string `gorm:"column:token;index;not null"`
}
