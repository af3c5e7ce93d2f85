package model

import (
	"gorm.io/gorm"
)

// User owns tasks and session tokens. Password always holds the bcrypt hash;
// hashing happens in the service write path, never in a gorm hook.
type User struct {
	gorm.Model
	Name     string `gorm:"column:name;not null"`
	Email    string `gorm:"column:email;uniqueIndex;not null"`
	Password string `gorm:"column:password;not null"`
	Age      int    `gorm:"column:age;default:0;not null"`
	Avatar   []byte `gorm:"column:avatar"`

	Tokens []SessionToken `gorm:"foreignKey:UserID"`
	Tasks  []Task         `gorm:"foreignKey:UserID"`
}
