package models

import (
	"savanablu/src/types"
	"time"
)

// User is a back-office operator account.
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `gorm:"default:'operator'" json:"role"`
	LastActive   *time.Time `json:"last_active,omitempty"`

	types.Timestamps
}
