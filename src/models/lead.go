package models

import "savanablu/src/types"

// Lead is a contact-form submission. Related to bookings only by a
// case-insensitive email match, never a foreign key.
type Lead struct {
	ID       uint         `gorm:"primarykey" json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone,omitempty"`
	Message  string       `json:"message,omitempty"`
	Source   string       `json:"source,omitempty"`
	Status   string       `gorm:"default:'new'" json:"status"`
	Metadata *types.JSONB `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}
