package models

import "time"

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         string     `gorm:"type:VARCHAR(20);default:'staff'" json:"role"` // "admin", "staff" or "guest"
	Cart         Cart       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // set for guest sessions only
	CreatedAt    time.Time  `json:"created_at"`
}
