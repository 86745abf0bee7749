package models

import (
	"time"
)

// RefreshToken is a stored JWT refresh token. Tokens rotate on every
// refresh: the presented token is revoked and a new one issued, so a
// user accumulates rows here until expiry cleanup.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
