package models

import "time"

// AuthToken is the server-side record backing a bearer token. The JTI
// matches the jti claim of the issued JWT; deleting the row revokes the
// token without touching the user's other sessions.
type AuthToken struct {
	BaseModel

	JTI       string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
