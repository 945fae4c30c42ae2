package models

import (
	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel

	UserID  uint   `gorm:"not null;index"`
	Message string `gorm:"not null"`
	Link    string
	IsRead  bool           `gorm:"not null;default:false"`
	Data    datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
