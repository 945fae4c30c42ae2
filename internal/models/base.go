package models

import "time"

// BaseModel is gorm.Model without soft deletes; every delete in this
// system is a hard delete.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
