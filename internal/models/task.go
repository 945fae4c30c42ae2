package models

import "time"

type Task struct {
	BaseModel

	ProjectID   uint      `gorm:"not null;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Priority    string    `gorm:"not null"` // "low", "medium", "high"
	Status      string    `gorm:"not null"` // "todo", "in-progress", "done"
	Deadline    time.Time `gorm:"type:date;not null"`
	AssigneeID  *uint     `gorm:"index"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee *User   `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
