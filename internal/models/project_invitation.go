package models

// ProjectInvitation is keyed by (project, email) rather than user id so a
// project owner can invite someone before knowing their account. The email
// is resolved to a user when the invitation is acted on.
type ProjectInvitation struct {
	BaseModel

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_email"`
	Email     string `gorm:"not null;uniqueIndex:idx_project_email"`
	Status    string `gorm:"not null;default:pending"` // "pending", "accepted", "declined"

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
