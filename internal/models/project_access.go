package models

import (
	"time"
)

// AccessRole is a user's role within a project.
type AccessRole string

const (
	RoleOwner       AccessRole = "owner"
	RoleContributor AccessRole = "contributor"
	// RoleVisitor exists in the schema but no exposed operation grants it;
	// role resolution treats it the same as no access.
	RoleVisitor AccessRole = "visitor"
	// RoleNone is returned when no access record exists. Never persisted.
	RoleNone AccessRole = ""
)

// ProjectAccess links a user to a project with a role. This table is the
// single source of truth for membership: project creation inserts an owner
// row, add-contributor inserts a contributor row, and every authorization
// check resolves the role from here.
type ProjectAccess struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"uniqueIndex:idx_project_access_project_user;not null" json:"project_id"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint       `gorm:"uniqueIndex:idx_project_access_project_user;not null" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      AccessRole `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

func (ProjectAccess) TableName() string { return "project_access" }
