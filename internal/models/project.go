package models

import (
	"time"
)

// Project is owned by exactly one user. Membership (owner and contributors)
// lives in project_access; Contributors is populated by the project service
// when serving reads, it is not a persisted column.
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"size:2000" json:"description"`
	OwnerID      uint      `gorm:"not null;index" json:"owner_id"`
	Owner        *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Contributors []User    `gorm:"-" json:"contributors"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
