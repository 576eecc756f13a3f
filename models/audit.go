package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records an operator action on the admin surface.
type AuditLog struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Action     string         `json:"action" gorm:"size:64;index"`
	Module     string         `json:"module" gorm:"size:64;index"`
	ActorID    string         `json:"actorID" gorm:"size:128;index"`
	ActorEmail string         `json:"actorEmail" gorm:"size:128"`
	Details    datatypes.JSON `json:"details"`
	Severity   string         `json:"severity" gorm:"size:16;default:'info'"`
	IPAddress  string         `json:"ipAddress" gorm:"size:64"`
	CreatedAt  time.Time      `json:"createdAt"`
}
