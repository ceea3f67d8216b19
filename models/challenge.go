// models/challenge.go - Live Coding Challenge Data Models
package models

import (
	"time"
)

// Challenge status constants
type ChallengeStatus string

const (
	ChallengeStatusDraft     ChallengeStatus = "draft"
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusPaused    ChallengeStatus = "paused"
	ChallengeStatusCompleted ChallengeStatus = "completed"
)

// Challenge represents a timed live-coding session
type Challenge struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Title           string          `json:"title" gorm:"not null;size:150"`
	Description     string          `json:"description" gorm:"type:text"`
	Instructions    string          `json:"instructions" gorm:"type:text"`
	DurationMinutes int             `json:"duration_minutes" gorm:"not null;default:30"`
	Status          ChallengeStatus `json:"status" gorm:"not null;default:'draft';index"`
	EditingEnabled  bool            `json:"editing_enabled" gorm:"default:false"`
	AccessCode      string          `json:"access_code" gorm:"unique;size:10"`
	CreatedBy       uint            `json:"created_by" gorm:"not null"`
	StartedAt       *time.Time      `json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at"`
	EndTime         *time.Time      `json:"end_time"`
	CreatedAt       time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Teams           []Team          `json:"teams,omitempty" gorm:"foreignKey:ChallengeID"`
	Participants    []Participant   `json:"participants,omitempty" gorm:"foreignKey:ChallengeID"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// IsEditable reports whether submissions are currently accepted.
func (c *Challenge) IsEditable() bool {
	return c.Status == ChallengeStatusActive && c.EditingEnabled
}

// RemainingSeconds returns the seconds left on the session clock.
// The countdown is advisory: reaching zero never ends the challenge by itself.
func (c *Challenge) RemainingSeconds() int {
	if c.EndTime == nil {
		return 0
	}
	remaining := int(time.Until(*c.EndTime).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
