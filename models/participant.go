// models/participant.go - Challenge Participant Tracking Models
package models

import "time"

// Participant represents one student's membership in a challenge
type Participant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ChallengeID uint       `json:"challenge_id" gorm:"not null;index;uniqueIndex:idx_participants_challenge_user"`
	Challenge   *Challenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	TeamID      uint       `json:"team_id" gorm:"not null;index"`
	Team        *Team      `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_participants_challenge_user"`
	User        *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DisplayName string     `json:"display_name" gorm:"size:100"`
	StudentType string     `json:"student_type" gorm:"size:50"`

	// Liveness and anti-cheat state
	IsActive     bool `json:"is_active" gorm:"default:true;index"`
	IsLocked     bool `json:"is_locked" gorm:"default:false"`
	EditorLocked bool `json:"editor_locked" gorm:"default:false"`
	// FocusViolations is the count the proctoring client reports.
	// ReportedEvents is incremented server-side once per report, so the two
	// can be compared when the client-sent number looks implausible.
	FocusViolations int `json:"focus_violations" gorm:"default:0"`
	ReportedEvents  int `json:"reported_events" gorm:"default:0"`

	LastActiveAt time.Time `json:"last_active_at" gorm:"index"`
	JoinedAt     time.Time `json:"joined_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Submission *Submission `json:"submission,omitempty" gorm:"foreignKey:ParticipantID"`
}

func (Participant) TableName() string {
	return "participants"
}

// ViolationMismatch reports whether the client-sent violation count has
// drifted from the number of report events the server actually saw.
func (p *Participant) ViolationMismatch() bool {
	return p.FocusViolations != p.ReportedEvents
}
