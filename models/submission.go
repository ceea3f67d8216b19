// models/submission.go
package models

import "time"

// Submission holds a participant's latest code artifact. There is no history:
// every write replaces the previous content, and IsFinal freezes the row once
// the challenge ends or the participant is disqualified.
type Submission struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ChallengeID   uint         `json:"challenge_id" gorm:"not null;index"`
	Challenge     *Challenge   `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	ParticipantID uint         `json:"participant_id" gorm:"not null;uniqueIndex"`
	Participant   *Participant `json:"participant,omitempty" gorm:"foreignKey:ParticipantID"`
	HTMLCode      string       `json:"html_code" gorm:"type:text"`
	CSSCode       string       `json:"css_code" gorm:"type:text"`
	IsFinal       bool         `json:"is_final" gorm:"default:false"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"index"`
}

func (Submission) TableName() string {
	return "submissions"
}
