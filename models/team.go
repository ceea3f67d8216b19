// models/team.go
package models

import "time"

type Team struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	ChallengeID  uint          `json:"challenge_id" gorm:"not null;index;uniqueIndex:idx_teams_challenge_name"`
	Challenge    *Challenge    `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	Name         string        `json:"name" gorm:"not null;size:100;uniqueIndex:idx_teams_challenge_name"`
	Color        string        `json:"color" gorm:"size:20"`
	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
