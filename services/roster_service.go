// services/roster_service.go - Participant Registry and Team Assignment
package services

import (
	"fmt"
	"math/rand"
	"time"

	"markano/models"

	"gorm.io/gorm"
)

// InactivityWindow is how long a participant may stay silent before the next
// sweep marks them inactive.
const InactivityWindow = 30 * time.Second

// StudentRef identifies a student to enroll as a participant.
type StudentRef struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	StudentType string `json:"student_type"`
}

// RosterService tracks participant membership and team placement.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

// ================== TEAMS ==================

// CreateTeam creates a named team inside a challenge.
func (s *RosterService) CreateTeam(challengeID uint, name, color string) (*models.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidArgument)
	}

	if err := s.challengeExists(challengeID); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Team{}).
		Where("challenge_id = ? AND name = ?", challengeID, name).
		Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("%w: team name already taken in this challenge", ErrInvalidArgument)
	}

	team := &models.Team{
		ChallengeID: challengeID,
		Name:        name,
		Color:       color,
	}

	if err := s.db.Create(team).Error; err != nil {
		return nil, err
	}

	return team, nil
}

// CreateDefaultTeams creates the standard two-team setup for a challenge.
func (s *RosterService) CreateDefaultTeams(challengeID uint) ([]models.Team, error) {
	if err := s.challengeExists(challengeID); err != nil {
		return nil, err
	}

	defaults := []models.Team{
		{ChallengeID: challengeID, Name: "Team Blue", Color: "#3b82f6"},
		{ChallengeID: challengeID, Name: "Team Orange", Color: "#f97316"},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range defaults {
			if err := tx.Create(&defaults[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return defaults, nil
}

// GetTeams returns a challenge's teams with their participants preloaded.
func (s *RosterService) GetTeams(challengeID uint) ([]models.Team, error) {
	if err := s.challengeExists(challengeID); err != nil {
		return nil, err
	}

	var teams []models.Team
	err := s.db.Where("challenge_id = ?", challengeID).
		Preload("Participants").
		Preload("Participants.User").
		Order("name ASC").
		Find(&teams).Error

	return teams, err
}

// ================== PARTICIPANTS ==================

// AddParticipants enrolls students into a team. The insert is idempotent: a
// student already enrolled in the challenge is left untouched, even if they
// sit on a different team.
func (s *RosterService) AddParticipants(challengeID, teamID uint, students []StudentRef) ([]models.Participant, error) {
	if len(students) == 0 {
		return nil, fmt.Errorf("%w: no students given", ErrInvalidArgument)
	}

	var team models.Team
	if err := s.db.Where("id = ? AND challenge_id = ?", teamID, challengeID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: team %d in challenge %d", ErrNotFound, teamID, challengeID)
		}
		return nil, err
	}

	now := time.Now()
	var added []models.Participant

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, student := range students {
			var count int64
			if err := tx.Model(&models.Participant{}).
				Where("challenge_id = ? AND user_id = ?", challengeID, student.UserID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			participant := models.Participant{
				ChallengeID:  challengeID,
				TeamID:       teamID,
				UserID:       student.UserID,
				DisplayName:  student.DisplayName,
				StudentType:  student.StudentType,
				IsActive:     true,
				LastActiveAt: now,
				JoinedAt:     now,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
			added = append(added, participant)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// RemoveParticipant hard-deletes a participant and their submission.
func (s *RosterService) RemoveParticipant(participantID uint) error {
	var participant models.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", participantID).
			Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&participant).Error
	})
}

// Shuffle randomly redistributes a challenge's participants round-robin over
// its teams, so sizes differ by at most one. The reassignment is
// all-or-nothing.
func (s *RosterService) Shuffle(challengeID uint) ([]models.Team, error) {
	if err := s.challengeExists(challengeID); err != nil {
		return nil, err
	}

	var teams []models.Team
	if err := s.db.Where("challenge_id = ?", challengeID).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 teams", ErrInvalidState)
	}

	var participants []models.Participant
	if err := s.db.Where("challenge_id = ?", challengeID).Find(&participants).Error; err != nil {
		return nil, err
	}

	rand.Shuffle(len(participants), func(i, j int) {
		participants[i], participants[j] = participants[j], participants[i]
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range participants {
			teamID := teams[i%len(teams)].ID
			if err := tx.Model(&models.Participant{}).
				Where("id = ?", participants[i].ID).
				Update("team_id", teamID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTeams(challengeID)
}

// ================== LIVENESS ==================

// RecordActivity marks a participant active now.
func (s *RosterService) RecordActivity(participantID uint) error {
	result := s.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"is_active":      true,
			"last_active_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
	}
	return nil
}

// SweepInactive demotes participants who have been silent longer than the
// liveness window. There is no background ticker: the sweep piggybacks on
// heartbeat requests, which is enough for an advisory "active" badge.
func (s *RosterService) SweepInactive(challengeID uint) (int64, error) {
	cutoff := time.Now().Add(-InactivityWindow)
	result := s.db.Model(&models.Participant{}).
		Where("challenge_id = ? AND is_active = ? AND last_active_at < ?", challengeID, true, cutoff).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// SmallestTeam returns the team with the fewest participants, used when a
// student self-joins through an access code.
func (s *RosterService) SmallestTeam(challengeID uint) (*models.Team, error) {
	var teams []models.Team
	if err := s.db.Where("challenge_id = ?", challengeID).
		Preload("Participants").
		Order("id ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: challenge has no teams yet", ErrInvalidState)
	}

	smallest := &teams[0]
	for i := range teams {
		if len(teams[i].Participants) < len(smallest.Participants) {
			smallest = &teams[i]
		}
	}
	return smallest, nil
}

// ================== HELPERS ==================

func (s *RosterService) challengeExists(challengeID uint) error {
	var count int64
	if err := s.db.Model(&models.Challenge{}).Where("id = ?", challengeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: challenge %d", ErrNotFound, challengeID)
	}
	return nil
}
