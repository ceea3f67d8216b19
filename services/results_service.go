// services/results_service.go - Read-Only Results Aggregation
package services

import (
	"fmt"
	"sort"
	"time"

	"markano/models"

	"gorm.io/gorm"
)

// ParticipantResult is one row of the results view.
type ParticipantResult struct {
	ParticipantID     uint       `json:"participant_id"`
	DisplayName       string     `json:"display_name"`
	StudentType       string     `json:"student_type"`
	IsActive          bool       `json:"is_active"`
	IsLocked          bool       `json:"is_locked"`
	FocusViolations   int        `json:"focus_violations"`
	ReportedEvents    int        `json:"reported_events"`
	ViolationMismatch bool       `json:"violation_mismatch"`
	HTMLCode          string     `json:"html_code"`
	CSSCode           string     `json:"css_code"`
	IsFinal           bool       `json:"is_final"`
	SubmittedAt       *time.Time `json:"submitted_at"`
}

// TeamResult groups participant rows under their team.
type TeamResult struct {
	TeamID       uint                `json:"team_id"`
	Name         string              `json:"name"`
	Color        string              `json:"color"`
	Participants []ParticipantResult `json:"participants"`
}

// ChallengeResults is the frozen leaderboard/result view for one challenge.
type ChallengeResults struct {
	Challenge  *models.Challenge `json:"challenge"`
	Teams      []TeamResult      `json:"teams"`
	CompiledAt time.Time         `json:"compiled_at"`
}

// ResultsService assembles the results view. It owns no state and never
// mutates any; compiling is safe in every lifecycle state.
type ResultsService struct {
	db *gorm.DB
}

func NewResultsService(db *gorm.DB) *ResultsService {
	return &ResultsService{db: db}
}

// Compile joins every team's participants with their latest submission.
// Teams are ordered by name; participants within a team by submission
// recency, most recent first, participants without a submission last.
func (s *ResultsService) Compile(challengeID uint) (*ChallengeResults, error) {
	var challenge models.Challenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: challenge %d", ErrNotFound, challengeID)
		}
		return nil, err
	}

	var teams []models.Team
	if err := s.db.Where("challenge_id = ?", challengeID).
		Order("name ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}

	var participants []models.Participant
	if err := s.db.Where("challenge_id = ?", challengeID).
		Find(&participants).Error; err != nil {
		return nil, err
	}

	var submissions []models.Submission
	if err := s.db.Where("challenge_id = ?", challengeID).
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	byParticipant := make(map[uint]*models.Submission, len(submissions))
	for i := range submissions {
		byParticipant[submissions[i].ParticipantID] = &submissions[i]
	}

	results := &ChallengeResults{
		Challenge:  &challenge,
		Teams:      make([]TeamResult, 0, len(teams)),
		CompiledAt: time.Now(),
	}

	for _, team := range teams {
		teamResult := TeamResult{
			TeamID: team.ID,
			Name:   team.Name,
			Color:  team.Color,
		}

		for _, p := range participants {
			if p.TeamID != team.ID {
				continue
			}

			row := ParticipantResult{
				ParticipantID:     p.ID,
				DisplayName:       p.DisplayName,
				StudentType:       p.StudentType,
				IsActive:          p.IsActive,
				IsLocked:          p.IsLocked,
				FocusViolations:   p.FocusViolations,
				ReportedEvents:    p.ReportedEvents,
				ViolationMismatch: p.ViolationMismatch(),
			}

			if sub, ok := byParticipant[p.ID]; ok {
				submittedAt := sub.UpdatedAt
				row.HTMLCode = sub.HTMLCode
				row.CSSCode = sub.CSSCode
				row.IsFinal = sub.IsFinal
				row.SubmittedAt = &submittedAt
			}

			teamResult.Participants = append(teamResult.Participants, row)
		}

		sort.SliceStable(teamResult.Participants, func(i, j int) bool {
			a, b := teamResult.Participants[i], teamResult.Participants[j]
			if a.SubmittedAt == nil {
				return false
			}
			if b.SubmittedAt == nil {
				return true
			}
			return a.SubmittedAt.After(*b.SubmittedAt)
		})

		results.Teams = append(results.Teams, teamResult)
	}

	return results, nil
}
