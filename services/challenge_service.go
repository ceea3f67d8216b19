// services/challenge_service.go - Challenge Lifecycle Business Logic
package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"markano/models"

	"gorm.io/gorm"
)

// DefaultDurationMinutes is used when a challenge is started without a
// configured duration.
const DefaultDurationMinutes = 30

// ChallengeService owns the challenge lifecycle: draft → active ⇄ paused →
// completed, plus reset back to draft. It is the only writer of Status,
// EditingEnabled and the timer fields.
type ChallengeService struct {
	db *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

// ================== CHALLENGE CRUD ==================

// CreateChallenge creates a new challenge in draft with a unique access code.
func (s *ChallengeService) CreateChallenge(title, description, instructions string, durationMinutes int, createdBy uint) (*models.Challenge, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: challenge title is required", ErrInvalidArgument)
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}

	challenge := &models.Challenge{
		Title:           title,
		Description:     description,
		Instructions:    instructions,
		DurationMinutes: durationMinutes,
		Status:          models.ChallengeStatusDraft,
		EditingEnabled:  false,
		AccessCode:      s.generateUniqueAccessCode(),
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}

	if err := s.db.Create(challenge).Error; err != nil {
		return nil, err
	}

	return challenge, nil
}

// GetChallenge retrieves a challenge with its teams and participants.
func (s *ChallengeService) GetChallenge(challengeID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.Where("id = ?", challengeID).
		Preload("Teams").
		Preload("Participants").
		First(&challenge).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: challenge %d", ErrNotFound, challengeID)
		}
		return nil, err
	}

	return &challenge, nil
}

// GetChallengeByCode retrieves a challenge by its access code.
func (s *ChallengeService) GetChallengeByCode(code string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.Where("access_code = ?", code).
		Preload("Teams").
		First(&challenge).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no challenge with that access code", ErrNotFound)
		}
		return nil, err
	}

	return &challenge, nil
}

// ListChallenges returns challenges, optionally filtered by status.
func (s *ChallengeService) ListChallenges(status string) ([]models.Challenge, error) {
	query := s.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var challenges []models.Challenge
	err := query.Preload("Teams").Find(&challenges).Error
	return challenges, err
}

// ================== LIFECYCLE ACTIONS ==================

// Start activates the challenge and arms the session clock. Starting an
// already-running challenge re-arms the clock from now.
func (s *ChallengeService) Start(challengeID uint) (*models.Challenge, error) {
	challenge, err := s.load(challengeID)
	if err != nil {
		return nil, err
	}

	duration := challenge.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	now := time.Now()
	endTime := now.Add(time.Duration(duration) * time.Minute)

	updates := map[string]interface{}{
		"status":           models.ChallengeStatusActive,
		"editing_enabled":  true,
		"started_at":       now,
		"end_time":         endTime,
		"ended_at":         nil,
		"duration_minutes": duration,
	}

	if err := s.db.Model(challenge).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.load(challengeID)
}

// Pause suspends editing without changing the lifecycle status or the clock.
// Calling it while already paused is a no-op.
func (s *ChallengeService) Pause(challengeID uint) (*models.Challenge, error) {
	challenge, err := s.load(challengeID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(challenge).Update("editing_enabled", false).Error; err != nil {
		return nil, err
	}

	return s.load(challengeID)
}

// Resume re-enables editing on an active challenge. Calling it while editing
// is already enabled is a no-op.
func (s *ChallengeService) Resume(challengeID uint) (*models.Challenge, error) {
	challenge, err := s.load(challengeID)
	if err != nil {
		return nil, err
	}

	// Editing may only ever be enabled while the challenge is active.
	if challenge.Status != models.ChallengeStatusActive {
		return nil, fmt.Errorf("%w: challenge is not active", ErrInvalidState)
	}

	if err := s.db.Model(challenge).Update("editing_enabled", true).Error; err != nil {
		return nil, err
	}

	return s.load(challengeID)
}

// End completes the challenge and freezes every submission in it.
func (s *ChallengeService) End(challengeID uint) (*models.Challenge, error) {
	challenge, err := s.load(challengeID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":          models.ChallengeStatusCompleted,
			"editing_enabled": false,
			"ended_at":        time.Now(),
		}
		if err := tx.Model(challenge).Updates(updates).Error; err != nil {
			return err
		}
		return freezeAllSubmissions(tx, challengeID)
	})
	if err != nil {
		return nil, err
	}

	return s.load(challengeID)
}

// Reset returns the challenge to draft, clears the timer fields and wipes all
// derived lock and freeze state off its participants and submissions.
func (s *ChallengeService) Reset(challengeID uint) (*models.Challenge, error) {
	challenge, err := s.load(challengeID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":          models.ChallengeStatusDraft,
			"editing_enabled": false,
			"started_at":      nil,
			"ended_at":        nil,
			"end_time":        nil,
		}
		if err := tx.Model(challenge).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Participant{}).
			Where("challenge_id = ?", challengeID).
			Updates(map[string]interface{}{
				"is_locked":        false,
				"editor_locked":    false,
				"focus_violations": 0,
				"reported_events":  0,
			}).Error; err != nil {
			return err
		}

		return unfreezeAllSubmissions(tx, challengeID)
	})
	if err != nil {
		return nil, err
	}

	return s.load(challengeID)
}

// AdjustTime shifts the configured duration by deltaMinutes, floored at one
// minute. A set end time is shifted by the applied delta rather than being
// recomputed from started_at, since duration and elapsed time may have
// diverged after earlier adjustments.
func (s *ChallengeService) AdjustTime(challengeID uint, deltaMinutes int) (*models.Challenge, error) {
	challenge, err := s.load(challengeID)
	if err != nil {
		return nil, err
	}

	newDuration := challenge.DurationMinutes + deltaMinutes
	if newDuration < 1 {
		newDuration = 1
	}
	applied := newDuration - challenge.DurationMinutes

	updates := map[string]interface{}{
		"duration_minutes": newDuration,
	}
	if challenge.EndTime != nil {
		updates["end_time"] = challenge.EndTime.Add(time.Duration(applied) * time.Minute)
	}

	if err := s.db.Model(challenge).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.load(challengeID)
}

// ================== HELPERS ==================

func (s *ChallengeService) load(challengeID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: challenge %d", ErrNotFound, challengeID)
		}
		return nil, err
	}
	return &challenge, nil
}

// generateUniqueAccessCode generates a unique 6-character hex join code
func (s *ChallengeService) generateUniqueAccessCode() string {
	for {
		bytes := make([]byte, 3)
		rand.Read(bytes)
		code := hex.EncodeToString(bytes)[:6]

		var count int64
		s.db.Model(&models.Challenge{}).Where("access_code = ?", code).Count(&count)

		if count == 0 {
			return code
		}
	}
}
