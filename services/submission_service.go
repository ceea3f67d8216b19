// services/submission_service.go - Latest-Wins Submission Store
package services

import (
	"fmt"
	"time"

	"markano/models"

	"gorm.io/gorm"
)

// SubmissionService keeps the single current artifact per participant.
// Writes replace the previous content; there is no history.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Submit upserts a participant's code. It succeeds only while the challenge
// is active with editing enabled, and the participant is not locked.
//
// The lock check rides on an UPDATE of the participant row inside the same
// transaction as the upsert, so a concurrent Disqualify serializes against
// it: either the submit lands first and is then frozen, or the lock wins and
// the submit is rejected. A post-disqualification submit can never slip
// through on a stale read.
func (s *SubmissionService) Submit(challengeID, participantID uint, htmlCode, cssCode string) (*models.Submission, error) {
	var submission models.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: challenge %d", ErrNotFound, challengeID)
			}
			return err
		}

		if !challenge.IsEditable() {
			return ErrEditingDisabled
		}

		// A successful submit counts as activity; the guarded update also
		// takes the row lock that serializes us against Disqualify.
		result := tx.Model(&models.Participant{}).
			Where("id = ? AND challenge_id = ? AND is_locked = ?", participantID, challengeID, false).
			Updates(map[string]interface{}{
				"is_active":      true,
				"last_active_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Participant{}).
				Where("id = ? AND challenge_id = ?", participantID, challengeID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
			}
			return ErrParticipantLocked
		}

		err := tx.Where("participant_id = ?", participantID).First(&submission).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			submission = models.Submission{
				ChallengeID:   challengeID,
				ParticipantID: participantID,
				HTMLCode:      htmlCode,
				CSSCode:       cssCode,
			}
			return tx.Create(&submission).Error
		case err != nil:
			return err
		default:
			// IsFinal is never touched here; only End/Disqualify/Reset move it.
			updates := map[string]interface{}{
				"html_code":  htmlCode,
				"css_code":   cssCode,
				"updated_at": time.Now(),
			}
			if err := tx.Model(&submission).Updates(updates).Error; err != nil {
				return err
			}
			submission.HTMLCode = htmlCode
			submission.CSSCode = cssCode
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// GetLatest returns the participant's current submission, or an empty one if
// nothing has been submitted yet.
func (s *SubmissionService) GetLatest(participantID uint) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.Where("participant_id = ?", participantID).First(&submission).Error
	if err == gorm.ErrRecordNotFound {
		return &models.Submission{ParticipantID: participantID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ================== FREEZE CASCADES ==================
// Shared with the challenge and monitor services, which invoke these inside
// their own transactions.

func freezeAllSubmissions(tx *gorm.DB, challengeID uint) error {
	return tx.Model(&models.Submission{}).
		Where("challenge_id = ?", challengeID).
		Update("is_final", true).Error
}

func freezeParticipantSubmission(tx *gorm.DB, participantID uint) error {
	return tx.Model(&models.Submission{}).
		Where("participant_id = ?", participantID).
		Update("is_final", true).Error
}

func unfreezeAllSubmissions(tx *gorm.DB, challengeID uint) error {
	return tx.Model(&models.Submission{}).
		Where("challenge_id = ?", challengeID).
		Update("is_final", false).Error
}
