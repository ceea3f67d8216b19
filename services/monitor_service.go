// services/monitor_service.go - Focus Violation and Lock Enforcement
package services

import (
	"fmt"
	"time"

	"markano/models"

	"gorm.io/gorm"
)

// MonitorService enforces the anti-cheat focus rules. The proctoring client
// reports its own running violation count; the server stores it verbatim for
// compatibility and additionally counts report events itself, so a divergent
// client shows up in the results view.
type MonitorService struct {
	db *gorm.DB
}

func NewMonitorService(db *gorm.DB) *MonitorService {
	return &MonitorService{db: db}
}

// ReportViolation records the client-reported violation count. A report also
// counts as activity.
func (s *MonitorService) ReportViolation(participantID uint, violations int) (*models.Participant, error) {
	if violations < 0 {
		return nil, fmt.Errorf("%w: violation count cannot be negative", ErrInvalidArgument)
	}

	result := s.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"focus_violations": violations,
			"reported_events":  gorm.Expr("reported_events + 1"),
			"is_active":        true,
			"last_active_at":   time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
	}

	return s.load(participantID)
}

// LockEditor records violations and puts the participant's editor into the
// soft warning state. It does not disqualify: IsLocked stays untouched.
func (s *MonitorService) LockEditor(participantID uint, violations int) (*models.Participant, error) {
	if violations < 0 {
		return nil, fmt.Errorf("%w: violation count cannot be negative", ErrInvalidArgument)
	}

	result := s.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"focus_violations": violations,
			"reported_events":  gorm.Expr("reported_events + 1"),
			"editor_locked":    true,
			"is_active":        true,
			"last_active_at":   time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
	}

	return s.load(participantID)
}

// Disqualify permanently locks the participant out and freezes their
// submission immediately, even while the challenge keeps running for
// everyone else.
func (s *MonitorService) Disqualify(participantID uint, violations int) (*models.Participant, error) {
	if violations < 0 {
		return nil, fmt.Errorf("%w: violation count cannot be negative", ErrInvalidArgument)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Participant{}).
			Where("id = ?", participantID).
			Updates(map[string]interface{}{
				"focus_violations": violations,
				"reported_events":  gorm.Expr("reported_events + 1"),
				"is_active":        false,
				"is_locked":        true,
				"editor_locked":    true,
				"last_active_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
		}
		return freezeParticipantSubmission(tx, participantID)
	})
	if err != nil {
		return nil, err
	}

	return s.load(participantID)
}

// Unlock is the administrative override: it zeroes the violation counters and
// clears the soft editor lock. It deliberately does not lift a
// disqualification; a disqualified participant stays locked out until the
// challenge is reset.
func (s *MonitorService) Unlock(participantID uint) (*models.Participant, error) {
	result := s.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"focus_violations": 0,
			"reported_events":  0,
			"editor_locked":    false,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
	}

	return s.load(participantID)
}

func (s *MonitorService) load(participantID uint) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: participant %d", ErrNotFound, participantID)
		}
		return nil, err
	}
	return &participant, nil
}
