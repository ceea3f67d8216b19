// handlers/monitor.go - Focus Violation Handlers (participant-reported)
package handlers

import (
	"markano/middleware"
	"markano/models"

	"github.com/gofiber/fiber/v2"
)

type violationRequest struct {
	FocusViolations *int `json:"focus_violations"`
}

// ReportViolation records the proctoring client's running violation count
// POST /api/violations
func ReportViolation(c *fiber.Ctx) error {
	return violationAction(c, monitorService.ReportViolation)
}

// LockEditor puts the participant's editor into the soft warning state
// POST /api/violations/lock
func LockEditor(c *fiber.Ctx) error {
	return violationAction(c, monitorService.LockEditor)
}

// DisqualifyParticipant locks the participant out for good and freezes their
// submission, even while the challenge keeps running for everyone else
// POST /api/violations/disqualify
func DisqualifyParticipant(c *fiber.Ctx) error {
	return violationAction(c, monitorService.Disqualify)
}

func violationAction(c *fiber.Ctx, action func(uint, int) (*models.Participant, error)) error {
	participantID, err := middleware.GetParticipantID(c)
	if err != nil {
		return err
	}

	var req violationRequest
	if err := c.BodyParser(&req); err != nil || req.FocusViolations == nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "focus_violations must be an integer",
		})
	}

	participant, err := action(participantID, *req.FocusViolations)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"participant": participant,
	})
}
