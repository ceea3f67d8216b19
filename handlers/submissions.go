// handlers/submissions.go - Submission Handlers (participant)
package handlers

import (
	"markano/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitCode upserts the participant's current code artifact
// POST /api/submissions
func SubmitCode(c *fiber.Ctx) error {
	participantID, err := middleware.GetParticipantID(c)
	if err != nil {
		return err
	}
	challengeID, err := middleware.GetChallengeID(c)
	if err != nil {
		return err
	}

	var req struct {
		HTMLCode string `json:"html_code"`
		CSSCode  string `json:"css_code"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	submission, err := submissionService.Submit(challengeID, participantID, req.HTMLCode, req.CSSCode)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"submission": submission,
	})
}

// GetMySubmission returns the participant's latest saved code
// GET /api/submissions/me
func GetMySubmission(c *fiber.Ctx) error {
	participantID, err := middleware.GetParticipantID(c)
	if err != nil {
		return err
	}

	submission, err := submissionService.GetLatest(participantID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"submission": submission,
	})
}
