// handlers/challenges.go - Challenge Lifecycle Handlers (admin)
package handlers

import (
	"strconv"

	"markano/middleware"
	"markano/models"

	"github.com/gofiber/fiber/v2"
)

// CreateChallenge creates a new challenge in draft
// POST /api/challenges
func CreateChallenge(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		Instructions    string `json:"instructions"`
		DurationMinutes int    `json:"duration_minutes"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	challenge, err := challengeService.CreateChallenge(
		req.Title, req.Description, req.Instructions, req.DurationMinutes, adminID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":   true,
		"challenge": challenge,
	})
}

// GetChallenges lists challenges, optionally filtered by status
// GET /api/challenges?status=active
func GetChallenges(c *fiber.Ctx) error {
	challenges, err := challengeService.ListChallenges(c.Query("status", ""))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": challenges,
		"count":      len(challenges),
	})
}

// GetChallenge retrieves one challenge with teams and participants
// GET /api/challenges/:id
func GetChallenge(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	challenge, err := challengeService.GetChallenge(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"challenge": challenge,
	})
}

// StartChallenge activates a challenge and arms the countdown
// POST /api/challenges/:id/start
func StartChallenge(c *fiber.Ctx) error {
	return lifecycleAction(c, challengeService.Start)
}

// PauseChallenge disables editing without ending the session
// POST /api/challenges/:id/pause
func PauseChallenge(c *fiber.Ctx) error {
	return lifecycleAction(c, challengeService.Pause)
}

// ResumeChallenge re-enables editing on an active challenge
// POST /api/challenges/:id/resume
func ResumeChallenge(c *fiber.Ctx) error {
	return lifecycleAction(c, challengeService.Resume)
}

// EndChallenge completes the session and freezes all submissions
// POST /api/challenges/:id/end
func EndChallenge(c *fiber.Ctx) error {
	return lifecycleAction(c, challengeService.End)
}

// ResetChallenge returns a challenge to draft and clears derived state
// POST /api/challenges/:id/reset
func ResetChallenge(c *fiber.Ctx) error {
	return lifecycleAction(c, challengeService.Reset)
}

// AdjustChallengeTime shifts the session duration by delta_minutes
// POST /api/challenges/:id/adjust-time
func AdjustChallengeTime(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		DeltaMinutes *int `json:"delta_minutes"`
	}

	if err := c.BodyParser(&req); err != nil || req.DeltaMinutes == nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "delta_minutes must be an integer",
		})
	}

	challenge, err := challengeService.AdjustTime(challengeID, *req.DeltaMinutes)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"challenge": challenge,
	})
}

// helpers

func lifecycleAction(c *fiber.Ctx, action func(uint) (*models.Challenge, error)) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	challenge, err := action(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"challenge": challenge,
	})
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		// Returned to the app error handler, which renders the 400.
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
