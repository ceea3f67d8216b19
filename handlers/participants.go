// handlers/participants.go - Roster Handlers
package handlers

import (
	"markano/middleware"
	"markano/services"

	"github.com/gofiber/fiber/v2"
)

// AddParticipants enrolls students into a team (admin)
// POST /api/challenges/:id/participants
func AddParticipants(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		TeamID   uint                  `json:"team_id"`
		Students []services.StudentRef `json:"students"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	added, err := rosterService.AddParticipants(challengeID, req.TeamID, req.Students)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"participants": added,
		"added":        len(added),
	})
}

// RemoveParticipant hard-deletes a participant and their submission (admin)
// DELETE /api/participants/:id
func RemoveParticipant(c *fiber.Ctx) error {
	participantID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := rosterService.RemoveParticipant(participantID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Participant removed",
	})
}

// ShuffleTeams randomly rebalances the roster across teams (admin)
// POST /api/challenges/:id/shuffle
func ShuffleTeams(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	teams, err := rosterService.Shuffle(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
	})
}

// Heartbeat records participant activity and opportunistically sweeps the
// challenge roster for silent participants (participant)
// POST /api/heartbeat
func Heartbeat(c *fiber.Ctx) error {
	participantID, err := middleware.GetParticipantID(c)
	if err != nil {
		return err
	}
	challengeID, err := middleware.GetChallengeID(c)
	if err != nil {
		return err
	}

	if err := rosterService.RecordActivity(participantID); err != nil {
		return serviceError(c, err)
	}

	swept, err := rosterService.SweepInactive(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"swept":   swept,
	})
}

// UnlockParticipant clears the violation counters and the soft editor lock
// (admin). A disqualification stays in place until the challenge is reset.
// POST /api/participants/:id/unlock
func UnlockParticipant(c *fiber.Ctx) error {
	participantID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	participant, err := monitorService.Unlock(participantID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"participant": participant,
	})
}
