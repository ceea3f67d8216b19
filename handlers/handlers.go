// handlers/handlers.go - Shared handler wiring and error translation
package handlers

import (
	"errors"
	"log"

	"markano/database"
	"markano/services"

	"github.com/gofiber/fiber/v2"
)

var (
	challengeService  *services.ChallengeService
	rosterService     *services.RosterService
	monitorService    *services.MonitorService
	submissionService *services.SubmissionService
	resultsService    *services.ResultsService
)

// InitHandlers wires the handler package to the shared database pool.
// Must be called after database.InitDB().
func InitHandlers() {
	db := database.GetDB()
	challengeService = services.NewChallengeService(db)
	rosterService = services.NewRosterService(db)
	monitorService = services.NewMonitorService(db)
	submissionService = services.NewSubmissionService(db)
	resultsService = services.NewResultsService(db)
}

// serviceError translates a domain error into the HTTP response. Admin-facing
// state errors carry the specific reason; the editing/lock rejections stay
// generic so participants learn nothing about server-side state.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidArgument):
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidState):
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrEditingDisabled), errors.Is(err, services.ErrParticipantLocked):
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Editing is currently disabled",
		})
	default:
		log.Printf("internal error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "An error occurred. Please try again later.",
		})
	}
}
