// handlers/results.go - Results View Handler (admin)
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetChallengeResults compiles the per-team, per-participant results view.
// Read-only and safe to call in any lifecycle state.
// GET /api/challenges/:id/results
func GetChallengeResults(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	results, err := resultsService.Compile(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
	})
}
