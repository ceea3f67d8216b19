// handlers/teams.go - Team Management Handlers (admin)
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// CreateTeam creates a named team inside a challenge
// POST /api/challenges/:id/teams
func CreateTeam(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	team, err := rosterService.CreateTeam(challengeID, req.Name, req.Color)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// CreateDefaultTeams creates the standard two-team setup
// POST /api/challenges/:id/teams/default
func CreateDefaultTeams(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	teams, err := rosterService.CreateDefaultTeams(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"teams":   teams,
	})
}

// GetTeams lists a challenge's teams with their rosters
// GET /api/challenges/:id/teams
func GetTeams(c *fiber.Ctx) error {
	challengeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	teams, err := rosterService.GetTeams(challengeID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}
