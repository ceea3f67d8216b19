// handlers/auth.go - Participant join flow
package handlers

import (
	"fmt"
	"os"
	"time"

	"markano/database"
	"markano/models"
	"markano/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JoinRequest struct {
	AccessCode  string `json:"access_code"`
	DisplayName string `json:"display_name"`
	StudentType string `json:"student_type,omitempty"`
}

type JoinResponse struct {
	Success     bool                `json:"success"`
	Token       string              `json:"token,omitempty"`
	Challenge   *models.Challenge   `json:"challenge,omitempty"`
	Participant *models.Participant `json:"participant,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// JoinChallenge lets a student enter a challenge through its access code.
// A guest identity is created and the student lands on the smallest team.
// POST /api/auth/join
func JoinChallenge(c *fiber.Ctx) error {
	var req JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(JoinResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.AccessCode == "" {
		return c.Status(400).JSON(JoinResponse{
			Success: false,
			Error:   "Access code is required",
		})
	}

	challenge, err := challengeService.GetChallengeByCode(req.AccessCode)
	if err != nil {
		return serviceError(c, err)
	}

	// Generate a display name if not provided
	displayName := req.DisplayName
	if displayName == "" {
		displayName = fmt.Sprintf("Student_%s", uuid.New().String()[:8])
	}

	db := database.GetDB()

	// Usernames are globally unique; suffix the display name so two students
	// with the same name can both join.
	guestEmail := fmt.Sprintf("student_%s@markano.local", uuid.New().String()[:8])
	user := models.User{
		Username:    fmt.Sprintf("%s_%s", displayName, uuid.New().String()[:8]),
		Email:       &guestEmail,
		IsGuest:     true,
		StudentType: req.StudentType,
		CreatedAt:   time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return c.Status(500).JSON(JoinResponse{
			Success: false,
			Error:   "Failed to create student account",
		})
	}

	team, err := rosterService.SmallestTeam(challenge.ID)
	if err != nil {
		return serviceError(c, err)
	}

	added, err := rosterService.AddParticipants(challenge.ID, team.ID, []services.StudentRef{{
		UserID:      user.ID,
		DisplayName: displayName,
		StudentType: req.StudentType,
	}})
	if err != nil {
		return serviceError(c, err)
	}
	if len(added) == 0 {
		return c.Status(500).JSON(JoinResponse{
			Success: false,
			Error:   "Failed to join challenge",
		})
	}
	participant := added[0]

	token, err := generateParticipantToken(user, participant, challenge.ID)
	if err != nil {
		return c.Status(500).JSON(JoinResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
	}

	return c.JSON(JoinResponse{
		Success:     true,
		Token:       token,
		Challenge:   challenge,
		Participant: &participant,
	})
}

// generateParticipantToken creates a JWT scoped to one participant slot
func generateParticipantToken(user models.User, participant models.Participant, challengeID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id":        user.ID,
		"username":       user.Username,
		"participant_id": participant.ID,
		"challenge_id":   challengeID,
		"is_participant": true,
		"exp":            time.Now().Add(12 * time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
