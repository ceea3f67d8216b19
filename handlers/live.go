// handlers/live.go - Live challenge status feed over WebSocket
package handlers

import (
	"time"

	"markano/database"
	"markano/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const statusPushInterval = 2 * time.Second

// ChallengeStatusMessage is one snapshot pushed to connected clients.
type ChallengeStatusMessage struct {
	Status             models.ChallengeStatus `json:"status"`
	EditingEnabled     bool                   `json:"editing_enabled"`
	RemainingSeconds   int                    `json:"remaining_seconds"`
	ActiveParticipants int                    `json:"active_participants"`
	LockedParticipants int                    `json:"locked_participants"`
	Timestamp          int64                  `json:"timestamp"`
}

// RequireWebSocketUpgrade rejects plain HTTP requests on the socket routes.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ChallengeSocket streams challenge state snapshots to clients watching the
// session (countdown, pause state, roster counts). Clients reconnect on
// drop; nothing here is authoritative, the REST API is.
// GET /ws/challenges/:code
func ChallengeSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		code := conn.Params("code")
		db := database.GetDB()

		var challenge models.Challenge
		if err := db.Where("access_code = ?", code).First(&challenge).Error; err != nil {
			conn.WriteJSON(fiber.Map{"error": "challenge not found"})
			return
		}

		// Drain client frames so pings and closes are processed
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(statusPushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := db.First(&challenge, challenge.ID).Error; err != nil {
					return
				}

				var active, locked int64
				db.Model(&models.Participant{}).
					Where("challenge_id = ? AND is_active = ?", challenge.ID, true).
					Count(&active)
				db.Model(&models.Participant{}).
					Where("challenge_id = ? AND is_locked = ?", challenge.ID, true).
					Count(&locked)

				msg := ChallengeStatusMessage{
					Status:             challenge.Status,
					EditingEnabled:     challenge.EditingEnabled,
					RemainingSeconds:   challenge.RemainingSeconds(),
					ActiveParticipants: int(active),
					LockedParticipants: int(locked),
					Timestamp:          time.Now().Unix(),
				}

				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	})
}
