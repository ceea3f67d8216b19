// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ParticipantAuthMiddleware validates a participant token issued on join and
// stores the participant/challenge identity on the request.
func ParticipantAuthMiddleware(c *fiber.Ctx) error {
	claims, err := parseToken(c)
	if err != nil {
		return err
	}

	if ok, _ := claims["is_participant"].(bool); !ok {
		return c.Status(403).JSON(fiber.Map{"error": "Participant token required"})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("participantId", claims["participant_id"])
	c.Locals("challengeId", claims["challenge_id"])

	return c.Next()
}

// AdminAuthMiddleware validates an admin token.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := parseToken(c)
	if err != nil {
		return err
	}

	isAdmin, ok := claims["is_admin"].(bool)
	if !ok || !isAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Access denied. Admin privileges required."})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isAdmin", true)

	return c.Next()
}

func parseToken(c *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, c.Status(401).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, c.Status(401).JSON(fiber.Map{"error": "Token expired"})
	}

	return claims, nil
}

// GetParticipantID returns the participant identity set by the middleware.
func GetParticipantID(c *fiber.Ctx) (uint, error) {
	return localUint(c, "participantId")
}

// GetChallengeID returns the challenge identity set by the middleware.
func GetChallengeID(c *fiber.Ctx) (uint, error) {
	return localUint(c, "challengeId")
}

// GetUserID returns the user identity set by the middleware.
func GetUserID(c *fiber.Ctx) (uint, error) {
	return localUint(c, "userId")
}

func localUint(c *fiber.Ctx, key string) (uint, error) {
	val := c.Locals(key)
	if val == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	// JWT numeric claims decode as float64
	if id, ok := val.(float64); ok {
		return uint(id), nil
	}
	if id, ok := val.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid identity claim")
}
