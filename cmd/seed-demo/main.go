// cmd/seed-demo - Seeds a demo challenge for local development.
//
// Creates an admin account (username "admin", password from ADMIN_PASSWORD or
// "admin123"), one draft challenge with the default two teams, and a handful
// of student participants. Safe to re-run: existing rows are reused.
package main

import (
	"fmt"
	"log"
	"os"

	"markano/database"
	"markano/models"
	"markano/services"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()

	db := database.GetDB()

	admin := ensureAdmin(db)

	challengeService := services.NewChallengeService(db)
	rosterService := services.NewRosterService(db)

	var existing models.Challenge
	if err := db.Where("title = ?", "Demo: Landing Page Sprint").First(&existing).Error; err == nil {
		log.Printf("Demo challenge already exists (access code %s), nothing to do", existing.AccessCode)
		return
	}

	challenge, err := challengeService.CreateChallenge(
		"Demo: Landing Page Sprint",
		"Build a product landing page from the mockup.",
		"You have the full session to recreate the mockup. HTML in the left pane, CSS in the right. Stay on the editor tab.",
		45,
		admin.ID,
	)
	if err != nil {
		log.Fatalf("Failed to create demo challenge: %v", err)
	}

	teams, err := rosterService.CreateDefaultTeams(challenge.ID)
	if err != nil {
		log.Fatalf("Failed to create default teams: %v", err)
	}

	names := []string{"Ana", "Bruno", "Carla", "Diego", "Elisa"}
	for i, name := range names {
		email := fmt.Sprintf("%s@markano.local", name)
		user := models.User{
			Username:    fmt.Sprintf("demo_%s", name),
			Email:       &email,
			IsGuest:     true,
			StudentType: "regular",
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create demo student %s: %v", name, err)
		}

		team := teams[i%len(teams)]
		if _, err := rosterService.AddParticipants(challenge.ID, team.ID, []services.StudentRef{{
			UserID:      user.ID,
			DisplayName: name,
			StudentType: "regular",
		}}); err != nil {
			log.Fatalf("Failed to enroll demo student %s: %v", name, err)
		}
	}

	log.Printf("✅ Seeded demo challenge %q", challenge.Title)
	log.Printf("   Access code: %s", challenge.AccessCode)
	log.Printf("   Teams: %s / %s with %d students", teams[0].Name, teams[1].Name, len(names))
}

func ensureAdmin(db *gorm.DB) *models.User {
	var admin models.User
	if err := db.Where("username = ? AND is_admin = ?", "admin", true).First(&admin).Error; err == nil {
		return &admin
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("WARNING: ADMIN_PASSWORD not set, using the default demo password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	email := "admin@markano.local"
	admin = models.User{
		Username: "admin",
		Email:    &email,
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Println("✅ Created admin account (username: admin)")
	return &admin
}
