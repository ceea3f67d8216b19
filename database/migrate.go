// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"markano/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Team{},
		&models.Participant{},
		&models.Submission{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the struct tags don't cover
func createIndexes() {
	db := GetDB()

	// Challenge lookup by join code and status filters on the admin list
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_access_code ON challenges(access_code)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_status ON challenges(status)")

	// Roster sweeps scan by challenge and recency
	db.Exec("CREATE INDEX IF NOT EXISTS idx_participants_challenge ON participants(challenge_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_participants_last_active ON participants(last_active_at DESC)")

	// Results compilation joins submissions by challenge and orders by recency
	db.Exec("CREATE INDEX IF NOT EXISTS idx_submissions_challenge ON submissions(challenge_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_submissions_updated ON submissions(updated_at DESC)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
}
