package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"markano/models"
	"markano/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the handler package to a fresh in-memory database and
// returns a Fiber app with the routes under test.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Team{},
		&models.Participant{},
		&models.Submission{},
	))

	challengeService = services.NewChallengeService(db)
	rosterService = services.NewRosterService(db)
	monitorService = services.NewMonitorService(db)
	submissionService = services.NewSubmissionService(db)
	resultsService = services.NewResultsService(db)

	app := fiber.New()
	app.Get("/api/challenges/:id", GetChallenge)
	app.Post("/api/challenges/:id/start", StartChallenge)
	app.Get("/api/challenges/:id/results", GetChallengeResults)

	return app, db
}

func TestNonNumericIDIsRejectedWith400(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/challenges/notanumber"},
		{"POST", "/api/challenges/abc/start"},
		{"GET", "/api/challenges/12x/results"},
	} {
		resp, err := app.Test(httptest.NewRequest(target.method, target.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "%s %s", target.method, target.path)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Invalid id")
	}
}

func TestUnknownNumericIDIs404(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/challenges/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestValidIDReachesTheService(t *testing.T) {
	app, db := newTestApp(t)

	challenge, err := services.NewChallengeService(db).CreateChallenge("Sprint", "", "", 30, 1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/challenges/1/start", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.Challenge
	require.NoError(t, db.First(&reloaded, challenge.ID).Error)
	assert.Equal(t, models.ChallengeStatusActive, reloaded.Status)
}
