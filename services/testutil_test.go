package services

import (
	"fmt"
	"testing"

	"markano/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture bundles every service over one fresh in-memory database.
type fixture struct {
	db          *gorm.DB
	challenges  *ChallengeService
	roster      *RosterService
	monitor     *MonitorService
	submissions *SubmissionService
	results     *ResultsService
}

func newFixture(t *testing.T) *fixture {
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

	return &fixture{
		db:          db,
		challenges:  NewChallengeService(db),
		roster:      NewRosterService(db),
		monitor:     NewMonitorService(db),
		submissions: NewSubmissionService(db),
		results:     NewResultsService(db),
	}
}

func (f *fixture) createChallenge(t *testing.T, title string, durationMinutes int) *models.Challenge {
	t.Helper()
	challenge, err := f.challenges.CreateChallenge(title, "", "", durationMinutes, 1)
	require.NoError(t, err)
	return challenge
}

func (f *fixture) createTeam(t *testing.T, challengeID uint, name string) *models.Team {
	t.Helper()
	team, err := f.roster.CreateTeam(challengeID, name, "#cccccc")
	require.NoError(t, err)
	return team
}

// enroll creates one guest user per name and adds them all to the team.
// Names must be unique within a test.
func (f *fixture) enroll(t *testing.T, challengeID, teamID uint, names ...string) []models.Participant {
	t.Helper()

	refs := make([]StudentRef, 0, len(names))
	for _, name := range names {
		user := models.User{
			Username: fmt.Sprintf("%s_c%d", name, challengeID),
			IsGuest:  true,
		}
		require.NoError(t, f.db.Create(&user).Error)
		refs = append(refs, StudentRef{UserID: user.ID, DisplayName: name, StudentType: "regular"})
	}

	added, err := f.roster.AddParticipants(challengeID, teamID, refs)
	require.NoError(t, err)
	require.Len(t, added, len(names))
	return added
}

func (f *fixture) reloadChallenge(t *testing.T, challengeID uint) *models.Challenge {
	t.Helper()
	var challenge models.Challenge
	require.NoError(t, f.db.First(&challenge, challengeID).Error)
	return &challenge
}

func (f *fixture) reloadParticipant(t *testing.T, participantID uint) *models.Participant {
	t.Helper()
	var participant models.Participant
	require.NoError(t, f.db.First(&participant, participantID).Error)
	return &participant
}

func (f *fixture) reloadSubmission(t *testing.T, participantID uint) *models.Submission {
	t.Helper()
	var submission models.Submission
	require.NoError(t, f.db.Where("participant_id = ?", participantID).First(&submission).Error)
	return &submission
}

// assertEditingInvariant checks that editing is only ever enabled while the
// challenge is active.
func assertEditingInvariant(t *testing.T, challenge *models.Challenge) {
	t.Helper()
	if challenge.EditingEnabled {
		require.Equal(t, models.ChallengeStatusActive, challenge.Status,
			"editing must only be enabled while active")
	}
}
