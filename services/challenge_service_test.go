package services

import (
	"testing"
	"time"

	"markano/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChallenge(t *testing.T) {
	f := newFixture(t)

	challenge := f.createChallenge(t, "CSS Battle", 45)

	assert.Equal(t, models.ChallengeStatusDraft, challenge.Status)
	assert.False(t, challenge.EditingEnabled)
	assert.Equal(t, 45, challenge.DurationMinutes)
	assert.Len(t, challenge.AccessCode, 6)
	assert.Nil(t, challenge.StartedAt)
	assert.Nil(t, challenge.EndTime)
}

func TestCreateChallengeRequiresTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.challenges.CreateChallenge("", "", "", 30, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateChallengeDefaultsDuration(t *testing.T) {
	f := newFixture(t)

	challenge := f.createChallenge(t, "No duration", 0)
	assert.Equal(t, DefaultDurationMinutes, challenge.DurationMinutes)
}

func TestStartArmsClock(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)

	started, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ChallengeStatusActive, started.Status)
	assert.True(t, started.EditingEnabled)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.EndTime)
	assert.WithinDuration(t, started.StartedAt.Add(30*time.Minute), *started.EndTime, time.Second)
	assertEditingInvariant(t, started)
}

func TestStartUnknownChallenge(t *testing.T) {
	f := newFixture(t)

	_, err := f.challenges.Start(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPauseKeepsStatusActive(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)

	paused, err := f.challenges.Pause(challenge.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ChallengeStatusActive, paused.Status)
	assert.False(t, paused.EditingEnabled)
	assertEditingInvariant(t, paused)

	// Pausing again is a safe no-op
	paused, err = f.challenges.Pause(challenge.ID)
	require.NoError(t, err)
	assert.False(t, paused.EditingEnabled)
}

func TestResumeReenablesEditing(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)
	_, err = f.challenges.Pause(challenge.ID)
	require.NoError(t, err)

	resumed, err := f.challenges.Resume(challenge.ID)
	require.NoError(t, err)
	assert.True(t, resumed.EditingEnabled)
	assertEditingInvariant(t, resumed)

	// Resuming while already enabled is a safe no-op
	resumed, err = f.challenges.Resume(challenge.ID)
	require.NoError(t, err)
	assert.True(t, resumed.EditingEnabled)
}

func TestResumeRequiresActiveChallenge(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)

	_, err := f.challenges.Resume(challenge.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEndFreezesAllSubmissions(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana", "Bruno")

	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)

	for _, p := range participants {
		_, err := f.submissions.Submit(challenge.ID, p.ID, "<h1>hi</h1>", "h1 { color: red }")
		require.NoError(t, err)
	}

	ended, err := f.challenges.End(challenge.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ChallengeStatusCompleted, ended.Status)
	assert.False(t, ended.EditingEnabled)
	require.NotNil(t, ended.EndedAt)
	assertEditingInvariant(t, ended)

	for _, p := range participants {
		sub := f.reloadSubmission(t, p.ID)
		assert.True(t, sub.IsFinal)
	}
}

func TestResetRestoresFreshState(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana", "Bruno")

	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)
	_, err = f.submissions.Submit(challenge.ID, participants[0].ID, "<p>a</p>", "")
	require.NoError(t, err)
	_, err = f.monitor.Disqualify(participants[1].ID, 5)
	require.NoError(t, err)
	_, err = f.challenges.End(challenge.ID)
	require.NoError(t, err)

	reset, err := f.challenges.Reset(challenge.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ChallengeStatusDraft, reset.Status)
	assert.False(t, reset.EditingEnabled)
	assert.Nil(t, reset.StartedAt)
	assert.Nil(t, reset.EndedAt)
	assert.Nil(t, reset.EndTime)
	assert.Equal(t, challenge.Title, reset.Title)
	assert.Equal(t, challenge.AccessCode, reset.AccessCode)

	for _, p := range participants {
		reloaded := f.reloadParticipant(t, p.ID)
		assert.False(t, reloaded.IsLocked)
		assert.False(t, reloaded.EditorLocked)
		assert.Zero(t, reloaded.FocusViolations)
		assert.Zero(t, reloaded.ReportedEvents)
	}

	sub := f.reloadSubmission(t, participants[0].ID)
	assert.False(t, sub.IsFinal)
	assert.Equal(t, "<p>a</p>", sub.HTMLCode, "reset clears flags, not content")
}

func TestAdjustTimeInverse(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	started, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)
	originalEnd := *started.EndTime

	plus, err := f.challenges.AdjustTime(challenge.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 40, plus.DurationMinutes)
	assert.WithinDuration(t, originalEnd.Add(10*time.Minute), *plus.EndTime, time.Second)

	minus, err := f.challenges.AdjustTime(challenge.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 30, minus.DurationMinutes)
	assert.WithinDuration(t, originalEnd, *minus.EndTime, time.Second)
}

func TestAdjustTimeFloorsAtOneMinute(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Short", 5)

	adjusted, err := f.challenges.AdjustTime(challenge.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted.DurationMinutes)
}

func TestAdjustTimeWithoutClockLeavesEndTimeUnset(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Draft only", 30)

	adjusted, err := f.challenges.AdjustTime(challenge.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 45, adjusted.DurationMinutes)
	assert.Nil(t, adjusted.EndTime)
}

func TestElapsedClockDoesNotCompleteChallenge(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)

	// Push the end time into the past; only an explicit End may complete.
	past := time.Now().Add(-time.Minute)
	require.NoError(t, f.db.Model(&models.Challenge{}).
		Where("id = ?", challenge.ID).
		Update("end_time", past).Error)

	reloaded := f.reloadChallenge(t, challenge.ID)
	assert.Equal(t, models.ChallengeStatusActive, reloaded.Status)
	assert.True(t, reloaded.EditingEnabled)
	assert.Zero(t, reloaded.RemainingSeconds())

	// Submissions still flow with an expired countdown
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana")
	_, err = f.submissions.Submit(challenge.ID, participants[0].ID, "<p>late</p>", "")
	assert.NoError(t, err)
}
