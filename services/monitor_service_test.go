package services

import (
	"testing"

	"markano/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportViolationTracksBothCounters(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana")

	p, err := f.monitor.ReportViolation(participants[0].ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.FocusViolations)
	assert.Equal(t, 1, p.ReportedEvents)
	assert.True(t, p.IsActive)

	// The client count and the server event count drift apart; the results
	// view surfaces that.
	p, err = f.monitor.ReportViolation(participants[0].ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.FocusViolations)
	assert.Equal(t, 2, p.ReportedEvents)
	assert.True(t, p.ViolationMismatch())
}

func TestReportViolationRejectsNegativeCount(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana")

	_, err := f.monitor.ReportViolation(participants[0].ID, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReportViolationUnknownParticipant(t *testing.T) {
	f := newFixture(t)

	_, err := f.monitor.ReportViolation(404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLockEditorIsSoftWarning(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana")

	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)

	p, err := f.monitor.LockEditor(participants[0].ID, 2)
	require.NoError(t, err)
	assert.True(t, p.EditorLocked)
	assert.False(t, p.IsLocked, "editor lock must not disqualify")

	// The store still accepts writes from a soft-locked participant
	_, err = f.submissions.Submit(challenge.ID, p.ID, "<p>still here</p>", "")
	assert.NoError(t, err)
}

func TestDisqualifyLocksAndFreezes(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana")

	_, err := f.challenges.Start(challenge.ID)
	require.NoError(t, err)
	_, err = f.submissions.Submit(challenge.ID, participants[0].ID, "<p>before</p>", "p { color: blue }")
	require.NoError(t, err)

	p, err := f.monitor.Disqualify(participants[0].ID, 3)
	require.NoError(t, err)
	assert.False(t, p.IsActive)
	assert.True(t, p.IsLocked)
	assert.Equal(t, 3, p.FocusViolations)

	// Their work freezes immediately even though the session keeps running
	sub := f.reloadSubmission(t, p.ID)
	assert.True(t, sub.IsFinal)
	assert.Equal(t, models.ChallengeStatusActive, f.reloadChallenge(t, challenge.ID).Status)

	// Any later submit bounces and the frozen content survives
	_, err = f.submissions.Submit(challenge.ID, p.ID, "<p>after</p>", "")
	require.ErrorIs(t, err, ErrParticipantLocked)
	sub = f.reloadSubmission(t, p.ID)
	assert.Equal(t, "<p>before</p>", sub.HTMLCode)
	assert.True(t, sub.IsFinal)
}

func TestUnlockClearsCountersButNotDisqualification(t *testing.T) {
	f := newFixture(t)
	challenge := f.createChallenge(t, "Sprint", 30)
	team := f.createTeam(t, challenge.ID, "Team Blue")
	participants := f.enroll(t, challenge.ID, team.ID, "Ana")

	_, err := f.monitor.Disqualify(participants[0].ID, 5)
	require.NoError(t, err)

	p, err := f.monitor.Unlock(participants[0].ID)
	require.NoError(t, err)
	assert.Zero(t, p.FocusViolations)
	assert.Zero(t, p.ReportedEvents)
	assert.False(t, p.EditorLocked)
	assert.True(t, p.IsLocked, "unlock does not lift a disqualification")
}
