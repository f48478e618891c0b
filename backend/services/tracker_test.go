package services

import (
	"testing"

	"nclexprep/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestGetStatusDefaultsToUnused(t *testing.T) {
	tracker := NewUsageTracker(newTestDB(t))

	status, err := tracker.GetStatus(1, 99)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnused, status)
}

func TestRecordOutcomeCountsGradedAttempts(t *testing.T) {
	tracker := NewUsageTracker(newTestDB(t))

	require.NoError(t, tracker.RecordOutcome(1, 5, models.StatusCorrect, boolPtr(true), nil))
	require.NoError(t, tracker.RecordOutcome(1, 5, models.StatusCorrect, boolPtr(true), nil))
	require.NoError(t, tracker.RecordOutcome(1, 5, models.StatusIncorrect, boolPtr(false), nil))

	var record models.UserQuestionStatus
	require.NoError(t, tracker.db.Where("user_id = ? AND question_id = ?", 1, 5).First(&record).Error)
	assert.Equal(t, models.StatusIncorrect, record.Status)
	assert.Equal(t, 3, record.AttemptsCount)
	assert.Equal(t, 2, record.CorrectCount)
	assert.NotNil(t, record.LastAttemptAt)
}

func TestRecordOutcomeMarkingLeavesCountersAlone(t *testing.T) {
	tracker := NewUsageTracker(newTestDB(t))

	require.NoError(t, tracker.RecordOutcome(1, 5, models.StatusCorrect, boolPtr(true), nil))
	require.NoError(t, tracker.RecordOutcome(1, 5, models.StatusMarked, nil, strPtr("review dosage math")))

	var record models.UserQuestionStatus
	require.NoError(t, tracker.db.Where("user_id = ? AND question_id = ?", 1, 5).First(&record).Error)
	assert.Equal(t, models.StatusMarked, record.Status)
	assert.Equal(t, 1, record.AttemptsCount)
	assert.Equal(t, 1, record.CorrectCount)
	assert.Equal(t, "review dosage math", record.Notes)
}

func TestRecordOutcomeReplacesNotesWholesale(t *testing.T) {
	tracker := NewUsageTracker(newTestDB(t))

	require.NoError(t, tracker.RecordOutcome(1, 7, models.StatusMarked, nil, strPtr("first note")))
	require.NoError(t, tracker.RecordOutcome(1, 7, models.StatusMarked, nil, strPtr("second note")))

	var record models.UserQuestionStatus
	require.NoError(t, tracker.db.Where("user_id = ? AND question_id = ?", 1, 7).First(&record).Error)
	assert.Equal(t, "second note", record.Notes)

	// nil notes leaves the stored text untouched
	require.NoError(t, tracker.RecordOutcome(1, 7, models.StatusSkipped, nil, nil))
	require.NoError(t, tracker.db.Where("user_id = ? AND question_id = ?", 1, 7).First(&record).Error)
	assert.Equal(t, "second note", record.Notes)
}

func TestRecordOutcomeRejectsUnknownOutcome(t *testing.T) {
	tracker := NewUsageTracker(newTestDB(t))

	err := tracker.RecordOutcome(1, 5, "revisited", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestUnusedCount(t *testing.T) {
	tracker := NewUsageTracker(newTestDB(t))

	require.NoError(t, tracker.RecordOutcome(1, 2, models.StatusCorrect, boolPtr(true), nil))
	require.NoError(t, tracker.RecordOutcome(1, 3, models.StatusMarked, nil, nil))

	count, err := tracker.UnusedCount(1, []uint{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Another user's records do not bleed over
	count, err = tracker.UnusedCount(2, []uint{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestTrackerWithoutDatabase(t *testing.T) {
	tracker := NewUsageTracker(nil)

	_, err := tracker.GetStatus(1, 1)
	assert.ErrorIs(t, err, ErrDataSourceUnavailable)

	err = tracker.RecordOutcome(1, 1, models.StatusCorrect, boolPtr(true), nil)
	assert.ErrorIs(t, err, ErrDataSourceUnavailable)
}
