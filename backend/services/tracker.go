package services

import (
	"errors"
	"fmt"
	"time"

	"nclexprep/backend/models"

	"gorm.io/gorm"
)

// UsageTracker maintains the per-(user, question) status records that drive
// "unused question" pools and attempt statistics.
type UsageTracker struct {
	db *gorm.DB
}

func NewUsageTracker(db *gorm.DB) *UsageTracker {
	return &UsageTracker{db: db}
}

// GetStatus returns the user's status for a question, defaulting to unused
// when no record exists.
func (t *UsageTracker) GetStatus(userID, questionID uint) (string, error) {
	if t.db == nil {
		return "", ErrDataSourceUnavailable
	}

	var record models.UserQuestionStatus
	err := t.db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StatusUnused, nil
		}
		return "", fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return record.Status, nil
}

// StatusMap loads every status record the user has, keyed by question id.
// Questions absent from the map are unused.
func (t *UsageTracker) StatusMap(userID uint) (map[uint]string, error) {
	if t.db == nil {
		return nil, ErrDataSourceUnavailable
	}

	var records []models.UserQuestionStatus
	if err := t.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	statuses := make(map[uint]string, len(records))
	for _, record := range records {
		statuses[record.QuestionID] = record.Status
	}
	return statuses, nil
}

// UnusedCount counts the given questions for which the user has no record or
// an unused one.
func (t *UsageTracker) UnusedCount(userID uint, questionIDs []uint) (int, error) {
	statuses, err := t.StatusMap(userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range questionIDs {
		status, ok := statuses[id]
		if !ok || status == models.StatusUnused {
			count++
		}
	}
	return count, nil
}

// RecordOutcome upserts the status row. isCorrect non-nil means a grading
// event happened: attempts increment, and correct increments when true.
// Marking or skipping alone never touches the counters. Notes, when
// provided, replace the stored notes wholesale.
func (t *UsageTracker) RecordOutcome(userID, questionID uint, outcome string, isCorrect *bool, notes *string) error {
	if t.db == nil {
		return ErrDataSourceUnavailable
	}
	if !models.ValidStatus(outcome) {
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidCriteria, outcome)
	}

	var record models.UserQuestionStatus
	err := t.db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
		record = models.UserQuestionStatus{
			UserID:     userID,
			QuestionID: questionID,
			Status:     models.StatusUnused,
		}
	}

	record.Status = outcome
	if isCorrect != nil {
		record.AttemptsCount++
		if *isCorrect {
			record.CorrectCount++
		}
		now := time.Now()
		record.LastAttemptAt = &now
	}
	if notes != nil {
		record.Notes = *notes
	}

	if err := t.db.Save(&record).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return nil
}
