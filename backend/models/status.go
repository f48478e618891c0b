package models

import (
	"time"

	"gorm.io/gorm"
)

// Per-user question statuses.
const (
	StatusUnused    = "unused"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
	StatusMarked    = "marked"
	StatusSkipped   = "skipped"
)

// ValidStatus reports whether s is one of the recognized status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusUnused, StatusCorrect, StatusIncorrect, StatusMarked, StatusSkipped:
		return true
	}
	return false
}

// UserQuestionStatus is created lazily on first interaction with a question.
// AttemptsCount and CorrectCount only move on grading events; marking or
// skipping alone never touches them.
type UserQuestionStatus struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex:idx_user_question"`
	QuestionID    uint   `gorm:"uniqueIndex:idx_user_question"`
	Status        string `gorm:"default:unused"`
	AttemptsCount int
	CorrectCount  int
	LastAttemptAt *time.Time
	Notes         string `gorm:"type:text"`
}
