package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAbandoned  = "abandoned"
)

type TestSession struct {
	gorm.Model
	PublicID           string `gorm:"uniqueIndex;not null"`
	UserID             uint   `gorm:"index"`
	TutorMode          bool
	Timed              bool
	NGNEnabled         bool
	QuestionCount      int
	MinutesPerQuestion float64
	QuestionIDs        string `gorm:"type:text"` // JSON array, selection order
	StartedAt          time.Time
	EndedAt            *time.Time
	Status             string `gorm:"default:in_progress"`
	Results            []TestResultEntry
}

// TestResultEntry is written exactly once per (session, question) at
// submission time and is read-only afterward.
type TestResultEntry struct {
	gorm.Model
	TestSessionID    uint `gorm:"uniqueIndex:idx_session_question"`
	QuestionID       uint `gorm:"uniqueIndex:idx_session_question"`
	Correct          bool
	PartiallyCorrect bool
	Skipped          bool
	Marked           bool
	SelectedIndices  string `gorm:"type:text"` // JSON array
	TimeSpentSeconds int
	Score            float64 // 0-100
}

// QuestionIDList decodes the ordered question ids selected for the session.
func (s *TestSession) QuestionIDList() []uint {
	var ids []uint
	if s.QuestionIDs != "" {
		json.Unmarshal([]byte(s.QuestionIDs), &ids)
	}
	return ids
}

// SetQuestionIDs stores the ordered selection.
func (s *TestSession) SetQuestionIDs(ids []uint) error {
	encoded, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.QuestionIDs = string(encoded)
	return nil
}

// ContainsQuestion reports whether the id was part of the session's selection.
func (s *TestSession) ContainsQuestion(id uint) bool {
	for _, qid := range s.QuestionIDList() {
		if qid == id {
			return true
		}
	}
	return false
}
