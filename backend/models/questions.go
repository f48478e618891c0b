package models

import (
	"strings"

	"gorm.io/gorm"
)

// Question formats. NGN item formats (bow-tie, matrix, etc.) carry IsNGN = true.
const (
	FormatMultipleChoice  = "multiple_choice"
	FormatSATA            = "sata"
	FormatHotSpot         = "hot_spot"
	FormatMatrix          = "matrix"
	FormatBowTie          = "bow_tie"
	FormatOrderedResponse = "ordered_response"
	FormatFillBlank       = "fill_blank"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Topic struct {
	gorm.Model
	Name      string `gorm:"unique;not null"`
	Subtopics []Subtopic
}

type Subtopic struct {
	gorm.Model
	TopicID uint
	Name    string `gorm:"not null"`
}

type Question struct {
	gorm.Model
	Prompt      string `gorm:"type:text;not null"`
	TopicID     uint
	SubtopicID  uint
	Format      string `gorm:"default:multiple_choice"`
	Difficulty  string `gorm:"default:medium"`
	IsNGN       bool
	Explanation string `gorm:"type:text"`
	Citations   string `gorm:"type:text"` // newline-separated reference strings
	Options     []AnswerOption
}

type AnswerOption struct {
	gorm.Model
	QuestionID    uint
	Position      int
	Text          string `gorm:"type:text"`
	IsCorrect     bool
	CreditWeight  float64 // fractional partial credit, 0-1
	PenaltyWeight float64
}

// CitationList splits the stored citation text into individual references.
func (q *Question) CitationList() []string {
	if q.Citations == "" {
		return nil
	}
	var refs []string
	for _, line := range strings.Split(q.Citations, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			refs = append(refs, trimmed)
		}
	}
	return refs
}

// CorrectCount returns how many options are flagged correct.
func (q *Question) CorrectCount() int {
	count := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			count++
		}
	}
	return count
}
