package services

import "nclexprep/backend/models"

// AnswerKey is one option's correctness flag, in option position order.
type AnswerKey struct {
	IsCorrect bool
}

type ScoreResult struct {
	Correct          int     `json:"correct"`
	Total            int     `json:"total"`
	Incorrect        int     `json:"incorrect"`
	IsFullyCorrect   bool    `json:"is_fully_correct"`
	IsMultipleChoice bool    `json:"is_multiple_choice"`
	NCLEXScore       int     `json:"nclex_score"` // 1 or 0
	Percentage       float64 `json:"percentage"`
}

// KeyFromOptions builds the answer key from a question's options. Options
// must already be sorted by position.
func KeyFromOptions(options []models.AnswerOption) []AnswerKey {
	key := make([]AnswerKey, len(options))
	for i, opt := range options {
		key[i] = AnswerKey{IsCorrect: opt.IsCorrect}
	}
	return key
}

// Score grades a set of selected option indices against an answer key.
//
// Multiple-choice (one correct option): fully correct iff exactly that option
// is selected. SATA (more than one correct option): all-or-nothing — every
// correct option and nothing else. The linear percentage is reported
// regardless. Out-of-range and duplicate indices are ignored; the HTTP
// boundary rejects them before scoring. Never fails.
func Score(selected []int, key []AnswerKey) ScoreResult {
	totalCorrect := 0
	for _, k := range key {
		if k.IsCorrect {
			totalCorrect++
		}
	}

	seen := make(map[int]bool)
	correctCount := 0
	incorrectSelected := 0
	for _, idx := range selected {
		if idx < 0 || idx >= len(key) || seen[idx] {
			continue
		}
		seen[idx] = true
		if key[idx].IsCorrect {
			correctCount++
		} else {
			incorrectSelected++
		}
	}

	isMultipleChoice := totalCorrect == 1
	// A key with no correct options is malformed; it scores zero.
	isFullyCorrect := totalCorrect > 0 &&
		correctCount == totalCorrect &&
		incorrectSelected == 0

	percentage := 0.0
	if totalCorrect > 0 {
		percentage = float64(correctCount) / float64(totalCorrect) * 100
	}

	nclexScore := 0
	if isFullyCorrect {
		nclexScore = 1
	}

	return ScoreResult{
		Correct:          correctCount,
		Total:            totalCorrect,
		Incorrect:        incorrectSelected,
		IsFullyCorrect:   isFullyCorrect,
		IsMultipleChoice: isMultipleChoice,
		NCLEXScore:       nclexScore,
		Percentage:       percentage,
	}
}
