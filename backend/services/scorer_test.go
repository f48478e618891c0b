package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMultipleChoice(t *testing.T) {
	key := []AnswerKey{{IsCorrect: true}, {}, {}, {}}

	result := Score([]int{0}, key)
	assert.True(t, result.IsMultipleChoice)
	assert.True(t, result.IsFullyCorrect)
	assert.Equal(t, 1, result.NCLEXScore)
	assert.Equal(t, 100.0, result.Percentage)

	result = Score([]int{2}, key)
	assert.True(t, result.IsMultipleChoice)
	assert.False(t, result.IsFullyCorrect)
	assert.Equal(t, 0, result.NCLEXScore)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Equal(t, 1, result.Incorrect)
}

func TestScoreSATAAllOrNothing(t *testing.T) {
	key := []AnswerKey{{IsCorrect: true}, {IsCorrect: true}, {}}

	// Partial selection earns partial percentage but no NCLEX credit
	result := Score([]int{0}, key)
	assert.False(t, result.IsMultipleChoice)
	assert.False(t, result.IsFullyCorrect)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 50.0, result.Percentage)

	result = Score([]int{0, 1}, key)
	assert.True(t, result.IsFullyCorrect)
	assert.Equal(t, 1, result.NCLEXScore)
	assert.Equal(t, 100.0, result.Percentage)

	// A wrong pick alongside both correct ones forfeits the point
	result = Score([]int{0, 1, 2}, key)
	assert.False(t, result.IsFullyCorrect)
	assert.Equal(t, 0, result.NCLEXScore)
	assert.Equal(t, 1, result.Incorrect)
}

func TestScoreEmptySelection(t *testing.T) {
	key := []AnswerKey{{IsCorrect: true}, {}}

	result := Score(nil, key)
	assert.False(t, result.IsFullyCorrect)
	assert.Equal(t, 0, result.Correct)
	assert.Equal(t, 0.0, result.Percentage)
}

func TestScoreDegenerateKey(t *testing.T) {
	key := []AnswerKey{{}, {}}

	result := Score(nil, key)
	assert.False(t, result.IsFullyCorrect)
	assert.Equal(t, 0.0, result.Percentage)

	// Selecting everything still earns nothing
	result = Score([]int{0, 1}, key)
	assert.False(t, result.IsFullyCorrect)
	assert.Equal(t, 0.0, result.Percentage)
}

func TestScoreIgnoresDuplicatesAndOutOfRange(t *testing.T) {
	key := []AnswerKey{{IsCorrect: true}, {}}

	result := Score([]int{0, 0, -3, 17}, key)
	assert.True(t, result.IsFullyCorrect)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 0, result.Incorrect)
}

func TestKeyFromOptions(t *testing.T) {
	question := sampleQuestionByID(t, 1)
	key := KeyFromOptions(question.Options)

	assert.Len(t, key, len(question.Options))
	correct := 0
	for _, k := range key {
		if k.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, question.CorrectCount(), correct)
}
