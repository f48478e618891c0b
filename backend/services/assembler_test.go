package services

import (
	"testing"

	"nclexprep/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleAssembler(t *testing.T) (*TestAssembler, *UsageTracker) {
	t.Helper()
	repo := NewQuestionRepository(nil, true)
	tracker := NewUsageTracker(newTestDB(t))
	return NewTestAssembler(repo, tracker, newSeededSampler(11)), tracker
}

func allTopicIDs() []uint {
	var ids []uint
	for _, topic := range SampleTopics() {
		ids = append(ids, topic.ID)
	}
	return ids
}

func TestBuildTestEmptyTypeFiltersYieldsNothing(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	questions, err := assembler.BuildTest(1, Criteria{
		TopicIDs:      allTopicIDs(),
		QuestionCount: 10,
		NGNEnabled:    true,
	})
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestBuildTestNoTopicsOrSubtopicsYieldsNothing(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	questions, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		QuestionCount: 10,
		NGNEnabled:    true,
	})
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestBuildTestExcludesNGNWhenDisabled(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	questions, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 50,
		NGNEnabled:    false,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, questions)
	for _, q := range questions {
		assert.False(t, q.IsNGN, "question %d is NGN", q.ID)
	}
}

func TestBuildTestNGNOnly(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	questions, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 50,
		NGNOnly:       true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, questions)
	for _, q := range questions {
		assert.True(t, q.IsNGN, "question %d is not NGN", q.ID)
	}
}

func TestBuildTestHonorsQuestionCount(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	questions, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 3,
		NGNEnabled:    true,
	})
	require.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestBuildTestFiltersByUsageStatus(t *testing.T) {
	assembler, tracker := newSampleAssembler(t)

	answered := sampleQuestionByID(t, 1)
	require.NoError(t, tracker.RecordOutcome(1, answered.ID, models.StatusCorrect, boolPtr(true), nil))

	questions, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 50,
		NGNEnabled:    true,
	})
	require.NoError(t, err)
	for _, q := range questions {
		assert.NotEqual(t, answered.ID, q.ID, "answered question came back in an unused-only build")
	}

	// The incorrect filter finds nothing yet
	wrong, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusIncorrect},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 50,
		NGNEnabled:    true,
	})
	require.NoError(t, err)
	assert.Empty(t, wrong)
}

func TestBuildTestSubtopicSelection(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	questions, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		SubtopicIDs:   []uint{1},
		QuestionCount: 50,
		NGNEnabled:    true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, questions)
	for _, q := range questions {
		assert.Equal(t, uint(1), q.SubtopicID)
	}
}

func TestBuildTestRejectsBadCriteria(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	_, err := assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{models.StatusUnused},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	_, err = assembler.BuildTest(1, Criteria{
		TypeFilters:   []string{"bogus"},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 5,
	})
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestAvailableCountMatchesPool(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	criteria := Criteria{
		TypeFilters:   []string{models.StatusUnused},
		TopicIDs:      allTopicIDs(),
		QuestionCount: 5,
		NGNEnabled:    true,
	}

	count, err := assembler.AvailableCount(1, criteria)
	require.NoError(t, err)
	assert.Equal(t, len(SampleQuestions()), count)
}

func TestQuickStartSelectsOnlyUnused(t *testing.T) {
	assembler, tracker := newSampleAssembler(t)

	used := sampleQuestionByID(t, 2)
	require.NoError(t, tracker.RecordOutcome(1, used.ID, models.StatusIncorrect, boolPtr(false), nil))

	questions, err := assembler.QuickStart(1, 50, true)
	require.NoError(t, err)
	assert.Len(t, questions, len(SampleQuestions())-1)
	for _, q := range questions {
		assert.NotEqual(t, used.ID, q.ID)
	}
}

func TestQuickStartCapsCount(t *testing.T) {
	assembler, _ := newSampleAssembler(t)

	// Requesting beyond the cap is clamped, not an error; the sample pool
	// is well under the cap so everything comes back.
	questions, err := assembler.QuickStart(1, QuickStartMax+100, true)
	require.NoError(t, err)
	assert.Len(t, questions, len(SampleQuestions()))

	_, err = assembler.QuickStart(1, 0, true)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestUnusedCountOverWholePool(t *testing.T) {
	assembler, tracker := newSampleAssembler(t)

	count, err := assembler.UnusedCount(1, true)
	require.NoError(t, err)
	assert.Equal(t, len(SampleQuestions()), count)

	require.NoError(t, tracker.RecordOutcome(1, 3, models.StatusCorrect, boolPtr(true), nil))
	count, err = assembler.UnusedCount(1, true)
	require.NoError(t, err)
	assert.Equal(t, len(SampleQuestions())-1, count)
}

func TestPresentQuestionWithholdsAnswerKey(t *testing.T) {
	question := sampleQuestionByID(t, 1)
	presented := PresentQuestion(&question)

	assert.Equal(t, question.ID, presented.ID)
	assert.Len(t, presented.Choices, len(question.Options))
	for i, choice := range presented.Choices {
		assert.Equal(t, question.Options[i].Position, choice.Position)
		assert.Equal(t, question.Options[i].Text, choice.Text)
	}
}
