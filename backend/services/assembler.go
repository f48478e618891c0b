package services

import (
	"fmt"

	"nclexprep/backend/models"
)

// QuickStartMax caps the Quick Start selection regardless of the requested
// count.
const QuickStartMax = 85

// Criteria describes a requested test build. TypeFilters selects questions
// by the user's prior interaction with them; an empty set yields an empty
// test, as does selecting neither topics nor subtopics.
type Criteria struct {
	TypeFilters   []string `json:"type_filters"`
	TopicIDs      []uint   `json:"topic_ids"`
	SubtopicIDs   []uint   `json:"subtopic_ids"`
	QuestionCount int      `json:"question_count"`
	NGNEnabled    bool     `json:"ngn_enabled"`
	NGNOnly       bool     `json:"ngn_only"`
}

// Choice is an answer option as shown to a test taker. Correctness is never
// part of this shape; the key is revealed only after submission.
type Choice struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

type QuestionWithChoices struct {
	ID         uint     `json:"id"`
	Prompt     string   `json:"prompt"`
	Format     string   `json:"format"`
	Difficulty string   `json:"difficulty"`
	IsNGN      bool     `json:"is_ngn"`
	TopicID    uint     `json:"topic_id"`
	SubtopicID uint     `json:"subtopic_id"`
	Choices    []Choice `json:"choices"`
}

// PresentQuestion maps a question to its client-facing shape, options in
// position order, answer key withheld.
func PresentQuestion(q *models.Question) QuestionWithChoices {
	presented := QuestionWithChoices{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Format:     q.Format,
		Difficulty: q.Difficulty,
		IsNGN:      q.IsNGN,
		TopicID:    q.TopicID,
		SubtopicID: q.SubtopicID,
	}
	for _, opt := range q.Options {
		presented.Choices = append(presented.Choices, Choice{
			Position: opt.Position,
			Text:     opt.Text,
		})
	}
	return presented
}

// TestAssembler composes the repository, tracker, and sampler into test
// builds. Two concurrent builds for the same user can select overlapping
// questions; nothing here serializes them.
type TestAssembler struct {
	repo    *QuestionRepository
	tracker *UsageTracker
	sampler *Sampler
}

func NewTestAssembler(repo *QuestionRepository, tracker *UsageTracker, sampler *Sampler) *TestAssembler {
	return &TestAssembler{repo: repo, tracker: tracker, sampler: sampler}
}

// BuildTest selects up to criteria.QuestionCount questions matching the
// criteria. A zero-length result means no questions were available, not an
// error. Any repository or tracker failure aborts the whole build.
func (a *TestAssembler) BuildTest(userID uint, criteria Criteria) ([]models.Question, error) {
	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	candidates, err := a.candidatePool(userID, criteria)
	if err != nil {
		return nil, err
	}

	return a.sampler.Sample(candidates, criteria.QuestionCount), nil
}

// AvailableCount reports the candidate pool size for the criteria without
// sampling, for clients that preview before building.
func (a *TestAssembler) AvailableCount(userID uint, criteria Criteria) (int, error) {
	if err := validateCriteria(criteria); err != nil {
		return 0, err
	}

	candidates, err := a.candidatePool(userID, criteria)
	if err != nil {
		return 0, err
	}
	return len(candidates), nil
}

// QuickStart selects uniformly from the user's entire unused pool,
// optionally including NGN items, capped at QuickStartMax.
func (a *TestAssembler) QuickStart(userID uint, count int, includeNGN bool) ([]models.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidCriteria, count)
	}
	if count > QuickStartMax {
		count = QuickStartMax
	}

	pool, err := a.repo.ListQuestions(FilterSpec{NGNEnabled: includeNGN})
	if err != nil {
		return nil, err
	}

	statuses, err := a.tracker.StatusMap(userID)
	if err != nil {
		return nil, err
	}

	var unused []models.Question
	for _, q := range pool {
		status, ok := statuses[q.ID]
		if !ok || status == models.StatusUnused {
			unused = append(unused, q)
		}
	}

	return a.sampler.Sample(unused, count), nil
}

// UnusedCount implements the getUnusedCount operation over the whole pool.
func (a *TestAssembler) UnusedCount(userID uint, includeNGN bool) (int, error) {
	pool, err := a.repo.ListQuestions(FilterSpec{NGNEnabled: includeNGN})
	if err != nil {
		return 0, err
	}

	ids := make([]uint, len(pool))
	for i, q := range pool {
		ids[i] = q.ID
	}
	return a.tracker.UnusedCount(userID, ids)
}

func (a *TestAssembler) candidatePool(userID uint, criteria Criteria) ([]models.Question, error) {
	// No type filters selected means nothing is available. Same for an
	// empty topic and subtopic selection: picking is mandatory, there is
	// no implicit "all".
	if len(criteria.TypeFilters) == 0 {
		return nil, nil
	}
	if len(criteria.TopicIDs) == 0 && len(criteria.SubtopicIDs) == 0 {
		return nil, nil
	}

	pool, err := a.repo.ListQuestions(FilterSpec{
		TopicIDs:    criteria.TopicIDs,
		SubtopicIDs: criteria.SubtopicIDs,
		NGNOnly:     criteria.NGNOnly,
		NGNEnabled:  criteria.NGNEnabled,
	})
	if err != nil {
		return nil, err
	}

	statuses, err := a.tracker.StatusMap(userID)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(criteria.TypeFilters))
	for _, filter := range criteria.TypeFilters {
		allowed[filter] = true
	}

	var candidates []models.Question
	for _, q := range pool {
		status, ok := statuses[q.ID]
		if !ok {
			status = models.StatusUnused
		}
		if allowed[status] {
			candidates = append(candidates, q)
		}
	}
	return candidates, nil
}

func validateCriteria(criteria Criteria) error {
	if criteria.QuestionCount <= 0 {
		return fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidCriteria, criteria.QuestionCount)
	}
	for _, filter := range criteria.TypeFilters {
		if !models.ValidStatus(filter) {
			return fmt.Errorf("%w: unknown type filter %q", ErrInvalidCriteria, filter)
		}
	}
	return nil
}
