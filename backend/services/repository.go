package services

import (
	"fmt"

	"nclexprep/backend/models"

	"gorm.io/gorm"
)

// FilterSpec narrows the question pool. Empty topic/subtopic slices mean no
// restriction on that dimension; the two dimensions combine with AND.
type FilterSpec struct {
	TopicIDs    []uint
	SubtopicIDs []uint
	NGNOnly     bool
	NGNEnabled  bool
}

// QuestionRepository reads questions and their options. The useSample flag
// is fixed at construction: either Postgres or the bundled pool, never a
// silent fallback from one to the other.
type QuestionRepository struct {
	db        *gorm.DB
	useSample bool
	sample    []models.Question
	topics    []models.Topic
}

func NewQuestionRepository(db *gorm.DB, useSample bool) *QuestionRepository {
	r := &QuestionRepository{db: db, useSample: useSample}
	if useSample {
		r.sample = SampleQuestions()
		r.topics = SampleTopics()
	}
	return r
}

// ListQuestions returns the full matching set with options attached, sorted
// by option position. Result order is not guaranteed.
func (r *QuestionRepository) ListQuestions(spec FilterSpec) ([]models.Question, error) {
	if r.useSample {
		var matched []models.Question
		for _, q := range r.sample {
			if matchesFilter(&q, spec) {
				matched = append(matched, q)
			}
		}
		return matched, nil
	}

	if r.db == nil {
		return nil, ErrDataSourceUnavailable
	}

	query := r.db.Model(&models.Question{}).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if spec.NGNOnly {
		query = query.Where("is_ngn = ?", true)
	} else if !spec.NGNEnabled {
		query = query.Where("is_ngn = ?", false)
	}
	if len(spec.TopicIDs) > 0 {
		query = query.Where("topic_id IN ?", spec.TopicIDs)
	}
	if len(spec.SubtopicIDs) > 0 {
		query = query.Where("subtopic_id IN ?", spec.SubtopicIDs)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return questions, nil
}

// GetQuestion loads one question with its options in position order.
func (r *QuestionRepository) GetQuestion(id uint) (*models.Question, error) {
	if r.useSample {
		for _, q := range r.sample {
			if q.ID == id {
				question := q
				return &question, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}

	if r.db == nil {
		return nil, ErrDataSourceUnavailable
	}

	var question models.Question
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&question, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return &question, nil
}

type SubtopicBreakdown struct {
	SubtopicID    uint   `json:"subtopic_id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
	NGNCount      int    `json:"ngn_count"`
}

type CategoryBreakdown struct {
	TopicID       uint                `json:"topic_id"`
	Name          string              `json:"name"`
	QuestionCount int                 `json:"question_count"`
	NGNCount      int                 `json:"ngn_count"`
	Subtopics     []SubtopicBreakdown `json:"subtopics"`
}

// TopicBreakdown returns the taxonomy annotated with question counts split
// by NGN flag.
func (r *QuestionRepository) TopicBreakdown() ([]CategoryBreakdown, error) {
	topics := r.topics
	questions := r.sample

	if !r.useSample {
		if r.db == nil {
			return nil, ErrDataSourceUnavailable
		}
		if err := r.db.Preload("Subtopics").Find(&topics).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
		if err := r.db.Find(&questions).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
	}

	breakdown := make([]CategoryBreakdown, 0, len(topics))
	for _, topic := range topics {
		category := CategoryBreakdown{TopicID: topic.ID, Name: topic.Name}
		for _, sub := range topic.Subtopics {
			entry := SubtopicBreakdown{SubtopicID: sub.ID, Name: sub.Name}
			for _, q := range questions {
				if q.SubtopicID != sub.ID {
					continue
				}
				entry.QuestionCount++
				if q.IsNGN {
					entry.NGNCount++
				}
			}
			category.QuestionCount += entry.QuestionCount
			category.NGNCount += entry.NGNCount
			category.Subtopics = append(category.Subtopics, entry)
		}
		breakdown = append(breakdown, category)
	}
	return breakdown, nil
}

func matchesFilter(q *models.Question, spec FilterSpec) bool {
	if spec.NGNOnly {
		if !q.IsNGN {
			return false
		}
	} else if !spec.NGNEnabled && q.IsNGN {
		return false
	}
	if len(spec.TopicIDs) > 0 && !containsID(spec.TopicIDs, q.TopicID) {
		return false
	}
	if len(spec.SubtopicIDs) > 0 && !containsID(spec.SubtopicIDs, q.SubtopicID) {
		return false
	}
	return true
}

func containsID(ids []uint, id uint) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
