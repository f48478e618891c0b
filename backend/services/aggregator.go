package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"nclexprep/backend/models"

	"gorm.io/gorm"
)

// ProgressAggregator recomputes the derived per-topic statistics after a
// test completes. It is invoked explicitly by the finish endpoint; nothing
// recomputes behind the storage layer's back.
type ProgressAggregator struct {
	db        *gorm.DB
	publisher *EventPublisher // nil when AMQP is not configured
	logger    *log.Logger
}

func NewProgressAggregator(db *gorm.DB, publisher *EventPublisher, logger *log.Logger) *ProgressAggregator {
	return &ProgressAggregator{db: db, publisher: publisher, logger: logger}
}

// OnTestCompleted rebuilds TopicPerformance for every topic touched by the
// session, bumps the user's completed-test counter, and emits a completion
// event when a publisher is configured.
func (p *ProgressAggregator) OnTestCompleted(sessionID uint) error {
	if p.db == nil {
		return ErrDataSourceUnavailable
	}

	var session models.TestSession
	if err := p.db.Preload("Results").First(&session, sessionID).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	topicIDs, err := p.touchedTopics(&session)
	if err != nil {
		return err
	}

	for _, topicID := range topicIDs {
		if err := p.recomputeTopic(session.UserID, topicID); err != nil {
			return err
		}
	}

	if err := p.bumpUserProgress(session.UserID); err != nil {
		return err
	}

	if p.publisher != nil {
		err := p.publisher.Publish("nclex.test.completed", map[string]interface{}{
			"session_id": session.PublicID,
			"user_id":    session.UserID,
			"score":      sessionScore(&session),
		})
		if err != nil && p.logger != nil {
			// Aggregation already succeeded; a lost event is not fatal.
			p.logger.Printf("event publish failed for session %s: %v", session.PublicID, err)
		}
	}

	return nil
}

func (p *ProgressAggregator) touchedTopics(session *models.TestSession) ([]uint, error) {
	ids := session.QuestionIDList()
	if len(ids) == 0 {
		return nil, nil
	}

	var topicIDs []uint
	err := p.db.Model(&models.Question{}).
		Distinct("topic_id").
		Where("id IN ?", ids).
		Pluck("topic_id", &topicIDs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return topicIDs, nil
}

// recomputeTopic rebuilds one TopicPerformance row from every result entry
// the user has on questions in the topic, skipped entries excluded.
func (p *ProgressAggregator) recomputeTopic(userID, topicID uint) error {
	var stats struct {
		Attempted int64
		Correct   int64
	}
	err := p.db.Model(&models.TestResultEntry{}).
		Select("COUNT(*) AS attempted, COALESCE(SUM(CASE WHEN test_result_entries.correct THEN 1 ELSE 0 END), 0) AS correct").
		Joins("JOIN questions ON questions.id = test_result_entries.question_id").
		Joins("JOIN test_sessions ON test_sessions.id = test_result_entries.test_session_id").
		Where("test_sessions.user_id = ? AND questions.topic_id = ? AND test_result_entries.skipped = ?", userID, topicID, false).
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	mastery := 0.0
	if stats.Attempted > 0 {
		mastery = float64(stats.Correct) / float64(stats.Attempted) * 100
	}

	var performance models.TopicPerformance
	err = p.db.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&performance).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
		performance = models.TopicPerformance{UserID: userID, TopicID: topicID}
	}

	performance.QuestionsAttempted = int(stats.Attempted)
	performance.QuestionsCorrect = int(stats.Correct)
	performance.Mastery = mastery

	if err := p.db.Save(&performance).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return nil
}

func (p *ProgressAggregator) bumpUserProgress(userID uint) error {
	var progress models.UserProgress
	err := p.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
		progress = models.UserProgress{UserID: userID, StreakDays: 1}
	}

	progress.TestsCompleted++
	progress.LastActive = time.Now()

	if err := p.db.Save(&progress).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	return nil
}

// sessionScore averages the per-question scores recorded for the session.
func sessionScore(session *models.TestSession) float64 {
	if len(session.Results) == 0 {
		return 0
	}
	total := 0.0
	for _, entry := range session.Results {
		total += entry.Score
	}
	return total / float64(len(session.Results))
}
