package models

import "gorm.io/gorm"

// TopicPerformance is recomputed by the progress aggregator after each
// completed test. Nothing else writes to it.
type TopicPerformance struct {
	gorm.Model
	UserID             uint `gorm:"uniqueIndex:idx_user_topic"`
	TopicID            uint `gorm:"uniqueIndex:idx_user_topic"`
	QuestionsAttempted int
	QuestionsCorrect   int
	Mastery            float64 // percentage
}

type QuestionAnalytics struct {
	QuestionID   uint    `json:"question_id"`
	Attempts     int64   `json:"attempts"`
	Correct      int64   `json:"correct"`
	AvgScore     float64 `json:"avg_score"`
	AvgTimeSpent float64 `json:"avg_time_spent"` // seconds
}

type PlatformAnalytics struct {
	TotalUsers        int64   `json:"total_users"`
	TotalQuestions    int64   `json:"total_questions"`
	SessionsCompleted int64   `json:"sessions_completed"`
	AvgSessionScore   float64 `json:"avg_session_score"`
}
