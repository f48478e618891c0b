package models

type TopicMastery struct {
	TopicID   uint    `json:"topic_id"`
	TopicName string  `json:"topic_name"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Mastery   float64 `json:"mastery"`
}

type ProgressOverview struct {
	TotalStreakDays     int `json:"total_streak_days"`
	TotalTestsCompleted int `json:"total_tests_completed"`
	QuestionsAnswered   int `json:"questions_answered"`
	QuestionsCorrect    int `json:"questions_correct"`
}
