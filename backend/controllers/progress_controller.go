package controllers

import (
	"nclexprep/backend/config"
	"nclexprep/backend/models"
	"nclexprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Per-topic mastery
// @Description Returns the user's mastery per topic plus their recent test sessions
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var performance []models.TopicPerformance
	if err := pc.DB.Where("user_id = ?", userID).
		Order("topic_id ASC").
		Find(&performance).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch topic performance")
	}

	// Topic names for display
	var topics []models.Topic
	pc.DB.Find(&topics)
	topicNames := make(map[uint]string, len(topics))
	for _, t := range topics {
		topicNames[t.ID] = t.Name
	}

	mastery := make([]models.TopicMastery, 0, len(performance))
	for _, p := range performance {
		mastery = append(mastery, models.TopicMastery{
			TopicID:   p.TopicID,
			TopicName: topicNames[p.TopicID],
			Attempted: p.QuestionsAttempted,
			Correct:   p.QuestionsCorrect,
			Mastery:   p.Mastery,
		})
	}

	var recentSessions []models.TestSession
	pc.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(10).
		Find(&recentSessions)

	sessions := make([]fiber.Map, 0, len(recentSessions))
	for _, s := range recentSessions {
		sessions = append(sessions, fiber.Map{
			"session_id":     s.PublicID,
			"status":         s.Status,
			"question_count": s.QuestionCount,
			"ngn_enabled":    s.NGNEnabled,
			"started_at":     s.StartedAt,
			"ended_at":       s.EndedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"topics":          mastery,
		"recent_sessions": sessions,
	})
}

// GetProgressOverview godoc
// @Summary Progress overview
// @Description Returns streak, completed test count and lifetime question totals
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} models.ProgressOverview
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var userProgress models.UserProgress
	pc.DB.Where("user_id = ?", userID).First(&userProgress)

	var totals struct {
		Answered int
		Correct  int
	}
	pc.DB.Model(&models.UserQuestionStatus{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(attempts_count), 0) as answered, COALESCE(SUM(correct_count), 0) as correct").
		Scan(&totals)

	overview := models.ProgressOverview{
		TotalStreakDays:     userProgress.StreakDays,
		TotalTestsCompleted: userProgress.TestsCompleted,
		QuestionsAnswered:   totals.Answered,
		QuestionsCorrect:    totals.Correct,
	}

	return utils.Success(c, fiber.StatusOK, overview)
}
