package controllers

import (
	"strconv"

	"nclexprep/backend/config"
	"nclexprep/backend/models"
	"nclexprep/backend/services"
	"nclexprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestionsController struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Repo *services.QuestionRepository
}

func NewQuestionsController(db *gorm.DB, cfg *config.Config, repo *services.QuestionRepository) *QuestionsController {
	return &QuestionsController{DB: db, Cfg: cfg, Repo: repo}
}

type QuestionInput struct {
	Prompt      string              `json:"prompt"`
	TopicID     uint                `json:"topic_id"`
	SubtopicID  uint                `json:"subtopic_id"`
	Format      string              `json:"format"`
	Difficulty  string              `json:"difficulty"`
	IsNGN       bool                `json:"is_ngn"`
	Explanation string              `json:"explanation"`
	Citations   string              `json:"citations"`
	Options     []AnswerOptionInput `json:"options"`
}

type AnswerOptionInput struct {
	Text          string  `json:"text"`
	IsCorrect     bool    `json:"is_correct"`
	CreditWeight  float64 `json:"credit_weight"`
	PenaltyWeight float64 `json:"penalty_weight"`
}

var knownFormats = map[string]bool{
	models.FormatMultipleChoice:  true,
	models.FormatSATA:            true,
	models.FormatHotSpot:         true,
	models.FormatMatrix:          true,
	models.FormatBowTie:          true,
	models.FormatOrderedResponse: true,
	models.FormatFillBlank:       true,
}

// GetTopics godoc
// @Summary List topics with question counts
// @Description Returns the topic/subtopic taxonomy annotated with question counts, split by NGN flag
// @Tags questions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /topics [get]
func (qc *QuestionsController) GetTopics(c *fiber.Ctx) error {
	breakdown, err := qc.Repo.TopicBreakdown()
	if err != nil {
		return utils.ServiceUnavailable(c, "Question bank is unavailable")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"topics": breakdown,
	})
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Adds a question with its answer options to the bank
// @Tags admin
// @Accept json
// @Produce json
// @Param input body QuestionInput true "Question data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/questions [post]
func (qc *QuestionsController) CreateQuestion(c *fiber.Ctx) error {
	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	question, err := questionFromInput(&input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := qc.DB.Create(question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"question": question,
	})
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Replaces a question's fields and answer options
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param input body QuestionInput true "Question data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/questions/{id} [put]
func (qc *QuestionsController) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var existing models.Question
	if err := qc.DB.First(&existing, questionID).Error; err != nil {
		return utils.NotFound(c, "Question not found")
	}

	var input QuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	replacement, err := questionFromInput(&input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	// Replace options wholesale inside one transaction
	txErr := qc.DB.Transaction(func(tx *gorm.DB) error {
		existing.Prompt = replacement.Prompt
		existing.TopicID = replacement.TopicID
		existing.SubtopicID = replacement.SubtopicID
		existing.Format = replacement.Format
		existing.Difficulty = replacement.Difficulty
		existing.IsNGN = replacement.IsNGN
		existing.Explanation = replacement.Explanation
		existing.Citations = replacement.Citations
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", existing.ID).
			Delete(&models.AnswerOption{}).Error; err != nil {
			return err
		}
		for i := range replacement.Options {
			replacement.Options[i].QuestionID = existing.ID
			if err := tx.Create(&replacement.Options[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return utils.InternalServerError(c, "Could not update question")
	}

	existing.Options = replacement.Options
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"question": existing,
	})
}

// GetQuestionAnalytics godoc
// @Summary Per-question statistics
// @Description Attempts, correct rate and average time spent across all sessions
// @Tags admin
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.QuestionAnalytics
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/questions/{id}/analytics [get]
func (qc *QuestionsController) GetQuestionAnalytics(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		return utils.NotFound(c, "Question not found")
	}

	analytics := models.QuestionAnalytics{QuestionID: question.ID}

	qc.DB.Model(&models.TestResultEntry{}).
		Where("question_id = ?", question.ID).
		Count(&analytics.Attempts)
	qc.DB.Model(&models.TestResultEntry{}).
		Where("question_id = ? AND correct = ?", question.ID, true).
		Count(&analytics.Correct)

	var aggregates struct {
		AvgScore     float64
		AvgTimeSpent float64
	}
	qc.DB.Model(&models.TestResultEntry{}).
		Where("question_id = ?", question.ID).
		Select("COALESCE(AVG(score), 0) as avg_score, COALESCE(AVG(time_spent_seconds), 0) as avg_time_spent").
		Scan(&aggregates)
	analytics.AvgScore = aggregates.AvgScore
	analytics.AvgTimeSpent = aggregates.AvgTimeSpent

	return utils.Success(c, fiber.StatusOK, analytics)
}

// GetPlatformAnalytics godoc
// @Summary Platform-wide totals
// @Description User, question and session counts with the average completed-session score
// @Tags admin
// @Produce json
// @Success 200 {object} models.PlatformAnalytics
// @Security ApiKeyAuth
// @Router /admin/analytics [get]
func (qc *QuestionsController) GetPlatformAnalytics(c *fiber.Ctx) error {
	var analytics models.PlatformAnalytics

	qc.DB.Model(&models.User{}).Count(&analytics.TotalUsers)
	qc.DB.Model(&models.Question{}).Count(&analytics.TotalQuestions)
	qc.DB.Model(&models.TestSession{}).
		Where("status = ?", models.SessionCompleted).
		Count(&analytics.SessionsCompleted)

	var avg struct {
		AvgScore float64
	}
	qc.DB.Model(&models.TestResultEntry{}).
		Joins("JOIN test_sessions ON test_sessions.id = test_result_entries.test_session_id").
		Where("test_sessions.status = ?", models.SessionCompleted).
		Select("COALESCE(AVG(test_result_entries.score), 0) as avg_score").
		Scan(&avg)
	analytics.AvgSessionScore = avg.AvgScore

	return utils.Success(c, fiber.StatusOK, analytics)
}

func questionFromInput(input *QuestionInput) (*models.Question, error) {
	if input.Prompt == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}
	if input.Format == "" {
		input.Format = models.FormatMultipleChoice
	}
	if !knownFormats[input.Format] {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown question format")
	}
	if len(input.Options) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "at least one answer option is required")
	}

	question := &models.Question{
		Prompt:      input.Prompt,
		TopicID:     input.TopicID,
		SubtopicID:  input.SubtopicID,
		Format:      input.Format,
		Difficulty:  input.Difficulty,
		IsNGN:       input.IsNGN,
		Explanation: input.Explanation,
		Citations:   input.Citations,
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}

	hasCorrect := false
	for i, opt := range input.Options {
		if opt.IsCorrect {
			hasCorrect = true
		}
		question.Options = append(question.Options, models.AnswerOption{
			Position:      i,
			Text:          opt.Text,
			IsCorrect:     opt.IsCorrect,
			CreditWeight:  opt.CreditWeight,
			PenaltyWeight: opt.PenaltyWeight,
		})
	}
	if !hasCorrect {
		return nil, fiber.NewError(fiber.StatusBadRequest, "at least one option must be marked correct")
	}
	return question, nil
}
