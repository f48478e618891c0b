package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"nclexprep/backend/config"
	"nclexprep/backend/models"
	"nclexprep/backend/services"
	"nclexprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestsController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Assembler  *services.TestAssembler
	Repo       *services.QuestionRepository
	Tracker    *services.UsageTracker
	Aggregator *services.ProgressAggregator
}

func NewTestsController(db *gorm.DB, cfg *config.Config, assembler *services.TestAssembler,
	repo *services.QuestionRepository, tracker *services.UsageTracker,
	aggregator *services.ProgressAggregator) *TestsController {
	return &TestsController{
		DB:         db,
		Cfg:        cfg,
		Assembler:  assembler,
		Repo:       repo,
		Tracker:    tracker,
		Aggregator: aggregator,
	}
}

// serviceError maps the typed service errors onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCriteria):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDataSourceUnavailable):
		return utils.ServiceUnavailable(c, "Data source unavailable")
	default:
		return utils.InternalServerError(c, err.Error())
	}
}

// BuildTest godoc
// @Summary Build a new test
// @Description Selects a randomized question set for the given criteria and opens a test session
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /tests [post]
func (tc *TestsController) BuildTest(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		services.Criteria
		TutorMode          bool    `json:"tutor_mode"`
		Timed              bool    `json:"timed"`
		MinutesPerQuestion float64 `json:"minutes_per_question"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	selected, err := tc.Assembler.BuildTest(userID, input.Criteria)
	if err != nil {
		return serviceError(c, err)
	}

	// No questions available is a valid outcome, not an error. No session
	// is opened for it.
	if len(selected) == 0 {
		return c.JSON(fiber.Map{
			"session_id": nil,
			"questions":  []services.QuestionWithChoices{},
		})
	}

	session, err := tc.openSession(userID, selected, input.TutorMode, input.Timed,
		input.Criteria.NGNEnabled, input.MinutesPerQuestion)
	if err != nil {
		return utils.InternalServerError(c, "Could not create test session")
	}

	return c.JSON(fiber.Map{
		"session_id": session.PublicID,
		"questions":  presentAll(selected),
	})
}

// QuickStart builds a test from the user's entire unused pool, capped at 85.
func (tc *TestsController) QuickStart(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Count              int     `json:"count"`
		IncludeNGN         bool    `json:"include_ngn"`
		MinutesPerQuestion float64 `json:"minutes_per_question"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	selected, err := tc.Assembler.QuickStart(userID, input.Count, input.IncludeNGN)
	if err != nil {
		return serviceError(c, err)
	}

	if len(selected) == 0 {
		return c.JSON(fiber.Map{
			"session_id": nil,
			"questions":  []services.QuestionWithChoices{},
		})
	}

	session, err := tc.openSession(userID, selected, false, false, input.IncludeNGN, input.MinutesPerQuestion)
	if err != nil {
		return utils.InternalServerError(c, "Could not create test session")
	}

	return c.JSON(fiber.Map{
		"session_id":      session.PublicID,
		"requested_count": input.Count,
		"questions":       presentAll(selected),
	})
}

// AvailableCount previews the candidate pool size for criteria passed as
// query parameters.
func (tc *TestsController) AvailableCount(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	criteria := services.Criteria{
		TypeFilters:   splitList(c.Query("type_filters")),
		TopicIDs:      parseIDList(c.Query("topic_ids")),
		SubtopicIDs:   parseIDList(c.Query("subtopic_ids")),
		QuestionCount: c.QueryInt("question_count", 1),
		NGNEnabled:    c.QueryBool("ngn_enabled", false),
		NGNOnly:       c.QueryBool("ngn_only", false),
	}

	count, err := tc.Assembler.AvailableCount(userID, criteria)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"available": count})
}

// UnusedCount reports how many questions the user has never used.
func (tc *TestsController) UnusedCount(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	count, err := tc.Assembler.UnusedCount(userID, c.QueryBool("include_ngn", false))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"unused": count})
}

// RecordAnswer grades a submission, persists the result entry, and reveals
// the answer key. The key never leaves the server before this call.
func (tc *TestsController) RecordAnswer(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session, err := tc.loadOwnedSession(c.Params("id"), userID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.Status != models.SessionInProgress {
		return utils.BadRequest(c, "Test session is not in progress")
	}

	var input struct {
		QuestionID       uint  `json:"question_id"`
		SelectedIndices  []int `json:"selected_indices"`
		TimeSpentSeconds int   `json:"time_spent_seconds"`
		Marked           bool  `json:"marked"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if !session.ContainsQuestion(input.QuestionID) {
		return utils.BadRequest(c, "Question is not part of this test session")
	}

	question, err := tc.Repo.GetQuestion(input.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return serviceError(c, err)
	}

	// Out-of-range and duplicate indices are rejected here, not clamped.
	seen := make(map[int]bool)
	for _, idx := range input.SelectedIndices {
		if idx < 0 || idx >= len(question.Options) {
			return utils.BadRequest(c, "Selected index "+strconv.Itoa(idx)+" is out of range")
		}
		if seen[idx] {
			return utils.BadRequest(c, "Selected index "+strconv.Itoa(idx)+" appears more than once")
		}
		seen[idx] = true
	}

	var existing models.TestResultEntry
	err = tc.DB.Where("test_session_id = ? AND question_id = ?", session.ID, input.QuestionID).
		First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "Question already answered in this session")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := services.Score(input.SelectedIndices, services.KeyFromOptions(question.Options))

	selectedJSON, _ := json.Marshal(input.SelectedIndices)
	entry := models.TestResultEntry{
		TestSessionID:    session.ID,
		QuestionID:       input.QuestionID,
		Correct:          result.IsFullyCorrect,
		PartiallyCorrect: !result.IsFullyCorrect && result.Correct > 0,
		Marked:           input.Marked,
		SelectedIndices:  string(selectedJSON),
		TimeSpentSeconds: input.TimeSpentSeconds,
		Score:            result.Percentage,
	}
	if err := tc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not save result")
	}

	outcome := models.StatusIncorrect
	if result.IsFullyCorrect {
		outcome = models.StatusCorrect
	}
	isCorrect := result.IsFullyCorrect
	if err := tc.Tracker.RecordOutcome(userID, input.QuestionID, outcome, &isCorrect, nil); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"result":     result,
		"answer_key": answerKeyPayload(question),
	})
}

// SkipQuestion records a skip without a grading event.
func (tc *TestsController) SkipQuestion(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session, err := tc.loadOwnedSession(c.Params("id"), userID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.Status != models.SessionInProgress {
		return utils.BadRequest(c, "Test session is not in progress")
	}

	var input struct {
		QuestionID       uint `json:"question_id"`
		TimeSpentSeconds int  `json:"time_spent_seconds"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !session.ContainsQuestion(input.QuestionID) {
		return utils.BadRequest(c, "Question is not part of this test session")
	}

	var existing models.TestResultEntry
	err = tc.DB.Where("test_session_id = ? AND question_id = ?", session.ID, input.QuestionID).
		First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "Question already answered in this session")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	entry := models.TestResultEntry{
		TestSessionID:    session.ID,
		QuestionID:       input.QuestionID,
		Skipped:          true,
		TimeSpentSeconds: input.TimeSpentSeconds,
	}
	if err := tc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not save result")
	}

	if err := tc.Tracker.RecordOutcome(userID, input.QuestionID, models.StatusSkipped, nil, nil); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Question skipped"})
}

// MarkQuestion flags a question for review and optionally replaces the
// user's notes. Attempt counters are untouched.
func (tc *TestsController) MarkQuestion(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session, err := tc.loadOwnedSession(c.Params("id"), userID)
	if err != nil {
		return sessionLookupError(c, err)
	}

	var input struct {
		QuestionID uint    `json:"question_id"`
		Notes      *string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !session.ContainsQuestion(input.QuestionID) {
		return utils.BadRequest(c, "Question is not part of this test session")
	}

	if err := tc.Tracker.RecordOutcome(userID, input.QuestionID, models.StatusMarked, nil, input.Notes); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Question marked"})
}

// FinishTest completes the session and runs the progress aggregation step.
func (tc *TestsController) FinishTest(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session, err := tc.loadOwnedSession(c.Params("id"), userID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.Status != models.SessionInProgress {
		return utils.BadRequest(c, "Test session is not in progress")
	}

	now := time.Now()
	session.Status = models.SessionCompleted
	session.EndedAt = &now
	if err := tc.DB.Save(session).Error; err != nil {
		return utils.InternalServerError(c, "Could not update test session")
	}

	if err := tc.Aggregator.OnTestCompleted(session.ID); err != nil {
		return serviceError(c, err)
	}

	var entries []models.TestResultEntry
	tc.DB.Where("test_session_id = ?", session.ID).Find(&entries)

	answered, correct, skipped := 0, 0, 0
	total := 0.0
	for _, entry := range entries {
		if entry.Skipped {
			skipped++
			continue
		}
		answered++
		total += entry.Score
		if entry.Correct {
			correct++
		}
	}
	avgScore := 0.0
	if answered > 0 {
		avgScore = total / float64(answered)
	}

	return c.JSON(fiber.Map{
		"message": "Test completed",
		"summary": fiber.Map{
			"questions": len(session.QuestionIDList()),
			"answered":  answered,
			"correct":   correct,
			"skipped":   skipped,
			"avg_score": avgScore,
		},
	})
}

// AbandonTest moves the session to its terminal abandoned state.
func (tc *TestsController) AbandonTest(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session, err := tc.loadOwnedSession(c.Params("id"), userID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.Status != models.SessionInProgress {
		return utils.BadRequest(c, "Test session is not in progress")
	}

	now := time.Now()
	session.Status = models.SessionAbandoned
	session.EndedAt = &now
	if err := tc.DB.Save(session).Error; err != nil {
		return utils.InternalServerError(c, "Could not update test session")
	}

	return c.JSON(fiber.Map{"message": "Test abandoned"})
}

// GetUserTests lists the user's sessions with summary stats.
func (tc *TestsController) GetUserTests(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var sessions []models.TestSession
	if err := tc.DB.Preload("Results").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(sessions))
	for _, session := range sessions {
		answered, correct := 0, 0
		for _, entry := range session.Results {
			if entry.Skipped {
				continue
			}
			answered++
			if entry.Correct {
				correct++
			}
		}
		result = append(result, fiber.Map{
			"session_id": session.PublicID,
			"status":     session.Status,
			"questions":  len(session.QuestionIDList()),
			"answered":   answered,
			"correct":    correct,
			"tutor_mode": session.TutorMode,
			"started_at": session.StartedAt,
			"ended_at":   session.EndedAt,
		})
	}

	return c.JSON(result)
}

// GetTestResults returns per-question results with answer keys. Keys stay
// hidden while the session is still in progress.
func (tc *TestsController) GetTestResults(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session, err := tc.loadOwnedSession(c.Params("id"), userID)
	if err != nil {
		return sessionLookupError(c, err)
	}
	if session.Status == models.SessionInProgress {
		return utils.Forbidden(c, "Results are available after the test ends")
	}

	var entries []models.TestResultEntry
	if err := tc.DB.Where("test_session_id = ?", session.ID).Find(&entries).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	results := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		item := fiber.Map{
			"question_id":        entry.QuestionID,
			"correct":            entry.Correct,
			"partially_correct":  entry.PartiallyCorrect,
			"skipped":            entry.Skipped,
			"marked":             entry.Marked,
			"score":              entry.Score,
			"time_spent_seconds": entry.TimeSpentSeconds,
		}
		if question, err := tc.Repo.GetQuestion(entry.QuestionID); err == nil {
			item["answer_key"] = answerKeyPayload(question)
		}
		results = append(results, item)
	}

	return c.JSON(fiber.Map{
		"session_id": session.PublicID,
		"status":     session.Status,
		"results":    results,
	})
}

func (tc *TestsController) openSession(userID uint, selected []models.Question,
	tutorMode, timed, ngnEnabled bool, minutesPerQuestion float64) (*models.TestSession, error) {
	ids := make([]uint, len(selected))
	for i, q := range selected {
		ids[i] = q.ID
	}

	session := models.TestSession{
		PublicID:           uuid.NewString(),
		UserID:             userID,
		TutorMode:          tutorMode,
		Timed:              timed,
		NGNEnabled:         ngnEnabled,
		QuestionCount:      len(selected),
		MinutesPerQuestion: minutesPerQuestion,
		StartedAt:          time.Now(),
		Status:             models.SessionInProgress,
	}
	if err := session.SetQuestionIDs(ids); err != nil {
		return nil, err
	}
	if err := tc.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

var (
	errSessionNotFound  = errors.New("test session not found")
	errSessionForbidden = errors.New("no access to this test session")
)

// loadOwnedSession resolves a session public id to a session owned by the
// user.
func (tc *TestsController) loadOwnedSession(publicID string, userID uint) (*models.TestSession, error) {
	var session models.TestSession
	err := tc.DB.Where("public_id = ?", publicID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, errSessionForbidden
	}
	return &session, nil
}

func sessionLookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errSessionNotFound):
		return utils.NotFound(c, "Test session not found")
	case errors.Is(err, errSessionForbidden):
		return utils.Forbidden(c, "You don't have access to this test session")
	default:
		return utils.InternalServerError(c, "Could not query database")
	}
}

func presentAll(questions []models.Question) []services.QuestionWithChoices {
	presented := make([]services.QuestionWithChoices, len(questions))
	for i := range questions {
		presented[i] = services.PresentQuestion(&questions[i])
	}
	return presented
}

func answerKeyPayload(question *models.Question) fiber.Map {
	var correctPositions []int
	for _, opt := range question.Options {
		if opt.IsCorrect {
			correctPositions = append(correctPositions, opt.Position)
		}
	}
	return fiber.Map{
		"correct_positions": correctPositions,
		"explanation":       question.Explanation,
		"citations":         question.CitationList(),
	}
}

func parseIDList(raw string) []uint {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
