package services

import (
	"fmt"
	"testing"

	"nclexprep/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProgress{},
		&models.Topic{},
		&models.Subtopic{},
		&models.Question{},
		&models.AnswerOption{},
		&models.UserQuestionStatus{},
		&models.TestSession{},
		&models.TestResultEntry{},
		&models.TopicPerformance{},
	)
	require.NoError(t, err)
	return db
}

func sampleQuestionByID(t *testing.T, id uint) models.Question {
	t.Helper()
	for _, q := range SampleQuestions() {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("no sample question with id %d", id)
	return models.Question{}
}
