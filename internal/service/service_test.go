package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/config"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/testdb"
)

func newServices(t *testing.T) (*service.Services, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	testdb.Reset(t, db)
	svc := service.New(db, config.StoreConfig{
		RetryAttempts: 2,
		RetryBackoff:  5 * time.Millisecond,
	}, zerolog.Nop())
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func actorFor(user models.User) service.Actor {
	return service.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
}

func createQuestion(t *testing.T, svc *service.Services, author models.User, title string, tags ...string) *models.Question {
	t.Helper()
	if len(tags) == 0 {
		tags = []string{"go"}
	}
	question, err := svc.Questions.Create(context.Background(), models.CreateQuestionRequest{
		Title:       title,
		Description: "How does this work?",
		Tags:        tags,
	}, actorFor(author))
	require.NoError(t, err)
	return question
}

func createAnswer(t *testing.T, svc *service.Services, questionID uint, author models.User) *models.Answer {
	t.Helper()
	answer, err := svc.Answers.Create(context.Background(), questionID, models.CreateAnswerRequest{
		Content: "Like this.",
	}, actorFor(author))
	require.NoError(t, err)
	return answer
}

func questionScore(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var question models.Question
	require.NoError(t, db.First(&question, id).Error)
	return question.Score
}
