package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

func TestAcceptAnswer(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	question := createQuestion(t, svc, asker, "Accepting answers")
	answer := createAnswer(t, svc, question.ID, helper)

	require.NoError(t, svc.Acceptance.AcceptAnswer(ctx, question.ID, answer.ID, actorFor(asker)))

	var gotQuestion models.Question
	require.NoError(t, db.First(&gotQuestion, question.ID).Error)
	require.NotNil(t, gotQuestion.AcceptedAnswerID)
	assert.Equal(t, answer.ID, *gotQuestion.AcceptedAnswerID)

	var gotAnswer models.Answer
	require.NoError(t, db.First(&gotAnswer, answer.ID).Error)
	assert.True(t, gotAnswer.IsAccepted)
	require.NotNil(t, gotAnswer.AcceptedBy)
	assert.Equal(t, asker.ID, *gotAnswer.AcceptedBy)

	// the answer author is notified
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", helper.ID, models.NotificationTypeAccept).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcceptAnswerOnlyAuthor(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	question := createQuestion(t, svc, asker, "Authorization")
	answer := createAnswer(t, svc, question.ID, helper)

	err := svc.Acceptance.AcceptAnswer(ctx, question.ID, answer.ID, actorFor(helper))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	var gotAnswer models.Answer
	require.NoError(t, db.First(&gotAnswer, answer.ID).Error)
	assert.False(t, gotAnswer.IsAccepted)
}

func TestAcceptAnswerWrongQuestion(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	question := createQuestion(t, svc, asker, "First question")
	other := createQuestion(t, svc, asker, "Second question")
	answer := createAnswer(t, svc, other.ID, helper)

	err := svc.Acceptance.AcceptAnswer(ctx, question.ID, answer.ID, actorFor(asker))
	assert.ErrorIs(t, err, service.ErrMismatch)
}

func TestAcceptAnswerSwitches(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helperA := createUser(t, db, "helpera", models.RoleUser)
	helperB := createUser(t, db, "helperb", models.RoleUser)
	question := createQuestion(t, svc, asker, "Switching acceptance")
	first := createAnswer(t, svc, question.ID, helperA)
	second := createAnswer(t, svc, question.ID, helperB)

	require.NoError(t, svc.Acceptance.AcceptAnswer(ctx, question.ID, first.ID, actorFor(asker)))
	require.NoError(t, svc.Acceptance.AcceptAnswer(ctx, question.ID, second.ID, actorFor(asker)))

	var accepted []models.Answer
	require.NoError(t, db.Where("question_id = ? AND is_accepted = true", question.ID).Find(&accepted).Error)
	require.Len(t, accepted, 1)
	assert.Equal(t, second.ID, accepted[0].ID)

	var gotQuestion models.Question
	require.NoError(t, db.First(&gotQuestion, question.ID).Error)
	require.NotNil(t, gotQuestion.AcceptedAnswerID)
	assert.Equal(t, second.ID, *gotQuestion.AcceptedAnswerID)

	var gotFirst models.Answer
	require.NoError(t, db.First(&gotFirst, first.ID).Error)
	assert.False(t, gotFirst.IsAccepted)
	assert.Nil(t, gotFirst.AcceptedAt)
}

func TestAcceptAnswerIdempotent(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	question := createQuestion(t, svc, asker, "Re-accepting")
	answer := createAnswer(t, svc, question.ID, helper)

	require.NoError(t, svc.Acceptance.AcceptAnswer(ctx, question.ID, answer.ID, actorFor(asker)))
	require.NoError(t, svc.Acceptance.AcceptAnswer(ctx, question.ID, answer.ID, actorFor(asker)))

	// the no-op second call does not notify again
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", helper.ID, models.NotificationTypeAccept).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
