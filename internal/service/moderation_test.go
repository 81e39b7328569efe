package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

func TestModerateQuestion(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	question := createQuestion(t, svc, author, "Needs moderation")

	moderated, err := svc.Moderation.ModerateQuestion(ctx, question.ID, models.QuestionStatusClosed, "off topic", actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, models.QuestionStatusClosed, moderated.Status)

	var got models.Question
	require.NoError(t, db.First(&got, question.ID).Error)
	assert.Equal(t, models.QuestionStatusClosed, got.Status)
	assert.True(t, got.IsModerated)
	require.NotNil(t, got.ModeratedBy)
	assert.Equal(t, admin.ID, *got.ModeratedBy)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", author.ID, models.NotificationTypeModeration).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestModerateQuestionRejectsNonAdmin(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	question := createQuestion(t, svc, author, "Sneaky moderation")

	_, err := svc.Moderation.ModerateQuestion(ctx, question.ID, models.QuestionStatusClosed, "nope", actorFor(author))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}

func TestModerateQuestionInvalidStatus(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	question := createQuestion(t, svc, author, "Bad status")

	_, err := svc.Moderation.ModerateQuestion(ctx, question.ID, "banana", "reason", actorFor(admin))
	assert.ErrorIs(t, err, service.ErrMismatch)
}

func TestToggleBan(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	admin := createUser(t, db, "admin", models.RoleAdmin)
	target := createUser(t, db, "target", models.RoleUser)

	banned, err := svc.Moderation.ToggleBan(ctx, target.ID, "spam", actorFor(admin))
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.Equal(t, "spam", banned.BanReason)

	// ban comes with an alert notification
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", target.ID, models.NotificationTypeAlert).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	unbanned, err := svc.Moderation.ToggleBan(ctx, target.ID, "", actorFor(admin))
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)
	assert.Empty(t, unbanned.BanReason)
	assert.Nil(t, unbanned.BannedAt)
}

func TestToggleBanAdminUntouchable(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	admin := createUser(t, db, "admin", models.RoleAdmin)
	other := createUser(t, db, "other", models.RoleAdmin)

	_, err := svc.Moderation.ToggleBan(ctx, other.ID, "power grab", actorFor(admin))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}

func TestBroadcastAlertSkipsBanned(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	admin := createUser(t, db, "admin", models.RoleAdmin)
	createUser(t, db, "alice", models.RoleUser)
	banned := createUser(t, db, "banned", models.RoleUser)
	_, err := svc.Moderation.ToggleBan(ctx, banned.ID, "spam", actorFor(admin))
	require.NoError(t, err)

	sent, err := svc.Moderation.BroadcastAlert(ctx, "Maintenance", "Going down at midnight", actorFor(admin))
	require.NoError(t, err)
	// admin + alice, not the banned user
	assert.Equal(t, 2, sent)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND title = ?", banned.ID, "Maintenance").
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminDashboard(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	admin := createUser(t, db, "admin", models.RoleAdmin)
	author := createUser(t, db, "author", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	question := createQuestion(t, svc, author, "Dashboard numbers")
	answer := createAnswer(t, svc, question.ID, helper)
	require.NoError(t, svc.Acceptance.AcceptAnswer(ctx, question.ID, answer.ID, actorFor(author)))

	stats, err := svc.Admin.Dashboard(ctx, actorFor(admin))
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalQuestions)
	assert.EqualValues(t, 1, stats.TotalAnswers)
	assert.EqualValues(t, 1, stats.AcceptedAnswers)

	_, err = svc.Admin.Dashboard(ctx, actorFor(author))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}
