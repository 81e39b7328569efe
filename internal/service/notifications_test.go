package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

func seedNotifications(t *testing.T, svc *service.Services, db *gorm.DB) (models.User, models.User) {
	t.Helper()
	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	for _, title := range []string{"First", "Second", "Third"} {
		question := createQuestion(t, svc, asker, title)
		createAnswer(t, svc, question.ID, helper)
	}
	return asker, helper
}

func TestListNotifications(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker, _ := seedNotifications(t, svc, db)

	result, err := svc.Notifications.List(ctx, asker.ID, 1, 2, false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Total)
	assert.EqualValues(t, 3, result.UnreadCount)
	assert.Len(t, result.Notifications, 2)
	assert.Equal(t, 2, result.TotalPages)
}

func TestMarkReadRecipientOnly(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker, helper := seedNotifications(t, svc, db)

	result, err := svc.Notifications.List(ctx, asker.ID, 1, 10, false)
	require.NoError(t, err)
	target := result.Notifications[0]

	_, err = svc.Notifications.MarkRead(ctx, target.ID, actorFor(helper))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	read, err := svc.Notifications.MarkRead(ctx, target.ID, actorFor(asker))
	require.NoError(t, err)
	assert.Equal(t, target.ID, read.ID)

	count, err := svc.Notifications.UnreadCount(ctx, asker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestMarkAllRead(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker, _ := seedNotifications(t, svc, db)

	require.NoError(t, svc.Notifications.MarkAllRead(ctx, actorFor(asker)))

	count, err := svc.Notifications.UnreadCount(ctx, asker.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	unread, err := svc.Notifications.List(ctx, asker.ID, 1, 10, true)
	require.NoError(t, err)
	assert.Empty(t, unread.Notifications)
}

func TestDeleteNotificationRecipientOnly(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker, helper := seedNotifications(t, svc, db)

	result, err := svc.Notifications.List(ctx, asker.ID, 1, 10, false)
	require.NoError(t, err)
	target := result.Notifications[0]

	err = svc.Notifications.Delete(ctx, target.ID, actorFor(helper))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	require.NoError(t, svc.Notifications.Delete(ctx, target.ID, actorFor(asker)))

	after, err := svc.Notifications.List(ctx, asker.ID, 1, 10, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, after.Total)
}
