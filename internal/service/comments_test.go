package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

func TestCreateCommentAndReply(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	question := createQuestion(t, svc, asker, "Comment threads")
	answer := createAnswer(t, svc, question.ID, helper)

	top, err := svc.Comments.Create(ctx, answer.ID, models.CreateCommentRequest{Content: "top level"}, actorFor(asker))
	require.NoError(t, err)

	reply, err := svc.Comments.Create(ctx, answer.ID, models.CreateCommentRequest{
		Content:         "a reply",
		ParentCommentID: &top.ID,
	}, actorFor(helper))
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, top.ID, *reply.ParentCommentID)

	comments, err := svc.Comments.ListByAnswer(ctx, answer.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "a reply", comments[0].Replies[0].Content)

	// the answer author gets a comment notification
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", helper.ID, models.NotificationTypeComment).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateCommentParentMismatch(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helperA := createUser(t, db, "helpera", models.RoleUser)
	helperB := createUser(t, db, "helperb", models.RoleUser)
	question := createQuestion(t, svc, asker, "Parent checks")
	answerA := createAnswer(t, svc, question.ID, helperA)
	answerB := createAnswer(t, svc, question.ID, helperB)

	parent, err := svc.Comments.Create(ctx, answerA.ID, models.CreateCommentRequest{Content: "on A"}, actorFor(asker))
	require.NoError(t, err)

	_, err = svc.Comments.Create(ctx, answerB.ID, models.CreateCommentRequest{
		Content:         "wrong thread",
		ParentCommentID: &parent.ID,
	}, actorFor(asker))
	assert.ErrorIs(t, err, service.ErrMismatch)
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	voter := createUser(t, db, "voter", models.RoleUser)
	question := createQuestion(t, svc, asker, "Deleting threads")
	answer := createAnswer(t, svc, question.ID, helper)

	top, err := svc.Comments.Create(ctx, answer.ID, models.CreateCommentRequest{Content: "top"}, actorFor(asker))
	require.NoError(t, err)
	reply, err := svc.Comments.Create(ctx, answer.ID, models.CreateCommentRequest{
		Content:         "reply",
		ParentCommentID: &top.ID,
	}, actorFor(helper))
	require.NoError(t, err)
	_, err = svc.Votes.CastVote(ctx, service.TargetComment, reply.ID, voter.ID, "upvote")
	require.NoError(t, err)

	require.NoError(t, svc.Comments.Delete(ctx, top.ID, actorFor(asker)))

	var comments, votes int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Vote{}).Where("comment_id IS NOT NULL").Count(&votes).Error)
	assert.Zero(t, comments)
	assert.Zero(t, votes)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	asker := createUser(t, db, "asker", models.RoleUser)
	helper := createUser(t, db, "helper", models.RoleUser)
	other := createUser(t, db, "other", models.RoleUser)
	question := createQuestion(t, svc, asker, "Comment permissions")
	answer := createAnswer(t, svc, question.ID, helper)

	comment, err := svc.Comments.Create(ctx, answer.ID, models.CreateCommentRequest{Content: "mine"}, actorFor(asker))
	require.NoError(t, err)

	err = svc.Comments.Delete(ctx, comment.ID, actorFor(other))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}
