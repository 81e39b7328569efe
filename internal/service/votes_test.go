package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

func TestCastVoteAndScore(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	question := createQuestion(t, svc, author, "Voting basics")

	score, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, alice.ID, "upvote")
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	score, err = svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, bob.ID, "downvote")
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	assert.Equal(t, 0, questionScore(t, db, question.ID))
}

func TestCastVoteIdempotent(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	alice := createUser(t, db, "alice", models.RoleUser)
	question := createQuestion(t, svc, author, "Idempotent votes")

	for i := 0; i < 3; i++ {
		score, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, alice.ID, "upvote")
		require.NoError(t, err)
		assert.Equal(t, 1, score)
	}

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("question_id = ?", question.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCastVoteSwitchesDirection(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	alice := createUser(t, db, "alice", models.RoleUser)
	question := createQuestion(t, svc, author, "Switching votes")

	_, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, alice.ID, "upvote")
	require.NoError(t, err)

	score, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, alice.ID, "downvote")
	require.NoError(t, err)
	assert.Equal(t, -1, score)

	// one ledger row, never two
	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("question_id = ? AND user_id = ?", question.ID, alice.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	state, err := svc.Votes.State(ctx, service.TargetQuestion, question.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, state.HasUpvoted)
	assert.True(t, state.HasDownvoted)
}

func TestCastVoteSelfVoteRejected(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	question := createQuestion(t, svc, author, "Self voting")

	_, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, author.ID, "upvote")
	assert.ErrorIs(t, err, service.ErrSelfVote)
	assert.Equal(t, 0, questionScore(t, db, question.ID))
}

func TestCastVoteMissingEntity(t *testing.T) {
	svc, db := newServices(t)
	alice := createUser(t, db, "alice", models.RoleUser)

	_, err := svc.Votes.CastVote(context.Background(), service.TargetQuestion, 9999, alice.ID, "upvote")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRetractVote(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	alice := createUser(t, db, "alice", models.RoleUser)
	question := createQuestion(t, svc, author, "Retracting votes")

	_, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, alice.ID, "upvote")
	require.NoError(t, err)

	score, err := svc.Votes.RetractVote(ctx, service.TargetQuestion, question.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	// retracting again is a no-op
	score, err = svc.Votes.RetractVote(ctx, service.TargetQuestion, question.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	state, err := svc.Votes.State(ctx, service.TargetQuestion, question.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, state.HasUpvoted)
	assert.False(t, state.HasDownvoted)
}

func TestVoteTargetsIndependent(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	alice := createUser(t, db, "alice", models.RoleUser)
	question := createQuestion(t, svc, author, "Independent ledgers")
	answer := createAnswer(t, svc, question.ID, alice)
	bob := createUser(t, db, "bob", models.RoleUser)

	_, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, bob.ID, "upvote")
	require.NoError(t, err)
	score, err := svc.Votes.CastVote(ctx, service.TargetAnswer, answer.ID, bob.ID, "downvote")
	require.NoError(t, err)
	assert.Equal(t, -1, score)

	assert.Equal(t, 1, questionScore(t, db, question.ID))
}

func TestConcurrentVotersConverge(t *testing.T) {
	svc, db := newServices(t)
	ctx := context.Background()

	author := createUser(t, db, "author", models.RoleUser)
	question := createQuestion(t, svc, author, "Concurrent voting")

	const voters = 8
	users := make([]models.User, voters)
	for i := range users {
		users[i] = createUser(t, db, "voter"+string(rune('a'+i)), models.RoleUser)
	}

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for _, u := range users {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.Votes.CastVote(ctx, service.TargetQuestion, question.ID, id, "upvote")
			errs <- err
		}(u.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, voters, questionScore(t, db, question.ID))
}
