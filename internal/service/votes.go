package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// VoteTarget identifies which kind of votable entity a ledger mutation is
// aimed at.
type VoteTarget string

const (
	TargetQuestion VoteTarget = "question"
	TargetAnswer   VoteTarget = "answer"
	TargetComment  VoteTarget = "comment"
)

// VoteState reports how a given user currently stands on an entity.
type VoteState struct {
	HasUpvoted   bool `json:"hasUpvoted"`
	HasDownvoted bool `json:"hasDownvoted"`
}

// VoteService maintains the per-entity vote ledger: at most one vote per user
// per entity, up/down sets disjoint, score always |up| - |down|.
type VoteService struct {
	base
}

// CastVote records voteType ("upvote"/"downvote") by voter on the target
// entity and returns the new score. Re-casting the same vote type is a no-op;
// casting the opposite type moves the voter across. The entity row is locked
// for the duration of the transaction, serializing concurrent mutations to
// the same entity while leaving other entities untouched.
func (s *VoteService) CastVote(ctx context.Context, target VoteTarget, id uint, voter uint, voteType string) (int, error) {
	value, err := voteValue(voteType)
	if err != nil {
		return 0, err
	}

	var score int
	err = s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			authorID, err := lockVotable(tx, target, id)
			if err != nil {
				return err
			}
			if authorID == voter {
				return ErrSelfVote
			}

			var existing models.Vote
			res := tx.Where(targetColumn(target)+" = ? AND user_id = ?", id, voter).Limit(1).Find(&existing)
			if res.Error != nil {
				return res.Error
			}

			switch {
			case res.RowsAffected == 0:
				vote := models.Vote{UserID: voter, Value: value}
				setTarget(&vote, target, id)
				if err := tx.Create(&vote).Error; err != nil {
					return err
				}
			case existing.Value == value:
				// idempotent re-vote, state unchanged
			default:
				if err := tx.Model(&existing).Update("value", value).Error; err != nil {
					return err
				}
			}

			score, err = recomputeScore(tx, target, id)
			return err
		}))
	})
	return score, err
}

// RetractVote removes the voter's ledger entry, whichever direction it was,
// and returns the new score. Retracting a vote that does not exist is a
// no-op.
func (s *VoteService) RetractVote(ctx context.Context, target VoteTarget, id uint, voter uint) (int, error) {
	var score int
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := lockVotable(tx, target, id); err != nil {
				return err
			}
			if err := tx.Where(targetColumn(target)+" = ? AND user_id = ?", id, voter).
				Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			var err error
			score, err = recomputeScore(tx, target, id)
			return err
		}))
	})
	return score, err
}

// State reports whether user has an up or down vote on the entity.
func (s *VoteService) State(ctx context.Context, target VoteTarget, id uint, user uint) (VoteState, error) {
	var vote models.Vote
	res := s.db.WithContext(ctx).
		Where(targetColumn(target)+" = ? AND user_id = ?", id, user).
		Limit(1).Find(&vote)
	if res.Error != nil {
		return VoteState{}, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return VoteState{}, nil
	}
	return VoteState{
		HasUpvoted:   vote.Value == models.VoteUp,
		HasDownvoted: vote.Value == models.VoteDown,
	}, nil
}

func voteValue(voteType string) (int, error) {
	switch voteType {
	case "upvote":
		return models.VoteUp, nil
	case "downvote":
		return models.VoteDown, nil
	}
	return 0, fmt.Errorf("%w: unknown vote type %q", ErrMismatch, voteType)
}

func targetColumn(target VoteTarget) string {
	switch target {
	case TargetQuestion:
		return "question_id"
	case TargetAnswer:
		return "answer_id"
	default:
		return "comment_id"
	}
}

func setTarget(v *models.Vote, target VoteTarget, id uint) {
	switch target {
	case TargetQuestion:
		v.QuestionID = &id
	case TargetAnswer:
		v.AnswerID = &id
	default:
		v.CommentID = &id
	}
}

// lockVotable loads the target row FOR UPDATE and returns its author id.
// The row lock is what serializes concurrent ledger mutations per entity.
func lockVotable(tx *gorm.DB, target VoteTarget, id uint) (uint, error) {
	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	switch target {
	case TargetQuestion:
		var q models.Question
		if err := locked.First(&q, id).Error; err != nil {
			return 0, err
		}
		return q.AuthorID, nil
	case TargetAnswer:
		var a models.Answer
		if err := locked.First(&a, id).Error; err != nil {
			return 0, err
		}
		return a.AuthorID, nil
	default:
		var c models.Comment
		if err := locked.First(&c, id).Error; err != nil {
			return 0, err
		}
		return c.AuthorID, nil
	}
}

// recomputeScore derives the score from the ledger counts and writes it back
// to the entity, so the denormalized column can never drift.
func recomputeScore(tx *gorm.DB, target VoteTarget, id uint) (int, error) {
	col := targetColumn(target)

	var up, down int64
	if err := tx.Model(&models.Vote{}).Where(col+" = ? AND value = ?", id, models.VoteUp).Count(&up).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&models.Vote{}).Where(col+" = ? AND value = ?", id, models.VoteDown).Count(&down).Error; err != nil {
		return 0, err
	}

	score := int(up - down)

	var model interface{}
	switch target {
	case TargetQuestion:
		model = &models.Question{}
	case TargetAnswer:
		model = &models.Answer{}
	default:
		model = &models.Comment{}
	}
	if err := tx.Model(model).Where("id = ?", id).UpdateColumn("score", score).Error; err != nil {
		return 0, err
	}
	return score, nil
}
