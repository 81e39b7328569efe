package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// AnswerService covers answer CRUD and the answer-side consistency rules:
// one answer per author per question, and no question left pointing at a
// deleted accepted answer.
type AnswerService struct {
	base
}

// Create posts an answer to a question. A second answer by the same author
// on the same question is rejected. The question author is notified unless
// they answered themselves.
func (s *AnswerService) Create(ctx context.Context, questionID uint, req models.CreateAnswerRequest, actor Actor) (*models.Answer, error) {
	var answer models.Answer

	err := s.withRetry(ctx, func() error {
		err := storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var question models.Question
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&question, questionID).Error; err != nil {
				return err
			}

			var existing int64
			if err := tx.Model(&models.Answer{}).
				Where("question_id = ? AND author_id = ?", questionID, actor.ID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return ErrDuplicateAnswer
			}

			answer = models.Answer{
				Content:    req.Content,
				AuthorID:   actor.ID,
				QuestionID: questionID,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}

			if question.AuthorID == actor.ID {
				return nil
			}
			notification := models.Notification{
				RecipientID: question.AuthorID,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeAnswer,
				Title:       "New Answer",
				Message:     fmt.Sprintf("%s answered your question %q", actor.Username, question.Title),
				QuestionID:  &question.ID,
				AnswerID:    &answer.ID,
				Link:        fmt.Sprintf("/questions/%d", question.ID),
			}
			return tx.Create(&notification).Error
		}))
		// The unique (question_id, author_id) index backs the pre-check; a
		// concurrent duplicate insert lands here as a conflict.
		if errors.Is(err, ErrConflict) {
			return ErrDuplicateAnswer
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, answer.ID)
}

// Get fetches an answer with author and comments.
func (s *AnswerService) Get(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", "parent_comment_id IS NULL").
		Preload("Comments.Author").
		Preload("Comments.Replies").
		Preload("Comments.Replies.Author").
		First(&answer, id).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &answer, nil
}

// ListByQuestion returns the question's answers, sorted by votes (default),
// newest or oldest.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID uint, sort string) ([]models.Answer, error) {
	db := s.db.WithContext(ctx).Where("question_id = ?", questionID)

	switch sort {
	case "newest":
		db = db.Order("created_at desc")
	case "oldest":
		db = db.Order("created_at asc")
	default: // votes
		db = db.Order("score desc, created_at desc")
	}

	var answers []models.Answer
	if err := db.Preload("Author").
		Preload("Comments", "parent_comment_id IS NULL").
		Preload("Comments.Author").
		Find(&answers).Error; err != nil {
		return nil, storeErr(err)
	}
	return answers, nil
}

// Update edits the answer content. Author or admin only.
func (s *AnswerService) Update(ctx context.Context, id uint, req models.UpdateAnswerRequest, actor Actor) (*models.Answer, error) {
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var answer models.Answer
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&answer, id).Error; err != nil {
				return err
			}
			if answer.AuthorID != actor.ID && !actor.IsAdmin() {
				return ErrNotAuthorized
			}
			return tx.Model(&answer).Update("content", req.Content).Error
		}))
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes an answer together with its comments, votes and
// notifications. If it was the question's accepted answer, the question's
// accepted_answer_id is cleared in the same transaction so it can never
// point at a dead answer. Author or admin only.
func (s *AnswerService) Delete(ctx context.Context, id uint, actor Actor) error {
	return s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var answer models.Answer
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&answer, id).Error; err != nil {
				return err
			}
			if answer.AuthorID != actor.ID && !actor.IsAdmin() {
				return ErrNotAuthorized
			}

			var question models.Question
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&question, answer.QuestionID).Error; err != nil {
				return err
			}
			if question.AcceptedAnswerID != nil && *question.AcceptedAnswerID == answer.ID {
				if err := tx.Model(&question).Update("accepted_answer_id", nil).Error; err != nil {
					return err
				}
			}

			var commentIDs []uint
			if err := tx.Model(&models.Comment{}).Where("answer_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
				return err
			}
			if len(commentIDs) > 0 {
				if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Vote{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("answer_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("answer_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
				return err
			}

			if err := tx.Delete(&answer).Error; err != nil {
				return err
			}

			s.log.Info().Uint("answer_id", id).Uint("question_id", answer.QuestionID).Msg("answer deleted")
			return nil
		}))
	})
}
