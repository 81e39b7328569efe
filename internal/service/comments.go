package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// CommentService covers threaded comments on answers.
type CommentService struct {
	base
}

// Create posts a comment on an answer, optionally as a reply to another
// comment on the same answer. The answer author is notified unless they
// commented themselves.
func (s *CommentService) Create(ctx context.Context, answerID uint, req models.CreateCommentRequest, actor Actor) (*models.Comment, error) {
	var comment models.Comment

	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var answer models.Answer
			if err := tx.First(&answer, answerID).Error; err != nil {
				return err
			}

			if req.ParentCommentID != nil {
				var parent models.Comment
				if err := tx.First(&parent, *req.ParentCommentID).Error; err != nil {
					return err
				}
				if parent.AnswerID != answerID {
					return fmt.Errorf("%w: parent comment belongs to a different answer", ErrMismatch)
				}
			}

			comment = models.Comment{
				Content:         req.Content,
				AuthorID:        actor.ID,
				AnswerID:        answerID,
				ParentCommentID: req.ParentCommentID,
			}
			if err := tx.Create(&comment).Error; err != nil {
				return err
			}

			if answer.AuthorID == actor.ID {
				return nil
			}
			notification := models.Notification{
				RecipientID: answer.AuthorID,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeComment,
				Title:       "New Comment",
				Message:     fmt.Sprintf("%s commented on your answer", actor.Username),
				QuestionID:  &answer.QuestionID,
				AnswerID:    &answer.ID,
				CommentID:   &comment.ID,
				Link:        fmt.Sprintf("/questions/%d", answer.QuestionID),
			}
			return tx.Create(&notification).Error
		}))
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, storeErr(err)
	}
	return &comment, nil
}

// ListByAnswer returns the answer's top-level comments with replies.
func (s *CommentService) ListByAnswer(ctx context.Context, answerID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("answer_id = ? AND parent_comment_id IS NULL", answerID).
		Preload("Author").
		Preload("Replies").
		Preload("Replies.Author").
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}

// Delete removes a comment, its replies and all their votes. Author or
// admin only.
func (s *CommentService) Delete(ctx context.Context, id uint, actor Actor) error {
	return s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var comment models.Comment
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, id).Error; err != nil {
				return err
			}
			if comment.AuthorID != actor.ID && !actor.IsAdmin() {
				return ErrNotAuthorized
			}

			var replyIDs []uint
			if err := tx.Model(&models.Comment{}).Where("parent_comment_id = ?", id).Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
			ids := append(replyIDs, id)

			if err := tx.Where("comment_id IN ?", ids).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("comment_id IN ?", ids).Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
		}))
	})
}
