package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// AcceptanceService keeps Question.accepted_answer_id and Answer.is_accepted
// in lockstep: a question has at most one accepted answer, and an answer is
// accepted iff its parent question points at it.
type AcceptanceService struct {
	base
}

// AcceptAnswer marks answerID as the accepted answer of questionID. Only the
// question author may accept. If another answer is currently accepted it is
// un-accepted first; the whole switch happens in one transaction so no state
// with two accepted answers, or a dangling accepted_answer_id, is ever
// visible.
func (s *AcceptanceService) AcceptAnswer(ctx context.Context, questionID, answerID uint, actor Actor) error {
	return s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var question models.Question
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&question, questionID).Error; err != nil {
				return err
			}
			if question.AuthorID != actor.ID {
				return fmt.Errorf("%w: only the question author can accept answers", ErrNotAuthorized)
			}

			var answer models.Answer
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&answer, answerID).Error; err != nil {
				return err
			}
			if answer.QuestionID != question.ID {
				return fmt.Errorf("%w: answer %d does not belong to question %d", ErrMismatch, answerID, questionID)
			}

			if question.AcceptedAnswerID != nil && *question.AcceptedAnswerID == answer.ID {
				return nil
			}

			// Un-accept the previous answer before the new acceptance is
			// applied. Inside the transaction a failure here aborts the
			// whole switch.
			if question.AcceptedAnswerID != nil {
				if err := tx.Model(&models.Answer{}).
					Where("id = ?", *question.AcceptedAnswerID).
					Updates(map[string]interface{}{
						"is_accepted": false,
						"accepted_at": nil,
						"accepted_by": nil,
					}).Error; err != nil {
					return err
				}
			}

			now := time.Now().UTC()
			if err := tx.Model(&answer).Updates(map[string]interface{}{
				"is_accepted": true,
				"accepted_at": now,
				"accepted_by": actor.ID,
			}).Error; err != nil {
				return err
			}

			if err := tx.Model(&question).Update("accepted_answer_id", answer.ID).Error; err != nil {
				return err
			}

			// Sent unconditionally, even when the question author accepted
			// their own answer.
			notification := models.Notification{
				RecipientID: answer.AuthorID,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeAccept,
				Title:       "Answer Accepted",
				Message:     fmt.Sprintf("Your answer to %q has been accepted!", question.Title),
				QuestionID:  &question.ID,
				AnswerID:    &answer.ID,
				Link:        fmt.Sprintf("/questions/%d", question.ID),
			}
			return tx.Create(&notification).Error
		}))
	})
}
