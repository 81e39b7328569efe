package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// ModerationService applies admin decisions to questions, answers, tags and
// users, and notifies the affected author. Every operation verifies the
// actor's role itself rather than trusting the transport layer.
type ModerationService struct {
	base
}

// ModerateQuestion sets the question's status and moderation fields.
func (s *ModerationService) ModerateQuestion(ctx context.Context, id uint, status models.QuestionStatus, reason string, actor Actor) (*models.Question, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if !models.ValidQuestionStatus(status) {
		return nil, fmt.Errorf("%w: unknown question status %q", ErrMismatch, status)
	}

	var question models.Question
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&question, id).Error; err != nil {
				return err
			}

			now := time.Now().UTC()
			if err := tx.Model(&question).Updates(map[string]interface{}{
				"status":            status,
				"is_moderated":      true,
				"moderated_by":      actor.ID,
				"moderated_at":      now,
				"moderation_reason": reason,
			}).Error; err != nil {
				return err
			}

			notification := models.Notification{
				RecipientID: question.AuthorID,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeModeration,
				Title:       "Question Moderated",
				Message:     fmt.Sprintf("Your question %q has been marked %s. Reason: %s", question.Title, status, reason),
				QuestionID:  &question.ID,
				Link:        fmt.Sprintf("/questions/%d", question.ID),
			}
			return tx.Create(&notification).Error
		}))
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ModerateAnswer flags an answer. Answers carry no status of their own;
// moderation only records who, when and why.
func (s *ModerationService) ModerateAnswer(ctx context.Context, id uint, reason string, actor Actor) (*models.Answer, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	var answer models.Answer
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&answer, id).Error; err != nil {
				return err
			}

			now := time.Now().UTC()
			if err := tx.Model(&answer).Updates(map[string]interface{}{
				"is_moderated":      true,
				"moderated_by":      actor.ID,
				"moderated_at":      now,
				"moderation_reason": reason,
			}).Error; err != nil {
				return err
			}

			notification := models.Notification{
				RecipientID: answer.AuthorID,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeModeration,
				Title:       "Answer Moderated",
				Message:     fmt.Sprintf("Your answer has been moderated. Reason: %s", reason),
				AnswerID:    &answer.ID,
				Link:        fmt.Sprintf("/questions/%d", answer.QuestionID),
			}
			return tx.Create(&notification).Error
		}))
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// ModerateTag flags a tag. The creator is notified when known.
func (s *ModerationService) ModerateTag(ctx context.Context, id uint, reason string, actor Actor) (*models.Tag, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	var tag models.Tag
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tag, id).Error; err != nil {
				return err
			}

			now := time.Now().UTC()
			if err := tx.Model(&tag).Updates(map[string]interface{}{
				"is_moderated":      true,
				"moderated_by":      actor.ID,
				"moderated_at":      now,
				"moderation_reason": reason,
			}).Error; err != nil {
				return err
			}

			if tag.CreatedBy == nil {
				return nil
			}
			notification := models.Notification{
				RecipientID: *tag.CreatedBy,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeModeration,
				Title:       "Tag Moderated",
				Message:     fmt.Sprintf("The tag %q has been moderated. Reason: %s", tag.Name, reason),
			}
			return tx.Create(&notification).Error
		}))
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ToggleBan bans an unbanned user or unbans a banned one. Admins cannot be
// banned. A freshly banned user gets an alert notification.
func (s *ModerationService) ToggleBan(ctx context.Context, userID uint, reason string, actor Actor) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	var user models.User
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
				return err
			}
			if user.Role == models.RoleAdmin {
				return fmt.Errorf("%w: cannot ban admin users", ErrNotAuthorized)
			}

			user.IsBanned = !user.IsBanned
			updates := map[string]interface{}{
				"is_banned": user.IsBanned,
				"banned_by": actor.ID,
			}
			if user.IsBanned {
				updates["banned_at"] = time.Now().UTC()
				updates["ban_reason"] = reason
			} else {
				updates["banned_at"] = nil
				updates["ban_reason"] = ""
			}
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return err
			}

			if !user.IsBanned {
				return nil
			}
			notification := models.Notification{
				RecipientID: user.ID,
				SenderID:    &actor.ID,
				Type:        models.NotificationTypeAlert,
				Title:       "Account Banned",
				Message:     fmt.Sprintf("Your account has been banned. Reason: %s", reason),
				Link:        "/contact",
			}
			return tx.Create(&notification).Error
		}))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", userID).Bool("banned", user.IsBanned).Msg("ban toggled")
	return &user, nil
}

// BroadcastAlert fans an alert notification out to every non-banned user.
func (s *ModerationService) BroadcastAlert(ctx context.Context, title, message string, actor Actor) (int, error) {
	if !actor.IsAdmin() {
		return 0, ErrNotAuthorized
	}

	var recipients []uint
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_banned = false").
		Pluck("id", &recipients).Error; err != nil {
		return 0, storeErr(err)
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, id := range recipients {
		notifications = append(notifications, models.Notification{
			RecipientID: id,
			SenderID:    &actor.ID,
			Type:        models.NotificationTypeAlert,
			Title:       title,
			Message:     message,
			Link:        "/",
		})
	}
	if len(notifications) == 0 {
		return 0, nil
	}

	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).CreateInBatches(&notifications, 200).Error)
	})
	if err != nil {
		return 0, err
	}
	return len(notifications), nil
}
