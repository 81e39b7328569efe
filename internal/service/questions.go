package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// QuestionService covers question CRUD, listing and the delete cascade.
type QuestionService struct {
	base
}

// Create stores a new question and adopts its tags, creating tags on first
// use and bumping usage_count on each.
func (s *QuestionService) Create(ctx context.Context, req models.CreateQuestionRequest, actor Actor) (*models.Question, error) {
	names, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AuthorID:    actor.ID,
		Status:      models.QuestionStatusActive,
	}

	err = s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			tags, err := adoptTags(tx, names, actor.ID)
			if err != nil {
				return err
			}
			if err := tx.Model(&question).Association("Tags").Append(&tags); err != nil {
				return err
			}
			question.Tags = tags
			return nil
		}))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("question_id", question.ID).Uint("author_id", actor.ID).Msg("question created")
	return s.load(ctx, question.ID)
}

// Get fetches a question with its author, tags and answers, and counts the
// read as one view. The increment is a single atomic column update.
func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, storeErr(err)
	}
	question.Views++

	return question, nil
}

// List returns a filtered, sorted, paginated page of questions.
func (s *QuestionService) List(ctx context.Context, q models.QuestionListQuery) (*models.QuestionListResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	db := s.db.WithContext(ctx).Model(&models.Question{})

	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if q.Tag != "" {
		db = db.Where(
			"id IN (?)",
			s.db.Table("question_tags").
				Select("question_tags.question_id").
				Joins("JOIN tags ON tags.id = question_tags.tag_id").
				Where("tags.name = ?", strings.ToLower(q.Tag)),
		)
	}

	switch q.Sort {
	case "oldest":
		db = db.Order("created_at asc")
	case "votes":
		db = db.Order("score desc")
	case "views":
		db = db.Order("views desc")
	case "unanswered":
		db = db.Where("NOT EXISTS (SELECT 1 FROM answers WHERE answers.question_id = questions.id)").
			Order("created_at desc")
	default: // newest
		db = db.Order("created_at desc")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, storeErr(err)
	}

	var questions []models.Question
	if err := db.Preload("Author").Preload("Tags").
		Limit(limit).Offset((page - 1) * limit).
		Find(&questions).Error; err != nil {
		return nil, storeErr(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.QuestionListResult{
		Questions:   questions,
		TotalPages:  totalPages,
		CurrentPage: page,
		Total:       total,
	}, nil
}

// Update edits title/description/tags. Author or admin only. Changing the
// tag set adjusts usage counts for the tags that enter and leave it.
func (s *QuestionService) Update(ctx context.Context, id uint, req models.UpdateQuestionRequest, actor Actor) (*models.Question, error) {
	err := s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var question models.Question
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Tags").First(&question, id).Error; err != nil {
				return err
			}
			if question.AuthorID != actor.ID && !actor.IsAdmin() {
				return ErrNotAuthorized
			}

			if req.Title != "" {
				question.Title = strings.TrimSpace(req.Title)
			}
			if req.Description != "" {
				question.Description = req.Description
			}
			if err := tx.Model(&question).Updates(map[string]interface{}{
				"title":       question.Title,
				"description": question.Description,
			}).Error; err != nil {
				return err
			}

			if req.Tags == nil {
				return nil
			}
			names, err := normalizeTags(req.Tags)
			if err != nil {
				return err
			}
			return retagQuestion(tx, &question, names, actor.ID)
		}))
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Delete removes a question and everything hanging off it: answers with
// their comments and votes, votes on the question itself, notifications
// referencing the question or its answers, and the tag adoption counts.
// Author or admin only. All of it commits or none of it does.
func (s *QuestionService) Delete(ctx context.Context, id uint, actor Actor) error {
	return s.withRetry(ctx, func() error {
		return storeErr(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var question models.Question
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Tags").First(&question, id).Error; err != nil {
				return err
			}
			if question.AuthorID != actor.ID && !actor.IsAdmin() {
				return ErrNotAuthorized
			}

			var answerIDs []uint
			if err := tx.Model(&models.Answer{}).Where("question_id = ?", id).Pluck("id", &answerIDs).Error; err != nil {
				return err
			}

			if len(answerIDs) > 0 {
				var commentIDs []uint
				if err := tx.Model(&models.Comment{}).Where("answer_id IN ?", answerIDs).Pluck("id", &commentIDs).Error; err != nil {
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
				if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.Vote{}).Error; err != nil {
					return err
				}
				if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.Notification{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", answerIDs).Delete(&models.Answer{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("question_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
				return err
			}

			if err := tx.Model(&question).Association("Tags").Clear(); err != nil {
				return err
			}
			if len(question.Tags) > 0 {
				tagIDs := make([]uint, 0, len(question.Tags))
				for _, t := range question.Tags {
					tagIDs = append(tagIDs, t.ID)
				}
				if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).
					UpdateColumn("usage_count", gorm.Expr("GREATEST(usage_count - 1, 0)")).Error; err != nil {
					return err
				}
			}

			if err := tx.Delete(&question).Error; err != nil {
				return err
			}

			s.log.Info().Uint("question_id", id).Int("answers", len(answerIDs)).Msg("question deleted")
			return nil
		}))
	})
}

func (s *QuestionService) load(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.score DESC, answers.created_at DESC")
		}).
		Preload("Answers.Author").
		First(&question, id).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &question, nil
}

// normalizeTags lowercases, trims and dedupes, then re-checks the 1–5 bound
// since deduping can shrink the set below what the binding layer saw.
func normalizeTags(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	names := make([]string, 0, len(raw))
	for _, t := range raw {
		name := strings.ToLower(strings.TrimSpace(t))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) < 1 || len(names) > 5 {
		return nil, fmt.Errorf("%w: questions carry between 1 and 5 tags", ErrMismatch)
	}
	return names, nil
}

// adoptTags finds or creates each tag and increments its usage count.
func adoptTags(tx *gorm.DB, names []string, creator uint) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where(models.Tag{Name: name}).
			Attrs(models.Tag{CreatedBy: &creator}).
			FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		if err := tx.Model(&tag).UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// retagQuestion replaces the question's tag set, adjusting usage counts for
// the difference.
func retagQuestion(tx *gorm.DB, question *models.Question, names []string, actor uint) error {
	current := make(map[string]models.Tag, len(question.Tags))
	for _, t := range question.Tags {
		current[t.Name] = t
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var added []string
	for _, n := range names {
		if _, ok := current[n]; !ok {
			added = append(added, n)
		}
	}
	var removed []models.Tag
	for name, tag := range current {
		if !wanted[name] {
			removed = append(removed, tag)
		}
	}

	if len(added) > 0 {
		tags, err := adoptTags(tx, added, actor)
		if err != nil {
			return err
		}
		if err := tx.Model(question).Association("Tags").Append(&tags); err != nil {
			return err
		}
	}
	for _, tag := range removed {
		if err := tx.Model(question).Association("Tags").Delete(&tag); err != nil {
			return err
		}
		if err := tx.Model(&models.Tag{}).Where("id = ?", tag.ID).
			UpdateColumn("usage_count", gorm.Expr("GREATEST(usage_count - 1, 0)")).Error; err != nil {
			return err
		}
	}
	return nil
}
