package service

import (
	"context"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// AdminService serves the read side of the admin surface: dashboard stats,
// user listing and the moderation queue.
type AdminService struct {
	base
}

// DashboardStats aggregates platform counters plus recent activity.
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalQuestions   int64 `json:"totalQuestions"`
	TotalAnswers     int64 `json:"totalAnswers"`
	TotalTags        int64 `json:"totalTags"`
	BannedUsers      int64 `json:"bannedUsers"`
	PendingQuestions int64 `json:"pendingQuestions"`
	AcceptedAnswers  int64 `json:"acceptedAnswers"`

	RecentUsers     []models.User     `json:"recentUsers"`
	RecentQuestions []models.Question `json:"recentQuestions"`
}

func (s *AdminService) Dashboard(ctx context.Context, actor Actor) (*DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		model interface{}
		where string
	}{
		{&stats.TotalUsers, &models.User{}, ""},
		{&stats.TotalQuestions, &models.Question{}, ""},
		{&stats.TotalAnswers, &models.Answer{}, ""},
		{&stats.TotalTags, &models.Tag{}, ""},
		{&stats.BannedUsers, &models.User{}, "is_banned = true"},
		{&stats.PendingQuestions, &models.Question{}, "status = 'active'"},
		{&stats.AcceptedAnswers, &models.Answer{}, "is_accepted = true"},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, storeErr(err)
		}
	}

	if err := db.Order("created_at desc").Limit(5).Find(&stats.RecentUsers).Error; err != nil {
		return nil, storeErr(err)
	}
	if err := db.Preload("Author").Order("created_at desc").Limit(5).Find(&stats.RecentQuestions).Error; err != nil {
		return nil, storeErr(err)
	}

	return stats, nil
}

// UserListQuery filters the admin user listing.
type UserListQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
	Role   string `form:"role"`
	Banned string `form:"banned"`
}

type UserListResult struct {
	Users       []models.User `json:"users"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}

func (s *AdminService) ListUsers(ctx context.Context, q UserListQuery, actor Actor) (*UserListResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := s.db.WithContext(ctx).Model(&models.User{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		db = db.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if q.Role != "" {
		db = db.Where("role = ?", q.Role)
	}
	switch q.Banned {
	case "true":
		db = db.Where("is_banned = true")
	case "false":
		db = db.Where("is_banned = false")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, storeErr(err)
	}

	var users []models.User
	if err := db.Order("created_at desc").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		return nil, storeErr(err)
	}

	return &UserListResult{
		Users:       users,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// ModerationQueue lists content awaiting moderation: active questions or
// answers not yet moderated.
func (s *AdminService) ModerationQueue(ctx context.Context, kind string, page, limit int, actor Actor) (interface{}, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrNotAuthorized
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := s.db.WithContext(ctx)

	if kind == "answers" {
		q := db.Model(&models.Answer{}).Where("is_moderated = false")
		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, 0, storeErr(err)
		}
		var answers []models.Answer
		if err := q.Preload("Author").Preload("Question").
			Order("created_at desc").Limit(limit).Offset(offset).
			Find(&answers).Error; err != nil {
			return nil, 0, storeErr(err)
		}
		return answers, total, nil
	}

	q := db.Model(&models.Question{}).Where("status = ?", models.QuestionStatusActive)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}
	var questions []models.Question
	if err := q.Preload("Author").
		Order("created_at desc").Limit(limit).Offset(offset).
		Find(&questions).Error; err != nil {
		return nil, 0, storeErr(err)
	}
	return questions, total, nil
}
