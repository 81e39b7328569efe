package models

import "time"

type QuestionStatus string

const (
	QuestionStatusActive    QuestionStatus = "active"
	QuestionStatusClosed    QuestionStatus = "closed"
	QuestionStatusDuplicate QuestionStatus = "duplicate"
	QuestionStatusOffTopic  QuestionStatus = "off-topic"
)

// ValidQuestionStatus reports whether s is one of the moderation statuses a
// question can be placed in.
func ValidQuestionStatus(s QuestionStatus) bool {
	switch s {
	case QuestionStatusActive, QuestionStatusClosed, QuestionStatusDuplicate, QuestionStatusOffTopic:
		return true
	}
	return false
}

type Question struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:300;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        []Tag  `gorm:"many2many:question_tags;" json:"tags"`

	// Score is denormalized from the votes table and recomputed inside the
	// same transaction as every ledger mutation.
	Score int `gorm:"default:0" json:"score"`
	Views int `gorm:"default:0" json:"views"`

	Answers          []Answer       `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	AcceptedAnswerID *uint          `gorm:"index" json:"accepted_answer_id,omitempty"`
	Status           QuestionStatus `gorm:"type:varchar(20);default:active;index" json:"status"`

	IsModerated      bool       `gorm:"default:false" json:"is_moderated"`
	ModeratedBy      *uint      `json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time `json:"moderated_at,omitempty"`
	ModerationReason string     `json:"moderation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title" binding:"required,max=300"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags" binding:"required,min=1,max=5,dive,required,max=35"`
}

type UpdateQuestionRequest struct {
	Title       string   `json:"title" binding:"omitempty,max=300"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" binding:"omitempty,min=1,max=5,dive,required,max=35"`
}

// QuestionListQuery carries the filter/sort/pagination options for listings.
type QuestionListQuery struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
	Sort   string `form:"sort,default=newest"`
	Tag    string `form:"tag"`
	Search string `form:"search"`
	Status string `form:"status,default=active"`
}

type QuestionListResult struct {
	Questions   []Question `json:"questions"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	Total       int64      `json:"total"`
}
