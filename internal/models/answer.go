package models

import "time"

type Answer struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Content    string   `gorm:"type:text;not null" json:"content"`
	AuthorID   uint     `gorm:"not null;index;uniqueIndex:idx_answers_question_author" json:"author_id"`
	Author     User     `gorm:"foreignKey:AuthorID" json:"author"`
	QuestionID uint     `gorm:"not null;index;uniqueIndex:idx_answers_question_author" json:"question_id"`
	Question   Question `gorm:"foreignKey:QuestionID" json:"-"`

	Score int `gorm:"default:0" json:"score"`

	// Acceptance state is maintained together with the parent question's
	// accepted_answer_id; the two fields never diverge.
	IsAccepted bool       `gorm:"default:false;index" json:"is_accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy *uint      `json:"accepted_by,omitempty"`

	Comments []Comment `gorm:"foreignKey:AnswerID" json:"comments,omitempty"`

	IsModerated      bool       `gorm:"default:false" json:"is_moderated"`
	ModeratedBy      *uint      `json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time `json:"moderated_at,omitempty"`
	ModerationReason string     `json:"moderation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}
