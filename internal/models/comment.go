package models

import "time"

type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Content         string `gorm:"size:500;not null" json:"content"`
	AuthorID        uint   `gorm:"not null;index" json:"author_id"`
	Author          User   `gorm:"foreignKey:AuthorID" json:"author"`
	AnswerID        uint   `gorm:"not null;index" json:"answer_id"`
	ParentCommentID *uint  `gorm:"index" json:"parent_comment_id,omitempty"`

	Replies []Comment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`

	Score int `gorm:"default:0" json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,max=500"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
}
