package models

import "time"

// Vote values stored in the ledger. One row per (voter, entity); the partial
// unique indexes below make the up/down sets real sets — a voter can never
// hold two rows against the same entity.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote is one entry in an entity's vote ledger. Exactly one of QuestionID,
// AnswerID, CommentID is set. Postgres treats NULLs as distinct in composite
// unique indexes, so the three target columns can share the user column.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_votes_question;uniqueIndex:idx_votes_answer;uniqueIndex:idx_votes_comment" json:"user_id"`
	QuestionID *uint     `gorm:"index;uniqueIndex:idx_votes_question" json:"question_id,omitempty"`
	AnswerID   *uint     `gorm:"index;uniqueIndex:idx_votes_answer" json:"answer_id,omitempty"`
	CommentID  *uint     `gorm:"index;uniqueIndex:idx_votes_comment" json:"comment_id,omitempty"`
	Value      int       `gorm:"not null" json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required,oneof=upvote downvote"`
}
