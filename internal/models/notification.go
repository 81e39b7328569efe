package models

import "time"

type NotificationType string

const (
	NotificationTypeAnswer     NotificationType = "answer"
	NotificationTypeComment    NotificationType = "comment"
	NotificationTypeMention    NotificationType = "mention"
	NotificationTypeVote       NotificationType = "vote"
	NotificationTypeAccept     NotificationType = "accept"
	NotificationTypeModeration NotificationType = "moderation"
	NotificationTypeAlert      NotificationType = "alert"
)

type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	SenderID    *uint            `gorm:"index" json:"sender_id,omitempty"`
	Sender      *User            `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Type        NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title       string           `gorm:"not null" json:"title"`
	Message     string           `gorm:"type:text;not null" json:"message"`

	QuestionID *uint `gorm:"index" json:"question_id,omitempty"`
	AnswerID   *uint `gorm:"index" json:"answer_id,omitempty"`
	CommentID  *uint `gorm:"index" json:"comment_id,omitempty"`
	Link       string `json:"link,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NotificationListResult struct {
	Notifications []Notification `json:"notifications"`
	TotalPages    int            `json:"totalPages"`
	CurrentPage   int            `json:"currentPage"`
	Total         int64          `json:"total"`
	UnreadCount   int64          `json:"unreadCount"`
}
