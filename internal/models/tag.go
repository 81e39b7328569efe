package models

import "time"

type Tag struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:35;unique;not null" json:"name"`
	Description string `json:"description"`

	// UsageCount tracks how many questions currently carry the tag. Never
	// goes below zero; the decrement is floored in SQL.
	UsageCount int `gorm:"default:0" json:"usage_count"`

	CreatedBy *uint `json:"created_by,omitempty"`

	IsModerated      bool       `gorm:"default:false" json:"is_moderated"`
	ModeratedBy      *uint      `json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time `json:"moderated_at,omitempty"`
	ModerationReason string     `json:"moderation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
