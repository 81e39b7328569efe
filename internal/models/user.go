package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"size:50;unique;not null" json:"username"`
	Email      string `gorm:"size:100;unique;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Avatar     string `json:"avatar"`
	Role       string `gorm:"size:20;default:user" json:"role"`
	Reputation int    `gorm:"default:0" json:"reputation"`

	IsBanned  bool       `gorm:"default:false;index" json:"is_banned"`
	BannedBy  *uint      `json:"banned_by,omitempty"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`
	BanReason string     `json:"ban_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
