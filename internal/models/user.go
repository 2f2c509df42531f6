package models

import (
	"time"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AvatarURL falls back to a generated initials avatar when the user has none.
func (u *User) AvatarURL() string {
	if u == nil || u.Avatar == "" {
		name := "User"
		if u != nil && u.Name != "" {
			name = u.Name
		}
		return DefaultAvatar + "&name=" + queryEscape(name)
	}
	return u.Avatar
}

// Merge copies the non-empty profile fields of other into u.
func (u *User) Merge(other *User) {
	if u == nil || other == nil {
		return
	}
	if other.ID != "" {
		u.ID = other.ID
	}
	if other.Name != "" {
		u.Name = other.Name
	}
	if other.Email != "" {
		u.Email = other.Email
	}
	if other.Avatar != "" {
		u.Avatar = other.Avatar
	}
	if other.Bio != "" {
		u.Bio = other.Bio
	}
	if other.Role != "" {
		u.Role = other.Role
	}
	if !other.CreatedAt.IsZero() {
		u.CreatedAt = other.CreatedAt
	}
}

type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type RegisterInput struct {
	Name            string `form:"name" json:"name" binding:"required,min=2,max=50"`
	Email           string `form:"email" json:"email" binding:"required,email"`
	Password        string `form:"password" json:"password" binding:"required,min=6,max=128"`
	ConfirmPassword string `form:"confirmPassword" json:"-" binding:"required,eqfield=Password"`
	AcceptTerms     bool   `form:"acceptTerms" json:"-" binding:"required"`
}

type ProfileInput struct {
	Name   string `form:"name" json:"name" binding:"required,min=2,max=50"`
	Bio    string `form:"bio" json:"bio" binding:"max=500"`
	Avatar string `form:"avatar" json:"avatar" binding:"omitempty,url"`
}

// AuthPayload is what the auth endpoints hand back on success.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
