package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the access level of a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// NotificationPrefs holds per-channel notification switches.
type NotificationPrefs struct {
	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
}

// Settings is the free-form settings blob owned by a user.
type Settings struct {
	Theme         string            `json:"theme,omitempty"`
	Bio           string            `json:"bio,omitempty"`
	SocialLinks   map[string]string `json:"social_links,omitempty"`
	Notifications NotificationPrefs `json:"notifications"`
}

// User is the identity and credential record.
type User struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName          string    `json:"first_name" gorm:"size:50"`
	LastName           string    `json:"last_name" gorm:"size:50"`
	Email              string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Username           string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash       string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role               Role      `json:"role" gorm:"column:user_role;size:20;default:'user'"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	IsVerified         bool      `json:"is_verified" gorm:"default:false"`
	VerificationToken  string    `json:"-" gorm:"column:verification_token_jwt;type:text"`
	PasswordResetToken string    `json:"-" gorm:"column:password_reset_token_jwt;type:text"`
	ProfilePicture     string    `json:"profile_picture,omitempty" gorm:"size:255"`
	Settings           Settings  `json:"settings" gorm:"serializer:json"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FullName returns the display name used in profile responses.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
