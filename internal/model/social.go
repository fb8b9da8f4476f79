package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge in the follow graph. One edge per pair.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uuid.UUID `json:"follower_id" gorm:"type:char(36);uniqueIndex:idx_follow_edge;not null"`
	FolloweeID uuid.UUID `json:"followee_id" gorm:"type:char(36);uniqueIndex:idx_follow_edge;index;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Bookmark marks a document saved by a user. One per (user, document).
type Bookmark struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex:idx_bookmark_pair;not null"`
	DocumentID uuid.UUID `json:"document_id" gorm:"type:char(36);uniqueIndex:idx_bookmark_pair;index;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Download records that a user downloaded a document. One per (user, document).
type Download struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex:idx_download_pair;not null"`
	DocumentID uuid.UUID `json:"document_id" gorm:"type:char(36);uniqueIndex:idx_download_pair;index;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is a message shown to a user in their notification feed.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);index;not null"`
	Type      string    `json:"type" gorm:"size:50"`
	Message   string    `json:"message" gorm:"size:255"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
