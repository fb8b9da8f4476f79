package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a study material uploaded by a user. The file itself lives in
// object storage; FileKey and PreviewImage are storage keys.
type Document struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;size:150;not null"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:char(36);index;not null"`
	Title        string    `json:"title" gorm:"size:200;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	SubjectID    uint      `json:"subject_id" gorm:"index"`
	UniversityID uint      `json:"university_id" gorm:"index"`
	DocumentType string    `json:"document_type" gorm:"size:50"`
	FileKey      string    `json:"file_link" gorm:"column:file_link;size:255"`
	PreviewImage string    `json:"preview_image,omitempty" gorm:"size:255"`
	IsPublic     bool      `json:"is_public" gorm:"default:true;index"`
	Tags         []string  `json:"tags,omitempty" gorm:"serializer:json"`
	Views        int64     `json:"views" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Subject    *Subject    `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	University *University `json:"university,omitempty" gorm:"foreignKey:UniversityID"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
