package model

import "time"

// University is a node of the study-material taxonomy.
type University struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;index"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	ImageLink   string    `json:"image_link,omitempty" gorm:"size:255"`
	Description string    `json:"description,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subject is a course-level node of the taxonomy.
type Subject struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;index"`
	Code        string    `json:"code" gorm:"size:20;not null;index"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	Description string    `json:"description,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}
