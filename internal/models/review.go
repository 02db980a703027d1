package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null;type:varchar(200)" json:"text"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate stamps the review with the server clock when the caller left it unset.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	return nil
}
