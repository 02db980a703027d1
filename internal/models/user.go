package models

// User is a reviewer, identified by the (username, email) pair on submission.
// Each column is unique on its own, so a second user cannot reuse either value.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null;type:varchar(80)" json:"username"`
	Email    string `gorm:"uniqueIndex;not null;type:varchar(120)" json:"email"`

	Reviews []Review `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

func (User) TableName() string {
	return "users"
}
