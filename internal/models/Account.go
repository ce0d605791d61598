package models

import "time"

// User is a registered account. Email is the uniqueness key. The password is
// stored as a bcrypt hash, never in plaintext.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Activity log actions.
const (
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// ActivityEntry is one append-only activity log row.
type ActivityEntry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	Email     string    `gorm:"type:varchar(100);index" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Action    string    `gorm:"type:varchar(20);not null" json:"action"`
}
