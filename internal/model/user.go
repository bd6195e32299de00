package model

import "time"

// User is the server-side account row. Password holds the bcrypt hash,
// never the plain text.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Login     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
}
