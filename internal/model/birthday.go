package model

import "time"

// Birthday is the server-side row of a synchronized record. The row is
// keyed by the client-generated sync id; ClientID is the device-local
// numeric id, stored opaquely and echoed back so other devices can
// detect id collisions.
//
// CreatedAt/UpdatedAt carry the client's timestamps verbatim: UpdatedAt
// is the conflict-resolution authority, so gorm must not touch it.
type Birthday struct {
	SyncID             string `gorm:"primaryKey;size:36"`
	UserID             int64  `gorm:"index;not null"`
	ClientID           int64
	Name               string `gorm:"size:255;not null"`
	Date               string `gorm:"size:10;not null"` // YYYY-MM-DD
	Note               string
	Group              string `gorm:"size:16"`
	LinkedContactID    string `gorm:"size:64"`
	ContactPhoneNumber string `gorm:"size:32"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}
