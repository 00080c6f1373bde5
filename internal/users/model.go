package users

import "time"

// User is an authenticated account identity.
type User struct {
	ID         string
	Email      string
	FullName   string
	PictureURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
