package models

import "time"

// User is a registered account. PasswordHash always holds a bcrypt hash,
// never the plaintext.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
