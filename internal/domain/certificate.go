package domain

import "time"

// Certificate confirms a learner completed every level
type Certificate struct {
	ID       string    `json:"id" db:"id"`
	UserID   string    `json:"-" db:"user_id"`
	FullName string    `json:"fullName" db:"full_name"`
	IssuedAt time.Time `json:"issuedAt" db:"issued_at"`
}
