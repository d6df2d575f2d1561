package domain

import "time"

// User mirrors a row of the remote users table
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	Provider  string    `json:"provider" db:"provider"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserPatch holds profile fields a user may change. Empty fields are left untouched.
type UserPatch struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return p.Email == "" && p.Password == "" && p.FullName == ""
}

// AuthLookup is the result of an email lookup against the auth provider
type AuthLookup struct {
	Exists         bool   `json:"exists"`
	Provider       string `json:"provider,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	EmailConfirmed bool   `json:"email_confirmed"`
}
