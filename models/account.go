package models

import "time"

type Account struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Credentials is stored apart from the account row and never serialized.
type Credentials struct {
	ID       string
	Password string
}
