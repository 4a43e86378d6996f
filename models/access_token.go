package models

import "time"

type AccessToken struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AccessToken) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}
