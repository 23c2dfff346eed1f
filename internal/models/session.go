package models

import "time"

// Identity is the authenticated principal bound to a session.
type Identity struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// RevokedSession marks a session token id as logged out until ExpiresAt.
type RevokedSession struct {
	TokenID   string    `bson:"_id" json:"token_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (s *RevokedSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
