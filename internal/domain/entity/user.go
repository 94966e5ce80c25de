package entity

import (
	"time"
)

// User is the signed-in identity as stored in user_profiles.
type User struct {
	ID        string    `json:"id" firestore:"id"`
	Username  string    `json:"username" firestore:"username"`
	Email     string    `json:"email" firestore:"email"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Session is what the identity service hands back on sign-in.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionSnapshot is the minimal identity cached on the device between runs.
// It is a hint only; it never makes the client authenticated by itself.
type SessionSnapshot struct {
	User          User      `json:"user"`
	Authenticated bool      `json:"authenticated"`
	SavedAt       time.Time `json:"saved_at"`
}
