package models

import "time"

// Guardian represents a parent account in the system
type Guardian struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	PreferredLanguage Language   `json:"preferredLanguage"`
	Timezone          string     `json:"timezone"`
	IsEmailVerified   bool       `json:"isEmailVerified"`
	IsActive          bool       `json:"isActive"`
	OAuthProvider     string     `json:"-"`
	OAuthSubject      string     `json:"-"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

// TokenPair is the access/refresh token pair returned on login
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // seconds until the access token expires
}
