package model

import (
	"time"
)

// Providers d'authentification supportés
const (
	ProviderGuest   = "guest"
	ProviderTwitter = "twitter"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type UserProfile struct {
	ID        string    `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
	TwitterID string    `json:"twitterId,omitempty"`
	Provider  string    `json:"provider"` // guest, twitter
	IsAdmin   bool      `json:"isAdmin"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
	DateFields
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsActive  bool      `json:"isActive"`
	IP        string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	DateFields
}
