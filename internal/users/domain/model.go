package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// User is keyed by the Firebase Auth UID. Created on first authenticated
// touch, updated by profile edits, never hard-deleted.
type User struct {
	UID               string    `firestore:"uid" json:"uid"`
	Email             string    `firestore:"email" json:"email"`
	Name              string    `firestore:"name,omitempty" json:"name,omitempty"`
	Phone             string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	Company           string    `firestore:"company,omitempty" json:"company,omitempty"`
	Role              string    `firestore:"role" json:"role"`
	Active            bool      `firestore:"active" json:"active"`
	EmailVerified     bool      `firestore:"emailVerified" json:"emailVerified"`
	VerificationToken string    `firestore:"verificationToken,omitempty" json:"-"`
	CreatedAt         time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `firestore:"updatedAt" json:"updatedAt"`
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Preferences are upserted per user and never listed independently.
type Preferences struct {
	Notifications bool   `firestore:"notifications" json:"notifications"`
	Newsletter    bool   `firestore:"newsletter" json:"newsletter"`
	Language      string `firestore:"language" json:"language"`
}
