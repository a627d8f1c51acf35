package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("ticket not found")

const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"

	AuthorClient = "client"
	AuthorAdmin  = "admin"
)

// SupportTicket is created by the client; either party appends responses
// or moves the status.
type SupportTicket struct {
	ID        string           `firestore:"-" json:"id"`
	UserID    string           `firestore:"userId" json:"userId"`
	Subject   string           `firestore:"subject" json:"subject"`
	Message   string           `firestore:"message" json:"message"`
	Status    string           `firestore:"status" json:"status"`
	Priority  string           `firestore:"priority" json:"priority"`
	Responses []TicketResponse `firestore:"responses" json:"responses"`
	CreatedAt time.Time        `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time        `firestore:"updatedAt" json:"updatedAt"`
}

type TicketResponse struct {
	Author     string    `firestore:"author" json:"author"`
	AuthorType string    `firestore:"authorType" json:"authorType"`
	Message    string    `firestore:"message" json:"message"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func (t *SupportTicket) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("userId is required")
	}
	if t.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if t.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}
