package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("project not found")

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusOnHold    = "on-hold"
)

// Project is a client engagement. Phase progress values are independent of
// OverallProgress; nothing aggregates them.
type Project struct {
	ID              string         `firestore:"-" json:"id"`
	UserID          string         `firestore:"userId" json:"userId"`
	Name            string         `firestore:"name" json:"name"`
	Type            string         `firestore:"type" json:"type"`
	OverallProgress int            `firestore:"overallProgress" json:"overallProgress"`
	Status          string         `firestore:"status" json:"status"`
	Phases          []ProjectPhase `firestore:"phases" json:"phases"`
	CreatedAt       time.Time      `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `firestore:"updatedAt" json:"updatedAt"`
}

type ProjectPhase struct {
	Name        string         `firestore:"name" json:"name"`
	Status      string         `firestore:"status" json:"status"`
	Progress    int            `firestore:"progress" json:"progress"`
	Attachments []Attachment   `firestore:"attachments,omitempty" json:"attachments,omitempty"`
	Comments    []PhaseComment `firestore:"comments,omitempty" json:"comments,omitempty"`
}

type Attachment struct {
	Name string `firestore:"name" json:"name"`
	URL  string `firestore:"url" json:"url"`
}

type PhaseComment struct {
	Author    string    `firestore:"author" json:"author"`
	Message   string    `firestore:"message" json:"message"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Validate checks the fields a client may set on creation.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("userId is required")
	}
	if p.OverallProgress < 0 || p.OverallProgress > 100 {
		return fmt.Errorf("overallProgress must be between 0 and 100")
	}
	switch p.Status {
	case StatusActive, StatusCompleted, StatusOnHold:
		return nil
	default:
		return fmt.Errorf("invalid status %q", p.Status)
	}
}
