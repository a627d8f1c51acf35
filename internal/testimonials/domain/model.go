package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("testimonial not found")

// MinLength is the shortest testimonial text we accept.
const MinLength = 10

// Testimonial is global (not owned by a user). Created unapproved on every
// write path; approval is an explicit admin action.
type Testimonial struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Company     string    `firestore:"company,omitempty" json:"company,omitempty"`
	Testimonial string    `firestore:"testimonial" json:"testimonial"`
	Approved    bool      `firestore:"approved" json:"approved"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(strings.TrimSpace(t.Testimonial)) < MinLength {
		return fmt.Errorf("testimonial must be at least %d characters", MinLength)
	}
	return nil
}
