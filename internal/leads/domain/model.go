package domain

import (
	"net/mail"
	"strings"
	"time"
)

// ValidationError marks input the caller can fix. Handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var ErrInvalidEmail = &ValidationError{Msg: "invalid email address"}

// ContactMessage is a message from the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *ContactMessage) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Message = strings.TrimSpace(c.Message)
	if c.Name == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if c.Message == "" {
		return &ValidationError{Msg: "message is required"}
	}
	return ValidateEmail(c.Email)
}

// NewsletterSubscriber is a newsletter signup. Email is unique; repeated
// signups refresh the source and are not errors.
type NewsletterSubscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *NewsletterSubscriber) Validate() error {
	return ValidateEmail(n.Email)
}

// ProposalRequest is a request for a project proposal ("propuesta").
type ProposalRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	ProjectType string    `json:"projectType,omitempty"`
	Budget      string    `json:"budget,omitempty"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *ProposalRequest) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if strings.TrimSpace(p.Details) == "" {
		return &ValidationError{Msg: "details are required"}
	}
	return ValidateEmail(p.Email)
}

// JobApplication is a submission for an open position.
type JobApplication struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	ResumeURL string    `json:"resumeUrl,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (j *JobApplication) Validate() error {
	j.Name = strings.TrimSpace(j.Name)
	if j.Name == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if strings.TrimSpace(j.Position) == "" {
		return &ValidationError{Msg: "position is required"}
	}
	return ValidateEmail(j.Email)
}

// ValidateEmail rejects addresses the mail package cannot parse, plus the
// bare local-part forms it tolerates.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	if !strings.Contains(addr.Address, "@") || strings.HasSuffix(addr.Address, "@") {
		return ErrInvalidEmail
	}
	// require a dot in the domain so "a@b" does not pass
	at := strings.LastIndex(addr.Address, "@")
	if !strings.Contains(addr.Address[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}
