package client

import "time"

// Wire types mirror the API's JSON shapes.

type User struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Company       string    `json:"company,omitempty"`
	Role          string    `json:"role"`
	Active        bool      `json:"active"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Preferences struct {
	Notifications bool   `json:"notifications"`
	Newsletter    bool   `json:"newsletter"`
	Language      string `json:"language"`
}

type Project struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	OverallProgress int            `json:"overallProgress"`
	Status          string         `json:"status"`
	Phases          []ProjectPhase `json:"phases"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type ProjectPhase struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type Payment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ProjectID   string    `json:"projectId,omitempty"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	InvoiceURL  string    `json:"invoiceUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PaymentStatus struct {
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CheckoutRequest struct {
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
	UserID    string  `json:"userId,omitempty"`
	ProjectID string  `json:"projectId,omitempty"`
	Email     string  `json:"email,omitempty"`
}

type Checkout struct {
	PreferenceID string `json:"id"`
	InitPoint    string `json:"init_point"`
	PaymentID    string `json:"paymentId"`
}

type Ticket struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Status    string           `json:"status"`
	Priority  string           `json:"priority"`
	Responses []TicketResponse `json:"responses"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type TicketResponse struct {
	Author     string    `json:"author"`
	AuthorType string    `json:"authorType"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Testimonial struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company,omitempty"`
	Testimonial string    `json:"testimonial"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}

type ProposalRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Details     string `json:"details"`
}

type JobApplication struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	LinkedIn  string `json:"linkedin,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	DB      string `json:"db,omitempty"`
	Redis   string `json:"redis,omitempty"`
}

// envelope is the {success, data} wrapper every JSON response uses.
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}
