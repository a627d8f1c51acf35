package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Typed facade over the API surface. Every path identifier is escaped;
// limit queries are appended only when positive.

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.Do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitContact(ctx context.Context, m ContactMessage) error {
	return c.Do(ctx, http.MethodPost, "/contact", m, nil, nil)
}

func (c *Client) SubscribeNewsletter(ctx context.Context, email, source string) error {
	body := map[string]string{"email": email}
	if source != "" {
		body["source"] = source
	}
	return c.Do(ctx, http.MethodPost, "/newsletter", body, nil, nil)
}

func (c *Client) SubmitProposal(ctx context.Context, p ProposalRequest) error {
	return c.Do(ctx, http.MethodPost, "/api/propuesta", p, nil, nil)
}

func (c *Client) SubmitApplication(ctx context.Context, a JobApplication) error {
	return c.Do(ctx, http.MethodPost, "/api/applications", a, nil, nil)
}

func (c *Client) Testimonials(ctx context.Context, limit int) ([]Testimonial, error) {
	path := "/api/testimonials"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out envelope[[]Testimonial]
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateTestimonial(ctx context.Context, t Testimonial) (*Testimonial, error) {
	var out envelope[Testimonial]
	if err := c.Do(ctx, http.MethodPost, "/api/testimonials", t, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) ApproveTestimonial(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodPut, "/api/testimonials/"+url.PathEscape(id)+"/approve", nil, nil, nil)
}

func (c *Client) DeleteTestimonial(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/api/testimonials/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	var out envelope[Checkout]
	if err := c.Do(ctx, http.MethodPost, "/crear-preferencia", req, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) PaymentStatus(ctx context.Context, gatewayPaymentID string) (*PaymentStatus, error) {
	var out envelope[PaymentStatus]
	path := "/api/payments/status/" + url.PathEscape(gatewayPaymentID)
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.Do(ctx, http.MethodGet, "/api/auth/verify/"+url.PathEscape(token), nil, nil, nil)
}

// DevVerify marks the address verified directly. The server only exposes
// the route outside production.
func (c *Client) DevVerify(ctx context.Context, email string) error {
	return c.Do(ctx, http.MethodGet, "/api/auth/dev-verify/"+url.PathEscape(email), nil, nil, nil)
}

func (c *Client) User(ctx context.Context, uid string) (*User, error) {
	var out envelope[User]
	if err := c.Do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(uid), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateUser(ctx context.Context, u User) (*User, error) {
	if u.UID == "" {
		return nil, fmt.Errorf("uid required")
	}
	var out envelope[User]
	if err := c.Do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(u.UID), u, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) Preferences(ctx context.Context, uid string) (*Preferences, error) {
	var out envelope[Preferences]
	path := "/api/users/" + url.PathEscape(uid) + "/preferences"
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) SetPreferences(ctx context.Context, uid string, p Preferences) error {
	path := "/api/users/" + url.PathEscape(uid) + "/preferences"
	return c.Do(ctx, http.MethodPut, path, p, nil, nil)
}

func (c *Client) ActiveProject(ctx context.Context, uid string) (*Project, error) {
	var out envelope[Project]
	path := "/api/users/" + url.PathEscape(uid) + "/project"
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) CreateProject(ctx context.Context, p Project) (*Project, error) {
	var out envelope[Project]
	if err := c.Do(ctx, http.MethodPost, "/api/projects", p, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) Payments(ctx context.Context, uid string, limit int) ([]Payment, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/payments"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out envelope[[]Payment]
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Tickets(ctx context.Context, uid string) ([]Ticket, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/tickets"
	var out envelope[[]Ticket]
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateTicket(ctx context.Context, uid string, t Ticket) (*Ticket, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/tickets"
	var out envelope[Ticket]
	if err := c.Do(ctx, http.MethodPost, path, t, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) Ticket(ctx context.Context, id string) (*Ticket, error) {
	var out envelope[Ticket]
	if err := c.Do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) SetTicketStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.Do(ctx, http.MethodPut, "/api/tickets/"+url.PathEscape(id), body, nil, nil)
}

func (c *Client) AddTicketResponse(ctx context.Context, id, message string) (*Ticket, error) {
	body := map[string]string{"message": message}
	var out envelope[Ticket]
	path := "/api/tickets/" + url.PathEscape(id) + "/responses"
	if err := c.Do(ctx, http.MethodPost, path, body, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
