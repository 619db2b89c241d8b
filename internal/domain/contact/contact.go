// Package contact defines public contact-form submissions and their triage
// lifecycle.
package contact

import (
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/sagecrest/pulsedash/internal/domain"
)

// Status is the triage state of a submission.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// ValidStatus reports whether s is a known triage status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// Submission is one contact-form entry. Created by the public form;
// mutated only by admin status/notes updates.
type Submission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Message     string    `json:"message"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

const (
	maxNameLen    = 120
	maxEmailLen   = 254
	maxCompanyLen = 120
	maxMessageLen = 1000
)

// CreateRequest is the public form payload. Validation is server-side
// regardless of anything the form enforces in the browser.
type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// Validate checks all form fields, failing on the first bad one with a
// message naming it.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return fmt.Errorf("name exceeds %d characters: %w", maxNameLen, domain.ErrValidation)
	}
	if r.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	if len(r.Email) > maxEmailLen {
		return fmt.Errorf("email exceeds %d characters: %w", maxEmailLen, domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email is not a valid address: %w", domain.ErrValidation)
	}
	if utf8.RuneCountInString(r.Company) > maxCompanyLen {
		return fmt.Errorf("company exceeds %d characters: %w", maxCompanyLen, domain.ErrValidation)
	}
	if r.Message == "" {
		return fmt.Errorf("message is required: %w", domain.ErrValidation)
	}
	if utf8.RuneCountInString(r.Message) > maxMessageLen {
		return fmt.Errorf("message exceeds %d characters: %w", maxMessageLen, domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds the admin-mutable fields.
type UpdateRequest struct {
	Status *Status `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Validate checks an admin triage update.
func (r *UpdateRequest) Validate() error {
	if r.Status == nil && r.Notes == nil {
		return fmt.Errorf("status or notes is required: %w", domain.ErrValidation)
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		return fmt.Errorf("unknown status %q: %w", *r.Status, domain.ErrValidation)
	}
	if r.Notes != nil && len(*r.Notes) > 2000 {
		return fmt.Errorf("notes exceeds 2000 characters: %w", domain.ErrValidation)
	}
	return nil
}
