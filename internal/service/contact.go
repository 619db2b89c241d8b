package service

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/adapter/otel"
	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/contact"
	"github.com/sagecrest/pulsedash/internal/port/broadcast"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

// ContactService handles public form submissions and their admin triage.
type ContactService struct {
	store   database.Store
	hub     broadcast.Broadcaster
	metrics *otel.Metrics
}

// NewContactService creates a ContactService. hub and metrics may be nil.
func NewContactService(store database.Store, hub broadcast.Broadcaster, m *otel.Metrics) *ContactService {
	return &ContactService{store: store, hub: hub, metrics: m}
}

// Submit validates and stores a public form submission.
func (s *ContactService) Submit(ctx context.Context, req contact.CreateRequest) (*contact.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.store.CreateSubmission(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ContactSubmissions.Add(ctx, 1)
	}
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventContactReceived, ws.ContactReceivedEvent{
			SubmissionID: sub.ID,
			Name:         sub.Name,
		})
	}
	return sub, nil
}

// List returns submissions, optionally filtered by triage status.
func (s *ContactService) List(ctx context.Context, status contact.Status) ([]contact.Submission, error) {
	if status != "" && !contact.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, domain.ErrValidation)
	}
	return s.store.ListSubmissions(ctx, status)
}

// Update applies an admin triage change to one submission.
func (s *ContactService) Update(ctx context.Context, id string, req contact.UpdateRequest) (*contact.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateSubmission(ctx, id, req)
}
