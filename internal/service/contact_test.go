package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/contact"
)

func TestContactSubmit(t *testing.T) {
	store := newMockStore()
	hub := &mockHub{}
	svc := NewContactService(store, hub, nil)

	sub, err := svc.Submit(context.Background(), contact.CreateRequest{
		Name: "Dana", Email: "dana@example.com", Company: "Acme", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Status != contact.StatusNew {
		t.Errorf("status = %s, want new", sub.Status)
	}
	if hub.count() != 1 {
		t.Errorf("broadcasts = %d, want 1", hub.count())
	}
}

func TestContactSubmitMessageLength(t *testing.T) {
	svc := NewContactService(newMockStore(), nil, nil)
	ctx := context.Background()

	tooLong := contact.CreateRequest{
		Name: "Dana", Email: "dana@example.com",
		Message: strings.Repeat("a", 1001),
	}
	if _, err := svc.Submit(ctx, tooLong); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("1001-char message err = %v, want validation error", err)
	}

	fits := contact.CreateRequest{
		Name: "Dana", Email: "dana@example.com",
		Message: strings.Repeat("a", 999),
	}
	if _, err := svc.Submit(ctx, fits); err != nil {
		t.Fatalf("999-char message err = %v, want nil", err)
	}
}

func TestContactSubmitBadEmail(t *testing.T) {
	svc := NewContactService(newMockStore(), nil, nil)

	_, err := svc.Submit(context.Background(), contact.CreateRequest{
		Name: "Dana", Email: "not-an-address", Message: "Hello",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestContactListAndTriage(t *testing.T) {
	store := newMockStore()
	svc := NewContactService(store, nil, nil)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, contact.CreateRequest{
		Name: "Dana", Email: "dana@example.com", Message: "Hello",
	})
	if err != nil {
		t.Fatal(err)
	}

	status := contact.StatusRead
	notes := "followed up by phone"
	updated, err := svc.Update(ctx, sub.ID, contact.UpdateRequest{Status: &status, Notes: &notes})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != contact.StatusRead || updated.Notes != notes {
		t.Errorf("updated = %+v", updated)
	}

	read, err := svc.List(ctx, contact.StatusRead)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(read) != 1 {
		t.Errorf("List(read) = %d, want 1", len(read))
	}

	fresh, err := svc.List(ctx, contact.StatusNew)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 0 {
		t.Errorf("List(new) = %d, want 0", len(fresh))
	}

	if _, err := svc.List(ctx, contact.Status("bogus")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("List(bogus) err = %v, want validation error", err)
	}
}

func TestContactUpdateUnknownStatus(t *testing.T) {
	svc := NewContactService(newMockStore(), nil, nil)

	bad := contact.Status("spam")
	_, err := svc.Update(context.Background(), "any", contact.UpdateRequest{Status: &bad})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestContactUpdateMissingSubmission(t *testing.T) {
	svc := NewContactService(newMockStore(), nil, nil)

	status := contact.StatusArchived
	_, err := svc.Update(context.Background(), "nope", contact.UpdateRequest{Status: &status})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
