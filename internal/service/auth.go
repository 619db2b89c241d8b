// Package service holds the application services between the HTTP
// adapter and the store.
package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sagecrest/pulsedash/internal/adapter/otel"
	"github.com/sagecrest/pulsedash/internal/domain/credential"
	"github.com/sagecrest/pulsedash/internal/port/database"
)

// AuthService verifies the shared dashboard password.
type AuthService struct {
	store   database.Store
	metrics *otel.Metrics
}

// NewAuthService creates an AuthService. metrics may be nil.
func NewAuthService(store database.Store, metrics *otel.Metrics) *AuthService {
	return &AuthService{store: store, metrics: metrics}
}

// Verify compares the submitted password against every provisioned
// credential. All rows are checked even after a match so the response
// time does not depend on which row matched. Every failure returns the
// identical zero result.
func (s *AuthService) Verify(ctx context.Context, password string) (credential.VerifyResult, error) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.Add(ctx, 1)
	}

	creds, err := s.store.ListCredentials(ctx)
	if err != nil {
		return credential.VerifyResult{}, fmt.Errorf("verify: %w", err)
	}

	var matched *credential.Credential
	for i := range creds {
		if bcrypt.CompareHashAndPassword([]byte(creds[i].PasswordHash), []byte(password)) == nil && matched == nil {
			matched = &creds[i]
		}
	}

	if matched == nil {
		if s.metrics != nil {
			s.metrics.LoginFailures.Add(ctx, 1)
		}
		return credential.VerifyResult{}, nil
	}

	return credential.VerifyResult{
		Valid:   true,
		IsAdmin: matched.IsAdmin,
		Name:    matched.DisplayName,
	}, nil
}

// HashPassword returns the bcrypt hash used for credential provisioning.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Provision stores a new credential for the given plaintext password.
func (s *AuthService) Provision(ctx context.Context, password, displayName string, isAdmin bool) (*credential.Credential, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	c := &credential.Credential{
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		DisplayName:  displayName,
	}
	if err := s.store.CreateCredential(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ResetPassword replaces the hash on an existing credential row.
func (s *AuthService) ResetPassword(ctx context.Context, id, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.UpdateCredentialPassword(ctx, id, hash)
}
