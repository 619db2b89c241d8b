// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/contact"
	"github.com/sagecrest/pulsedash/internal/domain/credential"
	"github.com/sagecrest/pulsedash/internal/domain/entity"
	"github.com/sagecrest/pulsedash/internal/domain/goal"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
)

// Store is the port interface for database operations.
type Store interface {
	// Credentials
	ListCredentials(ctx context.Context) ([]credential.Credential, error)
	CreateCredential(ctx context.Context, c *credential.Credential) error
	UpdateCredentialPassword(ctx context.Context, id, passwordHash string) error

	// Live entity aggregates
	CompanyStats(ctx context.Context, c company.Company) (metrics.LiveStats, error)

	// Monthly logs
	ListMonthlyLogs(ctx context.Context, c company.Company) ([]monthly.Log, error)
	UpsertMonthlyLog(ctx context.Context, l *monthly.Log) error

	// Metric overrides
	ListOverrides(ctx context.Context) ([]metrics.Override, error)
	UpsertOverride(ctx context.Context, o *metrics.Override) error
	DeleteOverride(ctx context.Context, c company.Company, key metrics.Key) error

	// Quarter goals
	ListGoals(ctx context.Context, quarter, year int) ([]goal.Goal, error)
	GetGoal(ctx context.Context, id string) (*goal.Goal, error)
	CreateGoal(ctx context.Context, req goal.CreateRequest) (*goal.Goal, error)
	UpdateGoal(ctx context.Context, g *goal.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	// Contact submissions
	CreateSubmission(ctx context.Context, req contact.CreateRequest) (*contact.Submission, error)
	ListSubmissions(ctx context.Context, status contact.Status) ([]contact.Submission, error)
	UpdateSubmission(ctx context.Context, id string, req contact.UpdateRequest) (*contact.Submission, error)

	// Generic business records (allow-listed tables only)
	EntityList(ctx context.Context, t entity.Table) ([]map[string]any, error)
	EntityCreate(ctx context.Context, t entity.Table, fields map[string]any) (map[string]any, error)
	EntityUpdate(ctx context.Context, t entity.Table, id string, fields map[string]any) (map[string]any, error)
	EntityDelete(ctx context.Context, t entity.Table, id string) error
}
