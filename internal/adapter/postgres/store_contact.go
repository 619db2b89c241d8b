package postgres

import (
	"context"
	"fmt"

	"github.com/sagecrest/pulsedash/internal/domain/contact"
)

const submissionColumns = `id, name, email, company, message, status, notes, submitted_at`

func scanSubmission(row scannable) (contact.Submission, error) {
	var sub contact.Submission
	err := row.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Company,
		&sub.Message, &sub.Status, &sub.Notes, &sub.SubmittedAt)
	return sub, err
}

func (s *Store) CreateSubmission(ctx context.Context, req contact.CreateRequest) (*contact.Submission, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, company, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+submissionColumns,
		req.Name, req.Email, req.Company, req.Message)

	sub, err := scanSubmission(row)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return &sub, nil
}

// ListSubmissions returns submissions newest first. An empty status
// returns all of them.
func (s *Store) ListSubmissions(ctx context.Context, status contact.Status) ([]contact.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM contact_submissions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []contact.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return orEmpty(subs), rows.Err()
}

func (s *Store) UpdateSubmission(ctx context.Context, id string, req contact.UpdateRequest) (*contact.Submission, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE contact_submissions
		 SET status = COALESCE($2, status), notes = COALESCE($3, notes)
		 WHERE id = $1
		 RETURNING `+submissionColumns,
		id, req.Status, req.Notes)

	sub, err := scanSubmission(row)
	if err != nil {
		return nil, notFoundWrap(err, "update submission %s", id)
	}
	return &sub, nil
}
