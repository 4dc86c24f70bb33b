package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"uploadtest/internal/model"
	"uploadtest/internal/repository"
)

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
// The full form is kept in a JSONB column; a few fields are lifted out for querying.
type ApplicationPostgres struct {
	db *sql.DB
}

func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationColumns = `id, applicant_name, email, loan_amount, fields, documents_uploaded, created_at`

// Create inserts a new application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, app *model.StoredApplication) (*model.StoredApplication, error) {
	fields, err := json.Marshal(app.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}

	const q = `
		INSERT INTO test_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + applicationColumns
	row := r.db.QueryRowContext(ctx, q,
		app.ID,
		app.ApplicantName,
		app.Email,
		app.LoanAmount,
		fields,
		app.DocumentsUploaded,
		app.CreatedAt,
	)
	return scanApplication(row)
}

// FindByID fetches a single application by its ID.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.StoredApplication, error) {
	const q = `SELECT ` + applicationColumns + ` FROM test_applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return app, err
}

func (r *ApplicationPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanApplication(row *sql.Row) (*model.StoredApplication, error) {
	var (
		out    model.StoredApplication
		fields []byte
	)
	if err := row.Scan(
		&out.ID,
		&out.ApplicantName,
		&out.Email,
		&out.LoanAmount,
		&fields,
		&out.DocumentsUploaded,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &out.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
	}
	return &out, nil
}
