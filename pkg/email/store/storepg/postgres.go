// Package storepg is the PostgreSQL implementation of the email document
// repository.
package storepg

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/store"
	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

// Schema is the table this repository expects. Kept here so deployments can
// apply it with their migration tooling of choice.
const Schema = `
CREATE TABLE IF NOT EXISTS emails (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	brand_name TEXT NOT NULL,
	subject    TEXT NOT NULL,
	spec       JSONB NOT NULL,
	warnings   JSONB,
	attempts   INT NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS emails_brand_name_idx ON emails (brand_name, created_at DESC);
`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) store.Repository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, rec store.Record) error {
	query := `
		INSERT INTO emails (id, run_id, brand_name, subject, spec, warnings, attempts, created_at)
		VALUES (:id, :run_id, :brand_name, :subject, :spec, :warnings, :attempts, :created_at)`

	p, err := toPersistence(rec)
	if err != nil {
		return errx.Wrap(err, "failed to encode email document", errx.TypeInternal)
	}

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return errx.Wrap(err, "email id already exists", errx.TypeBusiness).
				WithDetail("id", rec.ID)
		}
		return errx.Wrap(err, "failed to save email document", errx.TypeInternal).
			WithDetail("id", rec.ID)
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*store.Record, error) {
	var p emailPersistence
	query := `SELECT * FROM emails WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.NotFound(id)
		}
		return nil, errx.Wrap(err, "failed to find email document", errx.TypeInternal).
			WithDetail("id", id)
	}
	rec, err := toDomain(p)
	if err != nil {
		return nil, errx.Wrap(err, "failed to decode stored email document", errx.TypeInternal).
			WithDetail("id", id)
	}
	return rec, nil
}

func (r *PostgresRepository) ListByBrand(ctx context.Context, brandName string, limit int) ([]*store.Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []emailPersistence
	query := `SELECT * FROM emails WHERE brand_name = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, brandName, limit); err != nil {
		return nil, errx.Wrap(err, "failed to list email documents", errx.TypeInternal).
			WithDetail("brand_name", brandName)
	}

	out := make([]*store.Record, 0, len(rows))
	for _, p := range rows {
		rec, err := toDomain(p)
		if err != nil {
			return nil, errx.Wrap(err, "failed to decode stored email document", errx.TypeInternal).
				WithDetail("id", p.ID)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM emails WHERE id = $1`, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete email document", errx.TypeInternal).
			WithDetail("id", id)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected on delete", errx.TypeInternal)
	}
	if affected == 0 {
		return store.NotFound(id)
	}
	return nil
}

type emailPersistence struct {
	ID        string          `db:"id"`
	RunID     string          `db:"run_id"`
	BrandName string          `db:"brand_name"`
	Subject   string          `db:"subject"`
	Spec      json.RawMessage `db:"spec"`
	Warnings  json.RawMessage `db:"warnings"`
	Attempts  int             `db:"attempts"`
	CreatedAt time.Time       `db:"created_at"`
}

func toPersistence(rec store.Record) (emailPersistence, error) {
	rawSpec, err := json.Marshal(rec.Spec)
	if err != nil {
		return emailPersistence{}, err
	}
	var rawWarnings json.RawMessage
	if len(rec.Warnings) > 0 {
		rawWarnings, err = json.Marshal(rec.Warnings)
		if err != nil {
			return emailPersistence{}, err
		}
	}
	return emailPersistence{
		ID:        rec.ID,
		RunID:     rec.RunID,
		BrandName: rec.BrandName,
		Subject:   rec.Subject,
		Spec:      rawSpec,
		Warnings:  rawWarnings,
		Attempts:  rec.Attempts,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func toDomain(p emailPersistence) (*store.Record, error) {
	var doc spec.EmailSpec
	if err := json.Unmarshal(p.Spec, &doc); err != nil {
		return nil, err
	}
	var warnings []spec.Issue
	if len(p.Warnings) > 0 {
		if err := json.Unmarshal(p.Warnings, &warnings); err != nil {
			return nil, err
		}
	}
	return &store.Record{
		ID:        p.ID,
		RunID:     p.RunID,
		BrandName: p.BrandName,
		Subject:   p.Subject,
		Spec:      &doc,
		Warnings:  warnings,
		Attempts:  p.Attempts,
		CreatedAt: p.CreatedAt,
	}, nil
}
