package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pieceJobBack/internal/models"
)

// ArchiveRepository persists retired jobs and their bids to SQL.
// Driver is "mysql" or "pgx" and only affects placeholder syntax.
type ArchiveRepository struct {
	DB     *sql.DB
	Driver string
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS archived_jobs (
	id VARCHAR(64) PRIMARY KEY,
	customer_id VARCHAR(64) NOT NULL,
	provider_id VARCHAR(64),
	title VARCHAR(255) NOT NULL,
	category VARCHAR(64) NOT NULL,
	status VARCHAR(32) NOT NULL,
	budget VARCHAR(64) NOT NULL,
	estimated_duration INT NOT NULL,
	posted_at TIMESTAMP NOT NULL,
	retired_at TIMESTAMP NOT NULL,
	payload TEXT NOT NULL
)`

const archiveBidsSchema = `
CREATE TABLE IF NOT EXISTS archived_bids (
	id VARCHAR(64) PRIMARY KEY,
	job_id VARCHAR(64) NOT NULL,
	provider_id VARCHAR(64) NOT NULL,
	amount VARCHAR(64) NOT NULL,
	status VARCHAR(32) NOT NULL,
	submitted_at TIMESTAMP NOT NULL
)`

// EnsureSchema creates the archive tables if they are missing.
func (r *ArchiveRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{archiveSchema, archiveBidsSchema} {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("archive schema: %w", err)
		}
	}
	return nil
}

// ArchiveJobs writes jobs and their bids in one transaction.
// Rows that already exist are left untouched.
func (r *ArchiveRepository) ArchiveJobs(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	jobQuery := r.rebind(r.insertIgnore(`archived_jobs (id, customer_id, provider_id, title, category, status, budget, estimated_duration, posted_at, retired_at, payload)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	bidQuery := r.rebind(r.insertIgnore(`archived_bids (id, job_id, provider_id, amount, status, submitted_at)
VALUES (?, ?, ?, ?, ?, ?)`))

	for _, job := range jobs {
		retired := job.PostedAt
		if at := job.RetiredAt(); at != nil {
			retired = *at
		}
		payload, err := json.Marshal(job)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, jobQuery,
			job.ID, job.CustomerID, nullString(job.ProviderID), job.Title, job.Category, string(job.Status),
			job.Budget, job.EstimatedDuration, job.PostedAt.UTC(), retired.UTC(), string(payload),
		); err != nil {
			return fmt.Errorf("archive job %s: %w", job.ID, err)
		}
		for _, bid := range job.Bids {
			if _, err := tx.ExecContext(ctx, bidQuery,
				bid.ID, bid.JobID, bid.ProviderID, bid.Amount, string(bid.Status), bid.SubmittedAt.UTC(),
			); err != nil {
				return fmt.Errorf("archive bid %s: %w", bid.ID, err)
			}
		}
	}
	return tx.Commit()
}

// ArchivedJobsByCustomer returns a customer's archived jobs, most recently retired first.
func (r *ArchiveRepository) ArchivedJobsByCustomer(ctx context.Context, customerID string) ([]models.Job, error) {
	query := r.rebind(`SELECT payload, retired_at FROM archived_jobs WHERE customer_id = ? ORDER BY retired_at DESC`)
	rows, err := r.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var payload string
		var retired time.Time
		if err := rows.Scan(&payload, &retired); err != nil {
			return nil, err
		}
		var job models.Job
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			return nil, fmt.Errorf("decode archived job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *ArchiveRepository) insertIgnore(rest string) string {
	if r.Driver == "pgx" {
		return "INSERT INTO " + rest + " ON CONFLICT (id) DO NOTHING"
	}
	return "INSERT IGNORE INTO " + rest
}

// rebind rewrites ? placeholders to $n for postgres.
func (r *ArchiveRepository) rebind(query string) string {
	if r.Driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
