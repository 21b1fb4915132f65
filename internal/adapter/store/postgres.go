package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talentlens/talentlens/internal/domain"
)

// PostgresStore persists finished contributor analyses and audit records.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// --- Contributor analyses ---

// SaveContributorAnalysis inserts one finished analysis. Top pull requests
// and profile metrics are stored as jsonb payloads; relational columns
// carry what the surrounding product filters on.
func (s *PostgresStore) SaveContributorAnalysis(ctx context.Context, jobID string, a *domain.ContributorAnalysis) error {
	topJSON, err := json.Marshal(a.TopPullRequests)
	if err != nil {
		return fmt.Errorf("marshal top pull requests: %w", err)
	}
	profileJSON, err := json.Marshal(a.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query := `
		INSERT INTO contributor_analyses
			(job_id, login, contributor_id, profile_url, contributions,
			 total_considered, proficiency_grade, note, top_pull_requests, profile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = s.db.ExecContext(ctx, query,
		jobID, a.Contributor.Login, a.Contributor.ID, a.Contributor.ProfileURL,
		a.Contributor.Contributions, a.TotalConsidered, a.ProficiencyGrade,
		a.Note, topJSON, profileJSON,
	)
	if err != nil {
		return fmt.Errorf("save contributor analysis: %w", err)
	}
	return nil
}

// ListAnalysesByJob returns all analyses persisted for one job.
func (s *PostgresStore) ListAnalysesByJob(ctx context.Context, jobID string) ([]domain.ContributorAnalysis, error) {
	query := `
		SELECT login, contributor_id, profile_url, contributions,
		       total_considered, proficiency_grade, note, top_pull_requests, profile
		FROM contributor_analyses WHERE job_id = $1 ORDER BY id`

	return s.queryAnalyses(ctx, query, jobID)
}

// ListAnalysesByLogin returns every persisted analysis for a contributor,
// newest first.
func (s *PostgresStore) ListAnalysesByLogin(ctx context.Context, login string) ([]domain.ContributorAnalysis, error) {
	query := `
		SELECT login, contributor_id, profile_url, contributions,
		       total_considered, proficiency_grade, note, top_pull_requests, profile
		FROM contributor_analyses WHERE login = $1 ORDER BY created_at DESC`

	return s.queryAnalyses(ctx, query, login)
}

func (s *PostgresStore) queryAnalyses(ctx context.Context, query string, arg any) ([]domain.ContributorAnalysis, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []domain.ContributorAnalysis
	for rows.Next() {
		var a domain.ContributorAnalysis
		var topJSON, profileJSON []byte
		if err := rows.Scan(
			&a.Contributor.Login, &a.Contributor.ID, &a.Contributor.ProfileURL,
			&a.Contributor.Contributions, &a.TotalConsidered, &a.ProficiencyGrade,
			&a.Note, &topJSON, &profileJSON,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if err := json.Unmarshal(topJSON, &a.TopPullRequests); err != nil {
			return nil, fmt.Errorf("unmarshal top pull requests: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &a.Profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// --- Audit ---

// WriteAudit records one request for the audit trail.
func (s *PostgresStore) WriteAudit(action, resource, details, ip, userAgent string) error {
	query := `
		INSERT INTO audit_log (action, resource, details, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.Exec(query, action, resource, details, ip, userAgent)
	if err != nil {
		return fmt.Errorf("write audit: %w", err)
	}
	return nil
}
