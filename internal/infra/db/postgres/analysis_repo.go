package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
)

// AnalysisRepository is the Postgres variant of the history store.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO log_analyses
  (id, environment, concern, question, risk_score, result_json, logs_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  risk_score=EXCLUDED.risk_score,
  result_json=EXCLUDED.result_json,
  logs_url=EXCLUDED.logs_url;
`
	result := a.Result
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.Environment, a.Concern, a.Question, a.RiskScore, result, a.LogsURL, createdAt)
	return err
}

// Get returns one record by id
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Record, error) {
	const q = `
SELECT id, environment, concern, question, risk_score, result_json, logs_url, created_at
FROM log_analyses
WHERE id=$1;
`
	var a domain.Record
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Environment, &a.Concern, &a.Question,
		&a.RiskScore, &a.Result, &a.LogsURL, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Paginate returns a page of records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, environment, concern, question, risk_score, result_json, logs_url, created_at
FROM log_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var a domain.Record
		if err := rows.Scan(&a.ID, &a.Environment, &a.Concern, &a.Question,
			&a.RiskScore, &a.Result, &a.LogsURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
