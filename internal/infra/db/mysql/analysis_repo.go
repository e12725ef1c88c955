package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
)

// AnalysisRepository persists analyses in the log_analyses table:
//
//	CREATE TABLE log_analyses (
//	  id          VARCHAR(64) PRIMARY KEY,
//	  environment VARCHAR(64)  NOT NULL DEFAULT '',
//	  concern     VARCHAR(64)  NOT NULL DEFAULT '',
//	  question    TEXT         NOT NULL,
//	  risk_score  DOUBLE       NOT NULL DEFAULT 0,
//	  result_json JSON         NOT NULL,
//	  logs_url    VARCHAR(512) NOT NULL DEFAULT '',
//	  created_at  DATETIME     NOT NULL,
//	  KEY idx_created (created_at)
//	);
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO log_analyses
  (id, environment, concern, question, risk_score, result_json, logs_url, created_at)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  risk_score=VALUES(risk_score), result_json=VALUES(result_json), logs_url=VALUES(logs_url);
`
	// result_json column requires valid JSON; use empty object as fallback
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

// Get returns one record by id. sql.ErrNoRows passes through for 404 mapping.
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Record, error) {
	const q = `
SELECT id, environment, concern, question, risk_score, result_json, logs_url, created_at
FROM log_analyses
WHERE id=?;
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
LIMIT ? OFFSET ?;
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
