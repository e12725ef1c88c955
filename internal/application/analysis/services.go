package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/GouthamiN25/CyberRisk-Advisor/internal/application"
	domai "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/ai"
	domain "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
)

// Service implements the analyze-logs use case.
// All intelligence lives in the AI client; the service validates input,
// relays the model verdict, and keeps a best-effort audit trail.
// Safe for concurrent use.
type Service struct {
	AI          domai.Client
	Repo        domain.Repository // optional; nil disables history
	Archive     domain.LogArchive // optional; nil disables log retention
	Clock       application.Clock
	MaxLogBytes int // 0 means unbounded
}

// Analyze validates the request, asks the model for a verdict, and returns
// the normalized result. Archiving the raw logs and persisting the record are
// best-effort: their failures are logged and never surface to the caller.
func (s *Service) Analyze(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if strings.TrimSpace(req.Logs) == "" {
		return nil, domain.ErrEmptyLogs
	}
	if s.MaxLogBytes > 0 && len(req.Logs) > s.MaxLogBytes {
		return nil, domain.ValidationError(
			fmt.Sprintf("logs exceed the %d byte limit", s.MaxLogBytes))
	}

	raw, err := s.AI.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := domain.ParseResult(raw)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	id := domain.AnalysisID(uuid.New().String())

	var logsURL string
	if s.Archive != nil {
		key := fmt.Sprintf("%s/%s.log", now.UTC().Format("2006/01/02"), id)
		logsURL, err = s.Archive.Archive(ctx, key, req.Logs)
		if err != nil {
			log.Printf("log archive failed for analysis=%s: %v", id, err)
			logsURL = ""
		}
	}

	if s.Repo != nil {
		resultJSON, merr := json.Marshal(result)
		if merr != nil {
			log.Printf("result marshal failed for analysis=%s: %v", id, merr)
		} else {
			rec := &domain.Record{
				ID:          id,
				Environment: req.Environment,
				Concern:     req.Concern,
				Question:    req.Question,
				RiskScore:   result.OverallRiskScore,
				Result:      string(resultJSON),
				LogsURL:     logsURL,
				CreatedAt:   now,
			}
			if err := s.Repo.Save(ctx, rec); err != nil {
				log.Printf("analysis save failed for analysis=%s: %v", id, err)
			}
		}
	}

	return result, nil
}

// HasHistory reports whether stored analyses can be queried.
func (s *Service) HasHistory() bool { return s.Repo != nil }

// History returns a page of stored analyses, newest first.
func (s *Service) History(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}

// Get returns one stored analysis by id.
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Record, error) {
	return s.Repo.Get(ctx, id)
}
