package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	domain "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
)

type fakeAI struct {
	calls  int
	output string
	err    error
}

func (f *fakeAI) Analyze(ctx context.Context, req domain.Request) (string, error) {
	f.calls++
	return f.output, f.err
}

type fakeRepo struct {
	saved   []*domain.Record
	saveErr error
}

func (f *fakeRepo) Save(ctx context.Context, rec *domain.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id domain.AnalysisID) (*domain.Record, error) {
	for _, rec := range f.saved {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	return f.saved, nil
}

type fakeArchive struct {
	keys []string
	url  string
	err  error
}

func (f *fakeArchive) Archive(ctx context.Context, key, logs string) (string, error) {
	f.keys = append(f.keys, key)
	return f.url, f.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

const validOutput = `{"overall_risk_score": 80, "summary": "bad day", "detections": [], "recommended_actions": ["isolate host"], "queries_to_run": []}`

func newService(ai *fakeAI, repo *fakeRepo, arch *fakeArchive) *Service {
	svc := &Service{
		AI:    ai,
		Clock: fixedClock{t: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)},
	}
	if repo != nil {
		svc.Repo = repo
	}
	if arch != nil {
		svc.Archive = arch
	}
	return svc
}

func TestAnalyzeEmptyLogsNeverCallsUpstream(t *testing.T) {
	ai := &fakeAI{output: validOutput}
	svc := newService(ai, nil, nil)

	for _, logs := range []string{"", "   ", "\n\t"} {
		_, err := svc.Analyze(context.Background(), domain.Request{Logs: logs})
		if !errors.Is(err, domain.ErrEmptyLogs) {
			t.Errorf("logs=%q: err = %v, want ErrEmptyLogs", logs, err)
		}
	}
	if ai.calls != 0 {
		t.Errorf("upstream called %d times for invalid input", ai.calls)
	}
}

func TestAnalyzeOversizedLogsRejected(t *testing.T) {
	ai := &fakeAI{output: validOutput}
	svc := newService(ai, nil, nil)
	svc.MaxLogBytes = 16

	_, err := svc.Analyze(context.Background(), domain.Request{Logs: strings.Repeat("x", 17)})
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ai.calls != 0 {
		t.Error("upstream called for oversized input")
	}
}

func TestAnalyzeRelaysModelVerdict(t *testing.T) {
	svc := newService(&fakeAI{output: validOutput}, nil, nil)

	res, err := svc.Analyze(context.Background(), domain.Request{Logs: "failed login x50"})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.OverallRiskScore != 80 || res.Summary != "bad day" {
		t.Errorf("got %+v", res)
	}
	if res.Detections == nil || res.QueriesToRun == nil {
		t.Error("arrays must not be nil")
	}
}

func TestAnalyzePersistsRecord(t *testing.T) {
	repo := &fakeRepo{}
	arch := &fakeArchive{url: "http://minio/logs/x.log"}
	svc := newService(&fakeAI{output: validOutput}, repo, arch)

	_, err := svc.Analyze(context.Background(), domain.Request{
		Environment: "aws", Concern: "intrusion", Logs: "log line",
	})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(repo.saved))
	}
	rec := repo.saved[0]
	if rec.Environment != "aws" || rec.Concern != "intrusion" {
		t.Errorf("record labels = %q/%q", rec.Environment, rec.Concern)
	}
	if rec.RiskScore != 80 {
		t.Errorf("record risk score = %v", rec.RiskScore)
	}
	if rec.LogsURL != arch.url {
		t.Errorf("record logs url = %q", rec.LogsURL)
	}

	var stored domain.Result
	if err := json.Unmarshal([]byte(rec.Result), &stored); err != nil {
		t.Fatalf("stored result is not valid JSON: %v", err)
	}

	if len(arch.keys) != 1 || !strings.HasPrefix(arch.keys[0], "2026/08/23/") {
		t.Errorf("archive keys = %v", arch.keys)
	}
}

func TestAnalyzeStorageFailuresAreBestEffort(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("db down")}
	arch := &fakeArchive{err: errors.New("bucket gone")}
	svc := newService(&fakeAI{output: validOutput}, repo, arch)

	res, err := svc.Analyze(context.Background(), domain.Request{Logs: "log line"})
	if err != nil {
		t.Fatalf("storage failure leaked to the caller: %v", err)
	}
	if res.OverallRiskScore != 80 {
		t.Errorf("got %+v", res)
	}
}

func TestAnalyzeUpstreamErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	svc := newService(&fakeAI{err: wantErr}, nil, nil)

	_, err := svc.Analyze(context.Background(), domain.Request{Logs: "log line"})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestAnalyzeMalformedOutputRejected(t *testing.T) {
	svc := newService(&fakeAI{output: "not json at all"}, nil, nil)

	_, err := svc.Analyze(context.Background(), domain.Request{Logs: "log line"})
	if !errors.Is(err, domain.ErrMalformedOutput) {
		t.Errorf("err = %v, want ErrMalformedOutput", err)
	}
}
