package analysis

import "context"

// Repository port for persisting and querying analyses
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id AnalysisID) (*Record, error)
	Paginate(ctx context.Context, page, pageSize int) ([]*Record, error)
}

// LogArchive port for retaining submitted log batches
type LogArchive interface {
	Archive(ctx context.Context, key string, logs string) (string, error)
}
