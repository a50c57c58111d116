package history

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, rec *AnalysisRecord) error
	List(ctx context.Context, limit, skip int) ([]*AnalysisRecord, error)
	Get(ctx context.Context, id RecordID) (*AnalysisRecord, error)
	Delete(ctx context.Context, id RecordID) error
}

// FailureLog port (interface for recording and reviewing inference failures)
type FailureLog interface {
	Record(ctx context.Context, f *InferenceFailure) error
	Latest(ctx context.Context, limit int) ([]*InferenceFailure, error)
}
