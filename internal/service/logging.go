package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/repository"
)

// DefaultAuditLimit caps audit queries that do not set a limit.
const DefaultAuditLimit = 100

// LoggingService persists request logs and bundle audit entries and reads
// the audit trail back for the admin API.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements LoggingService on a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a logging service.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

// CreateLog stores entry. A zero ID or Timestamp is filled in on entry itself.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, toLogDocument(entry))
}

// CreateLogs stores a batch in one write. An empty batch is a no-op.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, toLogDocument(entry))
	}
	return s.repo.CreateMany(ctx, docs)
}

// QueryLogs returns up to opts.Limit matching entries, newest first.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultAuditLimit
	}
	docs, err := s.repo.Query(ctx, toRepoQuery(opts))
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}

	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fromLogDocument(doc))
	}
	return entries, nil
}

// CountLogs counts every matching entry regardless of opts.Limit.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	opts.Limit = 0
	n, err := s.repo.Count(ctx, toRepoQuery(opts))
	if err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return n, nil
}

func toRepoQuery(opts model.LogQueryOptions) repository.LogQueryOptions {
	q := repository.LogQueryOptions{Limit: opts.Limit, AuditOnly: opts.AuditOnly}
	q.ActionType, q.BundleSlug, q.Actor = opts.ActionType, opts.BundleSlug, opts.Actor
	q.StartTime, q.EndTime = opts.StartTime, opts.EndTime
	return q
}

func toLogDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	doc := repository.LogEntryDocument(*entry)
	return &doc
}

func fromLogDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry(*doc)
}
