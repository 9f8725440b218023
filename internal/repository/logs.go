package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is a request or audit log record in MongoDB.
type LogEntryDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp  time.Time              `bson:"timestamp"`
	Level      string                 `bson:"level"`
	Message    string                 `bson:"message"`
	RequestID  string                 `bson:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty"`
	Path       string                 `bson:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty"`
	Error      string                 `bson:"error,omitempty"`
	Actor      string                 `bson:"actor,omitempty"`
	ActionType string                 `bson:"action_type,omitempty"`
	BundleSlug string                 `bson:"bundle_slug,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty"`
}

func (e *LogEntryDocument) stamp() {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}

// LogQueryOptions filters log queries. Zero fields are ignored.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	ActionType string
	BundleSlug string
	Actor      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int

	// AuditOnly skips request logs, which carry no action type.
	AuditOnly bool
}

func (o LogQueryOptions) filter() bson.M {
	filter := bson.M{}
	for key, value := range map[string]string{
		"request_id":  o.RequestID,
		"level":       o.Level,
		"action_type": o.ActionType,
		"bundle_slug": o.BundleSlug,
		"actor":       o.Actor,
	} {
		if value != "" {
			filter[key] = value
		}
	}
	if o.AuditOnly && o.ActionType == "" {
		filter["action_type"] = bson.M{"$exists": true, "$ne": ""}
	}

	if o.StartTime != nil || o.EndTime != nil {
		window := bson.M{}
		if o.StartTime != nil {
			window["$gte"] = *o.StartTime
		}
		if o.EndTime != nil {
			window["$lte"] = *o.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

// LogsRepository stores log entries in MongoDB.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a logs repository on db.Logs.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.stamp()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered batch.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		entry.stamp()
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*LogEntryDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
