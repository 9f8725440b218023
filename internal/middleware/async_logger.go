package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/service"
)

// AsyncLoggerConfig sizes the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the capacity of the entry queue.
	BufferSize int
	// NumWorkers is the number of goroutines writing entries.
	NumWorkers int
	// WriteTimeout bounds each write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the production sizing.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// LogSink accepts log entries without blocking the request.
type LogSink interface {
	Log(entry *model.LogEntry) bool
}

// AsyncLogger writes request and audit entries through a bounded worker pool.
// Entries are dropped when the queue is full.
type AsyncLogger struct {
	loggingService service.LoggingService
	entryCh        chan *model.LogEntry
	writeTimeout   time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  atomic.Bool
	mu       sync.RWMutex

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil when loggingService is nil.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultAsyncLoggerConfig().WriteTimeout
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		writeTimeout:   cfg.WriteTimeout,
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}
	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()
	for entry := range al.entryCh {
		al.write(entry)
	}
}

func (al *AsyncLogger) write(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.loggingService.CreateLog(ctx, entry); err != nil {
		al.failed.Add(1)
		log.Warn().Err(err).Str("action_type", entry.ActionType).Msg("Failed to write async log entry")
		return
	}
	al.written.Add(1)
}

// Log enqueues entry. It returns false when the queue is full or the logger stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil {
		return false
	}
	al.mu.RLock()
	defer al.mu.RUnlock()

	if al.stopped.Load() {
		al.dropped.Add(1)
		return false
	}
	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop drains the queue and waits for the workers.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		al.mu.Lock()
		al.stopped.Store(true)
		close(al.entryCh)
		al.mu.Unlock()
		al.wg.Wait()
	})
}

// AsyncLoggerStats counts what happened to submitted entries.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}
