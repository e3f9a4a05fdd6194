package workers

import (
	"context"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
)

// MemoInvalidator drops every memoized upstream response of a store.
type MemoInvalidator interface {
	InvalidateStore(ctx context.Context, storeID string) error
}

type InvalidationJob struct {
	StoreID string
}

const invalidationQueueSize = 100

// InvalidationWorker clears memoized responses of disconnected stores in the
// background.
type InvalidationWorker struct {
	memo MemoInvalidator
	log  *logger.Logger
	jobs chan InvalidationJob
}

func NewInvalidationWorker(memo MemoInvalidator, log *logger.Logger) *InvalidationWorker {
	return &InvalidationWorker{
		memo: memo,
		log:  log,
		jobs: make(chan InvalidationJob, invalidationQueueSize),
	}
}

func (w *InvalidationWorker) Start(ctx context.Context) {
	go func() {
		w.log.Info(ctx, "invalidation worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info(ctx, "invalidation worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks. A full queue drops the job: memo entries expire on
// their own TTL.
func (w *InvalidationWorker) Enqueue(storeID string) {
	select {
	case w.jobs <- InvalidationJob{StoreID: storeID}:
	default:
		ctx := w.log.WithStoreID(context.Background(), storeID)
		w.log.Warn(ctx, "invalidation queue full, dropping job", nil)
	}
}

func (w *InvalidationWorker) processJob(ctx context.Context, job InvalidationJob) {
	ctx = w.log.WithStoreID(ctx, job.StoreID)
	if err := w.memo.InvalidateStore(ctx, job.StoreID); err != nil {
		w.log.Warn(ctx, "failed to invalidate memoized responses", err)
		return
	}
	w.log.Debug(ctx, "memoized responses invalidated")
}
