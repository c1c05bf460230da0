package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
)

const (
	// Debounce window - collect events for same product within this duration
	debounceWindow = 1 * time.Second

	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// AggregateUpdater recomputes a product's stored rating aggregates
type AggregateUpdater interface {
	CalculateAndUpdate(ctx context.Context, productID int64) error
}

// CatalogEvent is the shared envelope of events on the catalog subject.
// Only review events carry a product id the worker cares about.
type CatalogEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProductID int64     `json:"product_id"`
	ReviewID  int64     `json:"review_id"`
}

// RatingWorker processes review events and refreshes product rating
// aggregates asynchronously, as a safety net behind the transactional
// recalculation done on insert.
type RatingWorker struct {
	calculator AggregateUpdater
	logger     *logger.Logger

	// Debouncing state
	mu             sync.Mutex
	pendingUpdates map[int64]*pendingUpdate
	shutdownCh     chan struct{}
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

type pendingUpdate struct {
	productID int64
	timestamp time.Time
	timer     *time.Timer
}

// NewRatingWorker creates a new rating worker
func NewRatingWorker(calculator AggregateUpdater, logger *logger.Logger) *RatingWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &RatingWorker{
		calculator:     calculator,
		logger:         logger,
		pendingUpdates: make(map[int64]*pendingUpdate),
		shutdownCh:     make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// HandleEvent processes a catalog event. Non-review events are acknowledged
// and skipped.
func (w *RatingWorker) HandleEvent(data []byte) error {
	var event CatalogEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.WithFields(map[string]any{
			"error": err.Error(),
		}).Error("Failed to unmarshal catalog event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.EventType != "review.created" {
		w.logger.Debugf("Skipping event type %s", event.EventType)
		return nil
	}

	w.logger.WithFields(map[string]any{
		"event_type": event.EventType,
		"product_id": event.ProductID,
		"review_id":  event.ReviewID,
		"timestamp":  event.Timestamp,
	}).Info("Received review event")

	w.scheduleUpdate(event.ProductID, event.Timestamp)

	return nil
}

// scheduleUpdate implements debouncing logic.
// Multiple events for same product within debounce window result in single DB update.
func (w *RatingWorker) scheduleUpdate(productID int64, timestamp time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	existing, found := w.pendingUpdates[productID]

	if found {
		// Ignore stale events
		if timestamp.Before(existing.timestamp) {
			w.logger.WithFields(map[string]any{
				"product_id":  productID,
				"existing_ts": existing.timestamp,
				"event_ts":    timestamp,
			}).Debug("Ignoring stale event")
			return
		}

		existing.timer.Stop()
		w.logger.WithFields(map[string]any{
			"product_id": productID,
		}).Debug("Debouncing: resetting timer for product")
	} else {
		w.wg.Add(1)
	}

	timer := time.AfterFunc(debounceWindow, func() {
		w.processUpdate(productID)
	})

	w.pendingUpdates[productID] = &pendingUpdate{
		productID: productID,
		timestamp: timestamp,
		timer:     timer,
	}
}

// processUpdate executes the rating calculation with retry logic
func (w *RatingWorker) processUpdate(productID int64) {
	defer w.wg.Done()

	w.mu.Lock()
	delete(w.pendingUpdates, productID)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"product_id": productID,
	}).Info("Processing rating update")

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]any{
				"product_id": productID,
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying rating update")

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				w.logger.Info("Worker context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
		err := w.calculator.CalculateAndUpdate(ctx, productID)
		cancel()

		if err == nil {
			return
		}

		lastErr = err
		w.logger.WithFields(map[string]any{
			"product_id": productID,
			"attempt":    attempt + 1,
			"error":      err.Error(),
		}).Error("Failed to update rating", err)
	}

	w.logger.WithFields(map[string]any{
		"product_id":  productID,
		"max_retries": maxRetries,
		"error":       lastErr.Error(),
	}).Error("Rating update failed after all retries", lastErr)
}

// Shutdown gracefully shuts down the worker.
// Cancels pending timers and waits for in-flight updates to complete.
func (w *RatingWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down rating worker...")

	close(w.shutdownCh)
	w.cancel()

	w.mu.Lock()
	cancelled := 0
	for _, update := range w.pendingUpdates {
		// Stop reports false when the timer already fired; that update is
		// in flight and owns its own WaitGroup slot.
		if update.timer.Stop() {
			w.wg.Done()
			cancelled++
		}
	}
	w.pendingUpdates = make(map[int64]*pendingUpdate)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"cancelled_updates": cancelled,
	}).Info("Cancelled pending updates")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight updates completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// GetPendingCount returns the number of pending updates (used for monitoring/testing)
func (w *RatingWorker) GetPendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pendingUpdates)
}
