package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "pennyledger/internal/errors"
	"pennyledger/internal/ledger"
	"pennyledger/internal/models"

	"gorm.io/gorm"
)

// SaveCoordinator serializes named persistence operations. Each name admits
// at most one in-flight operation; a second caller with the same name is
// rejected immediately rather than queued. A recoverable write conflict gets
// exactly one retry after the in-memory ledger is rolled back to the
// pre-operation snapshot.
type SaveCoordinator struct {
	db      *gorm.DB
	store   *ledger.Store
	metrics MetricsRecorderInterface
	logger  *slog.Logger

	mu     sync.Mutex
	active map[string]time.Time
}

func NewSaveCoordinator(
	db *gorm.DB,
	store *ledger.Store,
	metrics MetricsRecorderInterface,
) SaveCoordinatorInterface {
	return &SaveCoordinator{
		db:      db,
		store:   store,
		metrics: metrics,
		logger:  slog.Default(),
		active:  make(map[string]time.Time),
	}
}

// PerformSave runs op inside a fresh database transaction under the given
// coordination name.
func (c *SaveCoordinator) PerformSave(ctx context.Context, name string, op SaveOperation) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.New(apperrors.SaveInvalidName)
	}

	if err := c.acquire(name); err != nil {
		return err
	}
	defer c.release(name)

	return c.runWithRetry(ctx, name, op)
}

// PerformBatchSave locks every name up front, then runs all operations
// inside a single database transaction. Either every operation commits or
// none of them do.
func (c *SaveCoordinator) PerformBatchSave(ctx context.Context, ops []NamedOperation) error {
	if len(ops) == 0 {
		return apperrors.New(apperrors.SaveEmptyBatch)
	}

	for _, namedOp := range ops {
		if strings.TrimSpace(namedOp.Name) == "" {
			return apperrors.New(apperrors.SaveInvalidName)
		}
	}

	acquired := make([]string, 0, len(ops))
	for _, namedOp := range ops {
		if err := c.acquire(namedOp.Name); err != nil {
			for _, name := range acquired {
				c.release(name)
			}
			return err
		}
		acquired = append(acquired, namedOp.Name)
	}
	defer func() {
		for _, name := range acquired {
			c.release(name)
		}
	}()

	batchName := fmt.Sprintf("batch[%s]", strings.Join(acquired, ","))
	return c.runWithRetry(ctx, batchName, func(tx *gorm.DB) error {
		for _, namedOp := range ops {
			if err := namedOp.Op(tx); err != nil {
				return fmt.Errorf("operation %q: %w", namedOp.Name, err)
			}
		}
		return nil
	})
}

// Status lists the currently running save operations, oldest first.
func (c *SaveCoordinator) Status() []OperationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	statuses := make([]OperationStatus, 0, len(c.active))
	for name, startedAt := range c.active {
		statuses = append(statuses, OperationStatus{Name: name, StartedAt: startedAt})
	}
	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].StartedAt.Equal(statuses[j].StartedAt) {
			return statuses[i].Name < statuses[j].Name
		}
		return statuses[i].StartedAt.Before(statuses[j].StartedAt)
	})
	return statuses
}

func (c *SaveCoordinator) acquire(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if startedAt, exists := c.active[name]; exists {
		c.logger.Warn("save operation already in progress",
			slog.String("name", name),
			slog.Time("started_at", startedAt),
		)
		c.metrics.IncrementCounter("save.rejected", map[string]string{
			"name": name,
		})
		return apperrors.New(apperrors.SaveInProgress, apperrors.WithOperation(name))
	}

	c.active[name] = time.Now()
	return nil
}

func (c *SaveCoordinator) release(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, name)
}

func (c *SaveCoordinator) runWithRetry(ctx context.Context, name string, op SaveOperation) error {
	startTime := time.Now()

	c.metrics.IncrementCounter("save.started", map[string]string{
		"name": name,
	})

	snapshot := c.store.Snapshot()

	err := c.runOnce(ctx, op)
	if err == nil {
		c.recordCommit(name, startTime)
		return nil
	}

	if !isRecoverableConflict(err) {
		return c.fail(name, startTime, err)
	}

	c.logger.Warn("save conflict, retrying once",
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
	c.metrics.IncrementCounter("save.retried", map[string]string{
		"name": name,
	})

	if restoreErr := c.store.Restore(snapshot); restoreErr != nil {
		return c.fail(name, startTime, restoreErr)
	}

	if err := c.runOnce(ctx, op); err != nil {
		return c.fail(name, startTime, err)
	}

	c.recordCommit(name, startTime)
	return nil
}

func (c *SaveCoordinator) runOnce(ctx context.Context, op SaveOperation) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return op(tx)
	})
}

func (c *SaveCoordinator) recordCommit(name string, startTime time.Time) {
	duration := time.Since(startTime)
	c.metrics.RecordProcessingTime("save.duration", duration)
	c.metrics.IncrementCounter("save.committed", map[string]string{
		"name": name,
	})
	c.logger.Info("save committed",
		slog.String("name", name),
		slog.Duration("duration", duration),
	)
}

func (c *SaveCoordinator) fail(name string, startTime time.Time, cause error) error {
	c.metrics.RecordProcessingTime("save.duration", time.Since(startTime))
	c.metrics.IncrementCounter("save.failed", map[string]string{
		"name": name,
	})
	c.logger.Error("save failed",
		slog.String("name", name),
		slog.String("error", cause.Error()),
	)
	return apperrors.New(apperrors.SaveFailed,
		apperrors.WithOperation(name),
		apperrors.WithCause(cause),
	)
}

// isRecoverableConflict reports whether err is a write conflict worth one
// replay: an optimistic lock miss, a duplicate key race, or the driver-level
// busy and serialization failures sqlite and postgres surface.
func isRecoverableConflict(err error) bool {
	if errors.Is(err, models.ErrOptimisticLockConflict) {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"database is locked",
		"database table is locked",
		"sqlite_busy",
		"could not serialize access",
		"deadlock detected",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
