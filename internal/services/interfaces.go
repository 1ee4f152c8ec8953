package services

import (
	"context"
	"time"

	"pennyledger/internal/dto"
	"pennyledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaveOperation is the unit of work handed to the save coordinator. It runs
// inside a fresh database transaction and must be safe to run twice: the
// coordinator replays it once after a recoverable conflict.
type SaveOperation func(tx *gorm.DB) error

// NamedOperation pairs a save operation with its coordination name
type NamedOperation struct {
	Name string
	Op   SaveOperation
}

// OperationStatus describes one in-flight save operation
type OperationStatus struct {
	Name      string
	StartedAt time.Time
}

// SaveCoordinatorInterface serializes named persistence operations
type SaveCoordinatorInterface interface {
	PerformSave(ctx context.Context, name string, op SaveOperation) error
	PerformBatchSave(ctx context.Context, ops []NamedOperation) error
	Status() []OperationStatus
}

// AccrualResult reports the outcome of one reconciliation run. A catch-up
// window spanning several posting days yields one month per posting and a
// total posted amount across all of them.
type AccrualResult struct {
	AccountID       uuid.UUID
	DaysAccrued     int
	InterestAccrued decimal.Decimal
	Posted          bool
	PostedAmount    decimal.Decimal
	PostingMonths   []string
}

// PostingCallback is invoked after an interest posting transaction commits
type PostingCallback func(posting *models.Transaction)

// InterestAccrualServiceInterface drives day-granular deposit interest
type InterestAccrualServiceInterface interface {
	ReconcileDepositInterest(ctx context.Context, account *models.AccountBalance, now time.Time, onPosted PostingCallback) (*AccrualResult, error)
	ReconcileAllDeposits(ctx context.Context, now time.Time) ([]AccrualResult, error)
	CalculateInterestToToday(account *models.AccountBalance, now time.Time) (decimal.Decimal, error)
	AddRateChange(ctx context.Context, accountID uuid.UUID, change models.RateChange) error
	AddRateChangeRequest(ctx context.Context, accountID uuid.UUID, req dto.RateChangeRequest) error
	NextPostingDate(info *models.DepositInfo, now time.Time) time.Time
}

// MetricsRecorderInterface abstracts the metrics backend
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// TransactionGeneratorInterface generates realistic transaction data for testing
type TransactionGeneratorInterface interface {
	GenerateHistory(accountID uuid.UUID, currency string, startDate, endDate time.Time, count int) []models.Transaction
	GenerateIncome(accountID uuid.UUID, currency, date string) models.Transaction
	GenerateExpense(accountID uuid.UUID, currency, date string) models.Transaction
	GenerateTransfer(sourceID, targetID uuid.UUID, currency, date string) models.Transaction
	GenerateAmount(txType string) decimal.Decimal
	GenerateDate(startDate, endDate time.Time) string
}
