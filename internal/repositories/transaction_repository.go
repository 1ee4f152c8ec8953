package repositories

import (
	"errors"
	"fmt"

	"pennyledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create persists a new transaction
func (r *transactionRepository) Create(tx *models.Transaction) error {
	return r.CreateTx(r.db, tx)
}

// CreateTx persists a new transaction within the given database transaction
func (r *transactionRepository) CreateTx(dbTx *gorm.DB, tx *models.Transaction) error {
	if err := dbTx.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatchTx persists a batch of transactions within the given database transaction
func (r *transactionRepository) CreateBatchTx(dbTx *gorm.DB, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	if err := dbTx.Create(&txs).Error; err != nil {
		return fmt.Errorf("failed to create transactions: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	tx := &models.Transaction{ID: id}
	if err := r.db.First(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// GetByReference retrieves a transaction by its reference string
func (r *transactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by reference: %w", err)
	}
	return &tx, nil
}

// ListByAccount retrieves all transactions involving an account, either
// as the source or as the transfer target
func (r *transactionRepository) ListByAccount(accountID uuid.UUID) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.Where("account_id = ? OR target_account_id = ?", accountID, accountID).
		Order("date ASC, created_at ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions for account: %w", err)
	}
	return txs, nil
}

// ListByAccountAndDateRange retrieves an account's transactions with a
// date inside [from, to]. Dates are stored as YYYY-MM-DD strings so the
// range comparison is plain lexical ordering.
func (r *transactionRepository) ListByAccountAndDateRange(accountID uuid.UUID, from, to string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.Where("(account_id = ? OR target_account_id = ?) AND date >= ? AND date <= ?",
		accountID, accountID, from, to).
		Order("date ASC, created_at ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions by date range: %w", err)
	}
	return txs, nil
}

// InterestPostingExists reports whether an interest accrual transaction
// already exists for the account in the given month ("2006-01"). Both
// the reference lookup and the month-range scan must come back empty,
// so a posting recorded under either scheme blocks a duplicate.
func (r *transactionRepository) InterestPostingExists(accountID uuid.UUID, month string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("account_id = ? AND type = ? AND date >= ? AND date <= ?",
			accountID, models.TransactionTypeInterestAccrual, month+"-01", month+"-31").
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check interest posting: %w", err)
	}
	return count > 0, nil
}

// Delete removes a transaction
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
