package repositories

import (
	"errors"
	"fmt"

	"pennyledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account balance repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create persists a new account balance row
func (r *accountRepository) Create(account *models.AccountBalance) error {
	return r.CreateTx(r.db, account)
}

// CreateTx persists a new account balance row within the given transaction
func (r *accountRepository) CreateTx(tx *gorm.DB, account *models.AccountBalance) error {
	if err := tx.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create account balance: %w", err)
	}
	return nil
}

// GetByID retrieves an account balance by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.AccountBalance, error) {
	account := &models.AccountBalance{ID: id}
	if err := r.db.First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account balance: %w", err)
	}
	return account, nil
}

// GetAll retrieves all account balances
func (r *accountRepository) GetAll() ([]models.AccountBalance, error) {
	var accounts []models.AccountBalance
	if err := r.db.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get account balances: %w", err)
	}
	return accounts, nil
}

// GetDeposits retrieves all deposit accounts
func (r *accountRepository) GetDeposits() ([]models.AccountBalance, error) {
	var accounts []models.AccountBalance
	if err := r.db.Where("is_deposit = ?", true).
		Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get deposit accounts: %w", err)
	}
	return accounts, nil
}

// Update saves an account balance without a version check
func (r *accountRepository) Update(account *models.AccountBalance) error {
	return r.UpdateTx(r.db, account)
}

// UpdateTx saves an account balance within the given transaction
func (r *accountRepository) UpdateTx(tx *gorm.DB, account *models.AccountBalance) error {
	if err := tx.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}

// UpdateWithOptimisticLock saves the account only if the stored version
// still matches account.Version. A concurrent writer that bumped the
// version in the meantime makes this return ErrOptimisticLockConflict.
func (r *accountRepository) UpdateWithOptimisticLock(tx *gorm.DB, account *models.AccountBalance) error {
	// The populated struct is the model so the BeforeUpdate hook sees the
	// real fields; a bare-key model would fail validation and bump the
	// wrong version.
	expectedVersion := account.Version
	result := tx.Model(account).
		Where("version = ?", expectedVersion).
		Updates(account)

	if result.Error != nil {
		return fmt.Errorf("failed to update account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// The BeforeUpdate hook bumps the in-memory version before the
		// statement runs; undo that so callers can re-pull and retry.
		account.Version = expectedVersion

		var count int64
		if err := tx.Model(&models.AccountBalance{}).
			Where("id = ?", account.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check account existence: %w", err)
		}
		if count == 0 {
			return ErrAccountNotFound
		}
		return models.ErrOptimisticLockConflict
	}

	account.Version = expectedVersion + 1
	return nil
}

// UpdateBalance updates just the current balance of an account. The
// version still advances so holders of an optimistic lock taken before
// this write lose their race.
func (r *accountRepository) UpdateBalance(id uuid.UUID, balance decimal.Decimal) error {
	result := r.db.Model(&models.AccountBalance{ID: id}).
		Updates(map[string]interface{}{
			"current_balance": balance,
			"version":         gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete soft deletes an account balance
func (r *accountRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.AccountBalance{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
