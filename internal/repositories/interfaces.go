package repositories

import (
	"pennyledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountRepositoryInterface defines persistence operations for account balances
type AccountRepositoryInterface interface {
	Create(account *models.AccountBalance) error
	CreateTx(tx *gorm.DB, account *models.AccountBalance) error
	GetByID(id uuid.UUID) (*models.AccountBalance, error)
	GetAll() ([]models.AccountBalance, error)
	GetDeposits() ([]models.AccountBalance, error)
	Update(account *models.AccountBalance) error
	UpdateTx(tx *gorm.DB, account *models.AccountBalance) error
	UpdateWithOptimisticLock(tx *gorm.DB, account *models.AccountBalance) error
	UpdateBalance(id uuid.UUID, balance decimal.Decimal) error
	Delete(id uuid.UUID) error
}

// TransactionRepositoryInterface defines persistence operations for transactions
type TransactionRepositoryInterface interface {
	Create(tx *models.Transaction) error
	CreateTx(dbTx *gorm.DB, tx *models.Transaction) error
	CreateBatchTx(dbTx *gorm.DB, txs []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByReference(reference string) (*models.Transaction, error)
	ListByAccount(accountID uuid.UUID) ([]models.Transaction, error)
	ListByAccountAndDateRange(accountID uuid.UUID, from, to string) ([]models.Transaction, error)
	InterestPostingExists(accountID uuid.UUID, month string) (bool, error)
	Delete(id uuid.UUID) error
}
