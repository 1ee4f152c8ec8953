package database

import (
	"testing"
	"time"

	"pennyledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&models.AccountBalance{},
		&models.Transaction{},
	)
	require.NoError(t, err, "Failed to migrate test database")

	return db
}

// CleanupTestDB removes all data from the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	tables := []string{"transactions", "account_balances"}
	for _, table := range tables {
		err := db.Exec("DELETE FROM " + table).Error
		require.NoError(t, err, "Failed to clean up table: "+table)
	}
}

// CreateTestAccount creates a manual account balance for testing
func CreateTestAccount(t *testing.T, db *gorm.DB, currency string, initial decimal.Decimal) *models.AccountBalance {
	account := &models.AccountBalance{
		ID:              uuid.New(),
		CurrencyCode:    currency,
		CalculationMode: models.CalculationModeFromInitialBalance,
		InitialBalance:  decimal.NewNullDecimal(initial),
		CurrentBalance:  initial,
	}
	require.NoError(t, db.Create(account).Error, "Failed to create test account")
	return account
}

// CreateTestDeposit creates a deposit account with the given rate and posting day
func CreateTestDeposit(t *testing.T, db *gorm.DB, currency string, principal decimal.Decimal, annualRate decimal.Decimal, postingDay int) *models.AccountBalance {
	account := &models.AccountBalance{
		ID:              uuid.New(),
		CurrencyCode:    currency,
		CalculationMode: models.CalculationModeFromInitialBalance,
		IsDeposit:       true,
		CurrentBalance:  principal,
		Deposit: &models.DepositInfo{
			PrincipalBalance:                principal,
			InterestRateAnnual:              annualRate,
			InterestPostingDay:              postingDay,
			CapitalizationEnabled:           false,
			InterestAccruedForCurrentPeriod: decimal.Zero,
			InterestAccruedNotCapitalized:   decimal.Zero,
		},
	}
	require.NoError(t, db.Create(account).Error, "Failed to create test deposit")
	return account
}
