package calc

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pennyledger/internal/models"
)

var testCutoff = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

func newAccount(currency string, initial float64) *models.AccountBalance {
	acct := &models.AccountBalance{
		ID:              uuid.New(),
		CurrencyCode:    currency,
		CalculationMode: models.CalculationModeFromInitialBalance,
	}
	acct.SetInitialBalance(decimal.NewFromFloat(initial))
	return acct
}

func income(accountID uuid.UUID, date string, amount float64, currency string) models.Transaction {
	return models.Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         models.TransactionTypeIncome,
		Date:         date,
		Amount:       decimal.NewFromFloat(amount),
		CurrencyCode: currency,
	}
}

func expense(accountID uuid.UUID, date string, amount float64, currency string) models.Transaction {
	tx := income(accountID, date, amount, currency)
	tx.Type = models.TransactionTypeExpense
	return tx
}

func transfer(sourceID, targetID uuid.UUID, date string, amount float64, currency string) models.Transaction {
	return models.Transaction{
		ID:              uuid.New(),
		AccountID:       sourceID,
		TargetAccountID: &targetID,
		Type:            models.TransactionTypeTransfer,
		Date:            date,
		Amount:          decimal.NewFromFloat(amount),
		CurrencyCode:    currency,
	}
}

// Scenario A from the product requirements: 1000 + 500 - 200 + 300 - 100 = 1500.
func TestCalculateBalance_IncomeExpenseFold(t *testing.T) {
	acct := newAccount("USD", 1000)
	txs := []models.Transaction{
		income(acct.ID, "2026-01-05", 500, "USD"),
		expense(acct.ID, "2026-01-10", 200, "USD"),
		income(acct.ID, "2026-01-15", 300, "USD"),
		expense(acct.ID, "2026-01-20", 100, "USD"),
	}

	res := CalculateBalance(acct, txs, testCutoff, nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(1500)), "got %s", res.Balance)
	assert.False(t, res.ConversionIssue)
	assert.Zero(t, res.SkippedTransactions)
}

func TestCalculateBalance_PreserveImportedReturnsCurrent(t *testing.T) {
	acct := &models.AccountBalance{
		ID:              uuid.New(),
		CurrencyCode:    "USD",
		CalculationMode: models.CalculationModePreserveImported,
		CurrentBalance:  decimal.NewFromFloat(4321.09),
	}
	// History must be ignored entirely for imported accounts
	txs := []models.Transaction{income(acct.ID, "2026-01-05", 99999, "USD")}

	res := CalculateBalance(acct, txs, testCutoff, nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromFloat(4321.09)))
}

func TestCalculateBalance_CutoffExcludesFutureTransactions(t *testing.T) {
	acct := newAccount("USD", 100)
	txs := []models.Transaction{
		income(acct.ID, "2026-06-01", 50, "USD"),
		income(acct.ID, "2027-01-01", 1000, "USD"), // after cutoff
	}

	res := CalculateBalance(acct, txs, testCutoff, nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(150)))
}

func TestCalculateBalance_SkipsUnparsableDates(t *testing.T) {
	acct := newAccount("USD", 100)
	bad := income(acct.ID, "not-a-date", 500, "USD")
	txs := []models.Transaction{
		bad,
		income(acct.ID, "2026-06-01", 50, "USD"),
	}

	res := CalculateBalance(acct, txs, testCutoff, nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(150)), "bad-date transaction must be excluded, not fatal")
	assert.Equal(t, 1, res.SkippedTransactions)
}

// Scenario D: transfer 200 USD from A to B (EUR) with precomputed
// ConvertedAmount 180 debits A by exactly 200 and credits B by exactly 180.
func TestCalculateBalance_TransferWithPrecomputedConversion(t *testing.T) {
	a := newAccount("USD", 1000)
	b := newAccount("EUR", 1000)

	tx := transfer(a.ID, b.ID, "2026-02-01", 200, "USD")
	tx.ConvertedAmount = decimal.NullDecimal{Decimal: decimal.NewFromInt(180), Valid: true}
	txs := []models.Transaction{tx}

	// A re-conversion here would be a bug, so make any convert call explode the amounts.
	poison := func(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
		return amount.Mul(decimal.NewFromInt(1000)), true
	}

	resA := CalculateBalance(a, txs, testCutoff, poison)
	resB := CalculateBalance(b, txs, testCutoff, poison)

	assert.True(t, resA.Balance.Equal(decimal.NewFromInt(800)), "source debited by nominal amount, got %s", resA.Balance)
	assert.True(t, resB.Balance.Equal(decimal.NewFromInt(1180)), "target credited by converted amount, got %s", resB.Balance)
}

func TestCalculateBalance_TransferTargetAmountWins(t *testing.T) {
	a := newAccount("USD", 500)
	b := newAccount("GBP", 0)

	tx := transfer(a.ID, b.ID, "2026-02-01", 100, "USD")
	tx.ConvertedAmount = decimal.NullDecimal{Decimal: decimal.NewFromInt(90), Valid: true}
	tx.TargetAmount = decimal.NullDecimal{Decimal: decimal.NewFromInt(79), Valid: true}

	resB := CalculateBalance(b, []models.Transaction{tx}, testCutoff, nil)
	assert.True(t, resB.Balance.Equal(decimal.NewFromInt(79)))
}

func TestCalculateBalance_ConversionFallback(t *testing.T) {
	acct := newAccount("USD", 0)
	txs := []models.Transaction{income(acct.ID, "2026-03-01", 100, "EUR")}

	// Conversion available
	res := CalculateBalance(acct, txs, testCutoff, func(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
		require.Equal(t, "EUR", from)
		require.Equal(t, "USD", to)
		return amount.Mul(decimal.NewFromFloat(1.1)), true
	})
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(110)))
	assert.False(t, res.ConversionIssue)

	// Conversion unavailable: raw amount plus flag, never an error
	res = CalculateBalance(acct, txs, testCutoff, func(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
		return decimal.Zero, false
	})
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.ConversionIssue)
}

func TestCalculateBalance_DepositKindsExcludedFromFold(t *testing.T) {
	acct := newAccount("USD", 1000)
	topUp := models.Transaction{
		ID:           uuid.New(),
		AccountID:    acct.ID,
		Type:         models.TransactionTypeDepositTopUp,
		Date:         "2026-01-02",
		Amount:       decimal.NewFromInt(500),
		CurrencyCode: "USD",
	}
	accrual := topUp
	accrual.ID = uuid.New()
	accrual.Type = models.TransactionTypeInterestAccrual

	res := CalculateBalance(acct, []models.Transaction{topUp, accrual}, testCutoff, nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(1000)), "deposit kinds mutate deposit fields, not the fold")
}

func TestCalculateBalance_DepositAccountUsesDepositFormula(t *testing.T) {
	acct := &models.AccountBalance{
		ID:              uuid.New(),
		CurrencyCode:    "USD",
		CalculationMode: models.CalculationModeFromInitialBalance,
		IsDeposit:       true,
		Deposit: &models.DepositInfo{
			PrincipalBalance:              decimal.NewFromInt(10000),
			InterestAccruedNotCapitalized: decimal.NewFromFloat(12.34),
			InterestPostingDay:            1,
		},
	}

	res := CalculateBalance(acct, nil, testCutoff, nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromFloat(10012.34)))
}

func TestCalculateInitialBalance_SolvesForStartingPoint(t *testing.T) {
	accountID := uuid.New()
	txs := []models.Transaction{
		income(accountID, "2026-01-05", 500, "USD"),
		expense(accountID, "2026-01-10", 200, "USD"),
	}

	res := CalculateInitialBalance(decimal.NewFromInt(1300), txs, accountID, "USD", nil)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(1000)))

	// Folding the derived initial balance back over the history must
	// reproduce the observed current balance.
	acct := &models.AccountBalance{
		ID:              accountID,
		CurrencyCode:    "USD",
		CalculationMode: models.CalculationModeFromInitialBalance,
	}
	acct.SetInitialBalance(res.Balance)
	check := CalculateBalance(acct, txs, testCutoff, nil)
	assert.True(t, check.Balance.Equal(decimal.NewFromInt(1300)))
}

func TestCalculateDepositBalance(t *testing.T) {
	info := &models.DepositInfo{
		PrincipalBalance:              decimal.NewFromInt(10000),
		InterestAccruedNotCapitalized: decimal.NewFromFloat(41.10),
		InterestPostingDay:            1,
	}

	assert.True(t, CalculateDepositBalance(info).Equal(decimal.NewFromFloat(10041.10)))

	info.CapitalizationEnabled = true
	assert.True(t, CalculateDepositBalance(info).Equal(decimal.NewFromInt(10000)),
		"capitalizing deposits carry interest inside the principal")
}

func TestApplyTransactionToDeposit_TopUp(t *testing.T) {
	info := &models.DepositInfo{PrincipalBalance: decimal.NewFromInt(1000), InterestPostingDay: 1}
	tx := &models.Transaction{Type: models.TransactionTypeDepositTopUp, Amount: decimal.NewFromInt(250)}

	ApplyTransactionToDeposit(tx, info, true)
	assert.True(t, info.PrincipalBalance.Equal(decimal.NewFromInt(1250)))
}

func TestApplyTransactionToDeposit_WithdrawalDrawsInterestFirst(t *testing.T) {
	info := &models.DepositInfo{
		PrincipalBalance:              decimal.NewFromInt(1000),
		InterestAccruedNotCapitalized: decimal.NewFromInt(30),
		InterestPostingDay:            1,
	}
	tx := &models.Transaction{Type: models.TransactionTypeDepositWithdrawal, Amount: decimal.NewFromInt(100)}

	ApplyTransactionToDeposit(tx, info, true)
	assert.True(t, info.InterestAccruedNotCapitalized.IsZero(), "accrued interest drained first")
	assert.True(t, info.PrincipalBalance.Equal(decimal.NewFromInt(930)))
}

func TestApplyTransactionToDeposit_SmallWithdrawalLeavesPrincipal(t *testing.T) {
	info := &models.DepositInfo{
		PrincipalBalance:              decimal.NewFromInt(1000),
		InterestAccruedNotCapitalized: decimal.NewFromInt(50),
		InterestPostingDay:            1,
	}
	tx := &models.Transaction{Type: models.TransactionTypeDepositWithdrawal, Amount: decimal.NewFromInt(20)}

	ApplyTransactionToDeposit(tx, info, true)
	assert.True(t, info.InterestAccruedNotCapitalized.Equal(decimal.NewFromInt(30)))
	assert.True(t, info.PrincipalBalance.Equal(decimal.NewFromInt(1000)))
}

func TestApplyTransactionToDeposit_InterestAccrual(t *testing.T) {
	tx := &models.Transaction{Type: models.TransactionTypeInterestAccrual, Amount: decimal.NewFromFloat(13.70)}

	capitalizing := &models.DepositInfo{
		PrincipalBalance:      decimal.NewFromInt(1000),
		CapitalizationEnabled: true,
		InterestPostingDay:    1,
	}
	ApplyTransactionToDeposit(tx, capitalizing, true)
	assert.True(t, capitalizing.PrincipalBalance.Equal(decimal.NewFromFloat(1013.70)))

	accumulating := &models.DepositInfo{
		PrincipalBalance:   decimal.NewFromInt(1000),
		InterestPostingDay: 1,
	}
	ApplyTransactionToDeposit(tx, accumulating, true)
	assert.True(t, accumulating.PrincipalBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, accumulating.InterestAccruedNotCapitalized.Equal(decimal.NewFromFloat(13.70)))
}
