package services

import (
	"time"

	"pennyledger/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionGenerator produces realistic dev and test data in the shape
// the ledger consumes.
type transactionGenerator struct {
	faker *gofakeit.Faker
}

// NewTransactionGenerator creates a generator seeded from entropy
func NewTransactionGenerator() TransactionGeneratorInterface {
	return &transactionGenerator{
		faker: gofakeit.New(0),
	}
}

// NewSeededTransactionGenerator creates a deterministic generator for tests
func NewSeededTransactionGenerator(seed uint64) TransactionGeneratorInterface {
	return &transactionGenerator{
		faker: gofakeit.New(seed),
	}
}

// GenerateHistory produces count transactions for the account spread across
// [startDate, endDate], roughly 60% expenses and 40% income.
func (g *transactionGenerator) GenerateHistory(accountID uuid.UUID, currency string, startDate, endDate time.Time, count int) []models.Transaction {
	txs := make([]models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		date := g.GenerateDate(startDate, endDate)
		if g.faker.Float64Range(0, 1) < 0.6 {
			txs = append(txs, g.GenerateExpense(accountID, currency, date))
		} else {
			txs = append(txs, g.GenerateIncome(accountID, currency, date))
		}
	}
	return txs
}

func (g *transactionGenerator) GenerateIncome(accountID uuid.UUID, currency, date string) models.Transaction {
	return models.Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         models.TransactionTypeIncome,
		Date:         date,
		Amount:       g.GenerateAmount(models.TransactionTypeIncome),
		CurrencyCode: currency,
		Note:         g.faker.Company(),
	}
}

func (g *transactionGenerator) GenerateExpense(accountID uuid.UUID, currency, date string) models.Transaction {
	return models.Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         models.TransactionTypeExpense,
		Date:         date,
		Amount:       g.GenerateAmount(models.TransactionTypeExpense),
		CurrencyCode: currency,
		Note:         g.faker.ProductName(),
	}
}

func (g *transactionGenerator) GenerateTransfer(sourceID, targetID uuid.UUID, currency, date string) models.Transaction {
	return models.Transaction{
		ID:              uuid.New(),
		AccountID:       sourceID,
		TargetAccountID: &targetID,
		Type:            models.TransactionTypeTransfer,
		Date:            date,
		Amount:          g.GenerateAmount(models.TransactionTypeTransfer),
		CurrencyCode:    currency,
		Note:            g.faker.Sentence(4),
	}
}

// GenerateAmount picks an amount plausible for the transaction type,
// rounded to cents.
func (g *transactionGenerator) GenerateAmount(txType string) decimal.Decimal {
	var value float64
	switch txType {
	case models.TransactionTypeIncome:
		value = g.faker.Float64Range(500, 8000)
	case models.TransactionTypeTransfer:
		value = g.faker.Float64Range(50, 2000)
	default:
		value = g.faker.Float64Range(1, 400)
	}
	return decimal.NewFromFloat(value).Round(2)
}

// GenerateDate picks a calendar day between startDate and endDate inclusive
func (g *transactionGenerator) GenerateDate(startDate, endDate time.Time) string {
	return g.faker.DateRange(startDate, endDate).Format(models.DateLayout)
}
