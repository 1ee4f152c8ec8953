package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pennyledger/internal/config"
	"pennyledger/internal/dto"
	apperrors "pennyledger/internal/errors"
	"pennyledger/internal/ledger"
	"pennyledger/internal/models"
	"pennyledger/internal/repositories"
	"pennyledger/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InterestAccrualService accrues deposit interest one calendar day at a
// time and posts the accumulated amount on each deposit's posting day.
// Reconciliation is idempotent: running it any number of times for the same
// period accrues each day once and posts at most one transaction per month.
type InterestAccrualService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	coordinator     SaveCoordinatorInterface
	store           *ledger.Store
	cfg             config.AccrualConfig
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

func NewInterestAccrualService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	coordinator SaveCoordinatorInterface,
	store *ledger.Store,
	cfg config.AccrualConfig,
	metrics MetricsRecorderInterface,
) InterestAccrualServiceInterface {
	return &InterestAccrualService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		coordinator:     coordinator,
		store:           store,
		cfg:             cfg,
		metrics:         metrics,
		logger:          slog.Default(),
	}
}

// ReconcileDepositInterest catches the deposit up to now. Every day after
// LastInterestCalculationDate up to but excluding today accrues
// principal × rate/100 ÷ daysPerYear; when the loop crosses the posting day
// the accumulator is posted as an interest_accrual transaction, guarded by
// LastInterestPostingMonth and a durable lookup against already persisted
// postings.
func (s *InterestAccrualService) ReconcileDepositInterest(ctx context.Context, account *models.AccountBalance, now time.Time, onPosted PostingCallback) (*AccrualResult, error) {
	if !account.IsDeposit || account.Deposit == nil {
		return nil, apperrors.New(apperrors.AccrualNotDepositAccount,
			apperrors.WithOperation("reconcile_deposit_interest"))
	}

	startTime := time.Now()
	info := account.Deposit.Clone()
	today := truncateToDay(now)

	result := &AccrualResult{
		AccountID:       account.ID,
		InterestAccrued: decimal.Zero,
		PostedAmount:    decimal.Zero,
	}

	// A deposit that has never been reconciled starts accruing from today;
	// the first run only stamps the calculation date.
	if info.LastInterestCalculationDate == nil {
		yesterday := today.AddDate(0, 0, -1)
		info.LastInterestCalculationDate = &yesterday
	}

	day := truncateToDay(*info.LastInterestCalculationDate).AddDate(0, 0, 1)
	for ; day.Before(today); day = day.AddDate(0, 0, 1) {
		rate, applied := info.RateForDate(day)
		if !applied {
			s.logger.Warn("no rate effective on or before accrual day, using earliest known rate",
				slog.String("account_id", account.ID.String()),
				slog.String("day", day.Format(models.DateLayout)),
			)
		}

		daily := dailyInterest(info.PrincipalBalance, rate, s.daysPerYear())
		info.InterestAccruedForCurrentPeriod = info.InterestAccruedForCurrentPeriod.Add(daily)
		result.InterestAccrued = result.InterestAccrued.Add(daily)
		result.DaysAccrued++

		if s.isPostingDay(info, day) {
			posted, tx, err := s.postAccumulated(ctx, account, info, day)
			if err != nil {
				return nil, err
			}
			if posted {
				result.Posted = true
				result.PostedAmount = result.PostedAmount.Add(tx.Amount)
				result.PostingMonths = append(result.PostingMonths, models.MonthKey(day))
				// The posting transaction is committed at this point, so a
				// multi-month catch-up reports every posting, not just the last.
				if onPosted != nil {
					onPosted(tx)
				}
			}
		}

		stamp := day
		info.LastInterestCalculationDate = &stamp
	}

	if err := s.persistDeposit(ctx, account, info); err != nil {
		return nil, err
	}

	s.metrics.RecordProcessingTime("accrual.reconcile", time.Since(startTime))
	s.metrics.IncrementCounter("accrual.reconciled", map[string]string{
		"account_id": account.ID.String(),
	})

	return result, nil
}

// ReconcileAllDeposits runs reconciliation over every deposit account.
// Individual failures are logged and skipped so one broken deposit does not
// stall the rest.
func (s *InterestAccrualService) ReconcileAllDeposits(ctx context.Context, now time.Time) ([]AccrualResult, error) {
	deposits, err := s.accountRepo.GetDeposits()
	if err != nil {
		return nil, fmt.Errorf("failed to load deposit accounts: %w", err)
	}

	results := make([]AccrualResult, 0, len(deposits))
	for i := range deposits {
		account := &deposits[i]
		result, err := s.ReconcileDepositInterest(ctx, account, now, nil)
		if err != nil {
			s.logger.Error("deposit reconciliation failed",
				slog.String("account_id", account.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

// CalculateInterestToToday previews the accumulator as of now without
// persisting anything.
func (s *InterestAccrualService) CalculateInterestToToday(account *models.AccountBalance, now time.Time) (decimal.Decimal, error) {
	if !account.IsDeposit || account.Deposit == nil {
		return decimal.Zero, apperrors.New(apperrors.AccrualNotDepositAccount,
			apperrors.WithOperation("calculate_interest_to_today"))
	}

	info := account.Deposit
	accrued := info.InterestAccruedForCurrentPeriod
	if info.LastInterestCalculationDate == nil {
		return accrued, nil
	}

	today := truncateToDay(now)
	day := truncateToDay(*info.LastInterestCalculationDate).AddDate(0, 0, 1)
	for ; day.Before(today); day = day.AddDate(0, 0, 1) {
		rate, _ := info.RateForDate(day)
		accrued = accrued.Add(dailyInterest(info.PrincipalBalance, rate, s.daysPerYear()))
	}
	return accrued, nil
}

// AddRateChange records a rate change on the deposit's history, keeps the
// history sorted ascending by effective date, and refreshes the current
// rate to whichever entry governs today.
func (s *InterestAccrualService) AddRateChange(ctx context.Context, accountID uuid.UUID, change models.RateChange) error {
	if change.EffectiveFrom.IsZero() {
		return apperrors.New(apperrors.AccrualInvalidRateChange,
			apperrors.WithMessage("rate change requires an effective date"))
	}
	if change.AnnualRate.IsNegative() {
		return apperrors.New(apperrors.AccrualInvalidRateChange,
			apperrors.WithCause(models.ErrNegativeRate))
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if !account.IsDeposit || account.Deposit == nil {
		return apperrors.New(apperrors.AccrualNotDepositAccount,
			apperrors.WithOperation("add_rate_change"))
	}

	info := account.Deposit.Clone()
	info.RateHistory = append(info.RateHistory, change)
	info.SortRateHistory()
	if rate, applied := info.RateForDate(truncateToDay(time.Now())); applied {
		info.InterestRateAnnual = rate
	}

	return s.persistDeposit(ctx, account, info)
}

// AddRateChangeRequest accepts a rate change in request form: the payload
// runs through the validation layer before being parsed and applied.
func (s *InterestAccrualService) AddRateChangeRequest(ctx context.Context, accountID uuid.UUID, req dto.RateChangeRequest) error {
	if err := validation.GetValidator().Struct(req); err != nil {
		return apperrors.New(apperrors.AccrualInvalidRateChange, apperrors.WithCause(err))
	}

	change, err := req.ToModel()
	if err != nil {
		return apperrors.New(apperrors.AccrualInvalidRateChange, apperrors.WithCause(err))
	}
	return s.AddRateChange(ctx, accountID, change)
}

// NextPostingDate returns the next date interest will be posted for the
// deposit, clamping the posting day to the length of the month and skipping
// a month that has already been posted or whose day already passed.
func (s *InterestAccrualService) NextPostingDate(info *models.DepositInfo, now time.Time) time.Time {
	today := truncateToDay(now)
	year, month := today.Year(), today.Month()

	candidate := time.Date(year, month, s.clampedPostingDay(info, year, month), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) || info.HasPostedForMonth(models.MonthKey(today)) {
		next := today.AddDate(0, 1, 0)
		year, month = next.Year(), next.Month()
		candidate = time.Date(year, month, s.clampedPostingDay(info, year, month), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

func (s *InterestAccrualService) isPostingDay(info *models.DepositInfo, day time.Time) bool {
	if day.Day() != s.clampedPostingDay(info, day.Year(), day.Month()) {
		return false
	}
	return !info.HasPostedForMonth(models.MonthKey(day))
}

func (s *InterestAccrualService) clampedPostingDay(info *models.DepositInfo, year int, month time.Month) int {
	if info.InterestPostingDay == 0 {
		fallback := &models.DepositInfo{InterestPostingDay: s.cfg.DefaultPostingDay}
		return fallback.ClampedPostingDay(year, month)
	}
	return info.ClampedPostingDay(year, month)
}

// postAccumulated turns the current-period accumulator into a persisted
// interest_accrual transaction. The month is marked consumed even when the
// rounded amount is zero or an earlier run already persisted the posting.
func (s *InterestAccrualService) postAccumulated(ctx context.Context, account *models.AccountBalance, info *models.DepositInfo, day time.Time) (bool, *models.Transaction, error) {
	month := models.MonthKey(day)
	amount := info.InterestAccruedForCurrentPeriod.Round(2)

	consumeMonth := func() {
		info.InterestAccruedForCurrentPeriod = decimal.Zero
		info.LastInterestPostingMonth = month
	}

	if amount.IsZero() {
		consumeMonth()
		return false, nil, nil
	}

	exists, err := s.transactionRepo.InterestPostingExists(account.ID, month)
	if err != nil {
		return false, nil, err
	}
	// The month-range scan is the primary guard. The reference lookup is
	// the backstop for histories that were renumbered or re-imported with
	// shifted dates: the reference is derived from stable inputs only, so
	// it still matches when the posting row no longer falls in the month
	// range. It requires the re-derived amount to be identical, which holds
	// because a re-run recomputes the same accumulator.
	reference := models.InterestPostingReference(account.ID, month, amount, account.CurrencyCode)
	if !exists {
		if _, refErr := s.transactionRepo.GetByReference(reference); refErr == nil {
			exists = true
		}
	}
	if exists {
		s.logger.Info("interest posting already recorded, skipping",
			slog.String("account_id", account.ID.String()),
			slog.String("month", month),
		)
		consumeMonth()
		return false, nil, nil
	}

	posting := &models.Transaction{
		AccountID:    account.ID,
		Type:         models.TransactionTypeInterestAccrual,
		Date:         day.Format(models.DateLayout),
		Amount:       amount,
		CurrencyCode: account.CurrencyCode,
		Reference:    reference,
		Note:         fmt.Sprintf("Interest for %s", month),
	}

	saveName := fmt.Sprintf("interest-posting:%s:%s", account.ID, month)
	err = s.coordinator.PerformSave(ctx, saveName, func(tx *gorm.DB) error {
		return s.transactionRepo.CreateTx(tx, posting)
	})
	if err != nil {
		return false, nil, err
	}

	consumeMonth()
	applyPostingToDeposit(info, amount)

	s.metrics.IncrementCounter("accrual.posted", map[string]string{
		"account_id": account.ID.String(),
	})
	s.metrics.RecordGauge("accrual.posted_amount", amount.InexactFloat64(), nil)
	s.logger.Info("interest posted",
		slog.String("account_id", account.ID.String()),
		slog.String("month", month),
		slog.String("amount", amount.StringFixed(2)),
	)

	return true, posting, nil
}

// persistDeposit writes the updated deposit metadata through the save
// coordinator under optimistic locking and refreshes the in-memory ledger
// if the account is registered there.
func (s *InterestAccrualService) persistDeposit(ctx context.Context, account *models.AccountBalance, info *models.DepositInfo) error {
	account.Deposit = info

	saveName := fmt.Sprintf("deposit-update:%s", account.ID)
	err := s.coordinator.PerformSave(ctx, saveName, func(tx *gorm.DB) error {
		return s.accountRepo.UpdateWithOptimisticLock(tx, account)
	})
	if err != nil {
		return err
	}

	if s.store != nil {
		if storeErr := s.store.UpdateDepositInfo(account.ID, info); storeErr != nil {
			// Not registered with the ledger is fine for repository-only flows.
			s.logger.Debug("ledger not updated after deposit persist",
				slog.String("account_id", account.ID.String()),
				slog.String("reason", storeErr.Error()),
			)
		}
	}
	return nil
}

// applyPostingToDeposit credits the posted interest to principal for
// capitalizing deposits, otherwise to the non-capitalized bucket.
func applyPostingToDeposit(info *models.DepositInfo, amount decimal.Decimal) {
	if info.CapitalizationEnabled {
		info.PrincipalBalance = info.PrincipalBalance.Add(amount)
	} else {
		info.InterestAccruedNotCapitalized = info.InterestAccruedNotCapitalized.Add(amount)
	}
}

func (s *InterestAccrualService) daysPerYear() decimal.Decimal {
	days := s.cfg.DaysInYear
	if days <= 0 {
		days = 365
	}
	return decimal.NewFromInt(int64(days))
}

func dailyInterest(principal, annualRate, daysPerYear decimal.Decimal) decimal.Decimal {
	return principal.Mul(annualRate).Div(decimal.NewFromInt(100)).Div(daysPerYear)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
