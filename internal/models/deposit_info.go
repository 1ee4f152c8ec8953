package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPostingDay = errors.New("interest posting day must be between 1 and 31")
	ErrNegativeRate      = errors.New("annual interest rate cannot be negative")
	ErrEmptyRateHistory  = errors.New("rate history entry requires an effective date")
)

// RateChange records an annual interest rate taking effect on a given day.
// History is kept sorted ascending by EffectiveFrom; the authoritative rate
// for a day is the latest entry whose EffectiveFrom does not postdate it.
type RateChange struct {
	EffectiveFrom time.Time       `json:"effective_from"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Note          string          `json:"note,omitempty"`
}

// DepositInfo carries the interest-bearing metadata of a deposit account.
// It is persisted as a JSON column embedded in the account row.
type DepositInfo struct {
	PrincipalBalance                decimal.Decimal `json:"principal_balance"`
	CapitalizationEnabled           bool            `json:"capitalization_enabled"`
	InterestRateAnnual              decimal.Decimal `json:"interest_rate_annual"`
	RateHistory                     []RateChange    `json:"rate_history,omitempty"`
	InterestAccruedForCurrentPeriod decimal.Decimal `json:"interest_accrued_for_current_period"`
	InterestAccruedNotCapitalized   decimal.Decimal `json:"interest_accrued_not_capitalized"`
	LastInterestCalculationDate     *time.Time      `json:"last_interest_calculation_date,omitempty"`
	LastInterestPostingMonth        string          `json:"last_interest_posting_month,omitempty"`
	InterestPostingDay              int             `json:"interest_posting_day"`
}

// Validate validates the deposit metadata
func (d *DepositInfo) Validate() error {
	if d.InterestPostingDay < 1 || d.InterestPostingDay > 31 {
		return ErrInvalidPostingDay
	}

	if d.InterestRateAnnual.IsNegative() {
		return ErrNegativeRate
	}

	for _, rc := range d.RateHistory {
		if rc.EffectiveFrom.IsZero() {
			return ErrEmptyRateHistory
		}
		if rc.AnnualRate.IsNegative() {
			return ErrNegativeRate
		}
	}

	return nil
}

// SortRateHistory re-sorts the rate history ascending by effective date.
// Equal dates keep their insertion order, so the later insertion wins a
// latest-entry lookup.
func (d *DepositInfo) SortRateHistory() {
	sort.SliceStable(d.RateHistory, func(i, j int) bool {
		return d.RateHistory[i].EffectiveFrom.Before(d.RateHistory[j].EffectiveFrom)
	})
}

// RateForDate returns the annual rate applicable on the given day: the
// latest history entry with EffectiveFrom <= day. When no entry qualifies
// the first entry is used as a fallback and applied=false is returned so
// callers can flag it (the fallback rate may postdate the day). An empty
// history yields the current rate field.
func (d *DepositInfo) RateForDate(day time.Time) (rate decimal.Decimal, applied bool) {
	if len(d.RateHistory) == 0 {
		return d.InterestRateAnnual, true
	}

	for i := len(d.RateHistory) - 1; i >= 0; i-- {
		if !d.RateHistory[i].EffectiveFrom.After(day) {
			return d.RateHistory[i].AnnualRate, true
		}
	}

	return d.RateHistory[0].AnnualRate, false
}

// ClampedPostingDay returns the configured posting day clamped to the last
// valid day of the given month (e.g. day 31 posts on Feb 28).
func (d *DepositInfo) ClampedPostingDay(year int, month time.Month) int {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d.InterestPostingDay > lastDay {
		return lastDay
	}
	return d.InterestPostingDay
}

// HasPostedForMonth reports whether an interest posting was already
// recorded for the given month key
func (d *DepositInfo) HasPostedForMonth(month string) bool {
	return d.LastInterestPostingMonth == month
}

// Clone returns a deep copy, including the rate history slice
func (d *DepositInfo) Clone() *DepositInfo {
	if d == nil {
		return nil
	}

	clone := *d
	if d.RateHistory != nil {
		clone.RateHistory = make([]RateChange, len(d.RateHistory))
		copy(clone.RateHistory, d.RateHistory)
	}
	if d.LastInterestCalculationDate != nil {
		lastCalc := *d.LastInterestCalculationDate
		clone.LastInterestCalculationDate = &lastCalc
	}
	return &clone
}

// Value implements driver.Valuer interface
func (d *DepositInfo) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	// Return string for SQLite compatibility
	return string(bytes), nil
}

func (d *DepositInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DepositInfo", value)
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, d)
}
