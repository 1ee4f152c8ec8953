package errors

// ErrorCode represents a standardized error code used throughout the subsystem
type ErrorCode string

// Save coordinator error codes (SAVE_*)
const (
	SaveInProgress  ErrorCode = "SAVE_001"
	SaveFailed      ErrorCode = "SAVE_002"
	SaveInvalidName ErrorCode = "SAVE_003"
	SaveEmptyBatch  ErrorCode = "SAVE_004"
)

// Calculation error codes (CALC_*)
const (
	CalcConversionUnavailable ErrorCode = "CALC_001"
	CalcDateParseFailure      ErrorCode = "CALC_002"
	CalcUnknownTransaction    ErrorCode = "CALC_003"
	CalcNotDeposit            ErrorCode = "CALC_004"
)

// Ledger error codes (LEDGER_*)
const (
	LedgerAccountNotRegistered ErrorCode = "LEDGER_001"
	LedgerDuplicateAccount     ErrorCode = "LEDGER_002"
	LedgerNoInitialBalance     ErrorCode = "LEDGER_003"
	LedgerInvalidSnapshot      ErrorCode = "LEDGER_004"
)

// Interest accrual error codes (ACCRUAL_*)
const (
	AccrualInvalidPostingDay ErrorCode = "ACCRUAL_001"
	AccrualInvalidRateChange ErrorCode = "ACCRUAL_002"
	AccrualNotDepositAccount ErrorCode = "ACCRUAL_003"
	AccrualPostingDuplicate  ErrorCode = "ACCRUAL_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError ErrorCode = "SYSTEM_001"
	SystemDatabaseError ErrorCode = "SYSTEM_002"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Save coordinator errors
	SaveInProgress:  "A save operation with this name is already in progress",
	SaveFailed:      "Save operation failed after conflict retry",
	SaveInvalidName: "Save operation name must not be empty",
	SaveEmptyBatch:  "Batch save requires at least one operation",

	// Calculation errors
	CalcConversionUnavailable: "Currency conversion unavailable, raw amount used",
	CalcDateParseFailure:      "Transaction date could not be parsed",
	CalcUnknownTransaction:    "Unknown transaction type",
	CalcNotDeposit:            "Account does not carry deposit metadata",

	// Ledger errors
	LedgerAccountNotRegistered: "Account is not registered in the balance ledger",
	LedgerDuplicateAccount:     "Account is already registered in the balance ledger",
	LedgerNoInitialBalance:     "Account has no initial balance recorded",
	LedgerInvalidSnapshot:      "Ledger snapshot is invalid or empty",

	// Interest accrual errors
	AccrualInvalidPostingDay: "Interest posting day must be between 1 and 31",
	AccrualInvalidRateChange: "Rate change is invalid",
	AccrualNotDepositAccount: "Interest accrual requires a deposit account",
	AccrualPostingDuplicate:  "An interest posting for this month already exists",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	// System errors
	SystemInternalError: "An unexpected error occurred",
	SystemDatabaseError: "Database error",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
