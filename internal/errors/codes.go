package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountInvalidType   ErrorCode = "ACCOUNT_002"
	AccountTargetMissing ErrorCode = "ACCOUNT_003"
	AccountInUse         ErrorCode = "ACCOUNT_004"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound ErrorCode = "CATEGORY_001"
	CategoryInUse    ErrorCode = "CATEGORY_002"
	CategoryInvalid  ErrorCode = "CATEGORY_003"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionInvalidType   ErrorCode = "TRANSACTION_003"
	TransactionSameAccount   ErrorCode = "TRANSACTION_004"
)

// Recurring transaction error codes (RECURRING_*)
const (
	RecurringNotFound         ErrorCode = "RECURRING_001"
	RecurringInvalidFrequency ErrorCode = "RECURRING_002"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound  ErrorCode = "BUDGET_001"
	BudgetDuplicate ErrorCode = "BUDGET_002"
	BudgetInvalid   ErrorCode = "BUDGET_003"
)

// Goal error codes (GOAL_*)
const (
	GoalNotFound      ErrorCode = "GOAL_001"
	GoalInvalidStatus ErrorCode = "GOAL_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Account errors
	AccountNotFound:      "Account not found",
	AccountInvalidType:   "Invalid account type",
	AccountTargetMissing: "Transfer target account not found",
	AccountInUse:         "Account still has ledger entries",

	// Category errors
	CategoryNotFound: "Category not found",
	CategoryInUse:    "Category is referenced by transactions or subcategories",
	CategoryInvalid:  "Invalid category",

	// Transaction errors
	TransactionNotFound:      "Transaction not found",
	TransactionInvalidAmount: "Transaction amount must be positive",
	TransactionInvalidType:   "Invalid transaction type",
	TransactionSameAccount:   "Cannot transfer to the same account",

	// Recurring transaction errors
	RecurringNotFound:         "Recurring transaction not found",
	RecurringInvalidFrequency: "Invalid recurrence frequency",

	// Budget errors
	BudgetNotFound:  "Budget not found",
	BudgetDuplicate: "An active budget already exists for this category and month",
	BudgetInvalid:   "Invalid budget",

	// Goal errors
	GoalNotFound:      "Goal not found",
	GoalInvalidStatus: "Invalid goal status",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
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
