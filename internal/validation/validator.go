package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("frequency", validateFrequency)
	_ = v.RegisterValidation("goal_status", validateGoalStatus)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateAccountType validates that account type is one of the allowed types
func validateAccountType(fl validator.FieldLevel) bool {
	accountType := strings.ToLower(fl.Field().String())
	validTypes := map[string]bool{
		"checking":    true,
		"savings":     true,
		"credit_card": true,
		"cash":        true,
		"investment":  true,
		"loan":        true,
		"other":       true,
	}
	return validTypes[accountType]
}

// validateTransactionType validates that transaction type is one of the allowed types
func validateTransactionType(fl validator.FieldLevel) bool {
	txType := strings.ToLower(fl.Field().String())
	validTypes := map[string]bool{
		"income":   true,
		"expense":  true,
		"transfer": true,
	}
	return validTypes[txType]
}

// validateCategoryType validates that category type is income or expense
func validateCategoryType(fl validator.FieldLevel) bool {
	categoryType := strings.ToLower(fl.Field().String())
	return categoryType == "income" || categoryType == "expense"
}

// validateFrequency validates that a recurrence frequency is one of the allowed values
func validateFrequency(fl validator.FieldLevel) bool {
	frequency := strings.ToLower(fl.Field().String())
	validFrequencies := map[string]bool{
		"daily":     true,
		"weekly":    true,
		"biweekly":  true,
		"monthly":   true,
		"quarterly": true,
		"yearly":    true,
	}
	return validFrequencies[frequency]
}

// validateGoalStatus validates that a goal status is one of the allowed values
func validateGoalStatus(fl validator.FieldLevel) bool {
	status := strings.ToLower(fl.Field().String())
	validStatuses := map[string]bool{
		"in_progress": true,
		"completed":   true,
		"cancelled":   true,
		"on_hold":     true,
	}
	return validStatuses[status]
}
