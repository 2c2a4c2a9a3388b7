package exception

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode int

const (
	ErrCodeNoError                   ErrorCode = iota // 0
	ErrorCodeEntityNotFound                           // 1
	ErrorCodeFailedBindingData                        // 2
	ErrorCodeValidationFailed                         // 3
	ErrorCodeUnauthorized                             // 4
	ErrorCodeCodeRateLimitExceeded                    // 5
	ErrorCodeInvalidParameter                         // 6
	ErrorCodeMissingUserContext                       // 7
	ErrorCodeInternalServer                           // 8
	ErrorCodeInvalidStatusTransition                  // 9
	ErrorCodeComparisonLimitReached                   // 10
	ErrorCodeConflict                                 // 11
)

var (
	ErrFailedBindingData       = errors.New("failed to bind data")
	ErrValidationFailed        = errors.New("validation failed")
	ErrInvalidParameter        = errors.New("invalid parameter")
	ErrMissingUserContext      = errors.New("missing user context")
	ErrInternalServer          = errors.New("internal server error")
	ErrInvalidStatusTransition = errors.New("invalid claim status transition")
	ErrComparisonLimitReached  = errors.New("Maximum 3 products can be compared")
	ErrConflict                = errors.New("resource was modified concurrently")

	ErrUserNotFound          = errors.New("User not found")
	ErrClaimNotFound         = errors.New("Claim not found")
	ErrPolicyNotFound        = errors.New("Policy not found")
	ErrQuoteNotFound         = errors.New("Quote not found")
	ErrProductNotFound       = errors.New("Product not found")
	ErrPaymentMethodNotFound = errors.New("Payment method not found")
	ErrEmailAlreadyExisted   = errors.New("email already exists")
)

// ErrorWithContext attaches key-value pairs to an error before it is returned or logged.
//
// Example:
//
//	err := ErrorWithContext(ErrClaimNotFound, "claimID", "42", "operation", "progress")
//	// err.Error() will be: "claimID = 42 , operation = progress: Claim not found"
//
// An odd number of context arguments appends "missing ctx" as the last value.
func ErrorWithContext(err error, errorContext ...any) error {
	if ctx := formatKeyValuePairs(errorContext); ctx != "" {
		return fmt.Errorf("%s: %w", ctx, err)
	}
	return err
}

func formatKeyValuePairs(errorContext []any) string {
	if len(errorContext)%2 != 0 {
		errorContext = append(errorContext, "missing ctx")
	}
	pairs := make([]string, 0, len(errorContext)/2)
	for i := 0; i < len(errorContext); i += 2 {
		key := errorContext[i]
		value := errorContext[i+1]
		pairs = append(pairs, fmt.Sprintf("%v = %v", key, value))
	}
	return strings.Join(pairs, " , ")
}
