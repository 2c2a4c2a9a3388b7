package validator

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/pkg/util"
)

const (
	MinClaimDescriptionLength = 20
	// Claims may be filed for incidents at most this long ago
	MaxIncidentAge = 1 // years
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   fieldName,
			Message: "is required",
		}
	}
	return nil
}

func ValidateClaimDescription(description string) error {
	if err := ValidateRequiredString(description, "description"); err != nil {
		return err
	}
	if len([]rune(strings.TrimSpace(description))) < MinClaimDescriptionLength {
		return ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("must be at least %d characters", MinClaimDescriptionLength),
		}
	}
	return nil
}

func ValidatePositiveAmount(amount decimal.Decimal, fieldName string) error {
	if !amount.IsPositive() {
		return ValidationError{
			Field:   fieldName,
			Message: "must be greater than 0",
		}
	}
	return nil
}

// ValidateIncidentDate checks that an incident happened neither after now nor
// more than MaxIncidentAge years before it. Only calendar days are compared.
func ValidateIncidentDate(incident, now time.Time) error {
	day := util.TruncateToDay(incident)
	today := util.TruncateToDay(now.In(incident.Location()))

	if day.After(today) {
		return ValidationError{
			Field:   "incident_date",
			Message: "cannot be in the future",
		}
	}
	if day.Before(today.AddDate(-MaxIncidentAge, 0, 0)) {
		return ValidationError{
			Field:   "incident_date",
			Message: "cannot be more than 1 year ago",
		}
	}
	return nil
}

// IsDomainAllowed matches a host against an allow list of exact hosts,
// "*.example.com" / ".example.com" suffix rules or full origins.
func IsDomainAllowed(domain string, allowed []string) bool {
	if domain == "" || len(allowed) == 0 {
		return false
	}
	d := strings.ToLower(strings.TrimSpace(domain))
	for _, raw := range allowed {
		a := strings.TrimSpace(raw)
		if a == "" {
			continue
		}
		if a == "*" {
			return true
		}
		if hasScheme(a) {
			if u, err := url.Parse(a); err == nil {
				a = u.Hostname()
			}
		}
		a = strings.ToLower(a)

		if suffix, ok := wildcardSuffix(a); ok {
			if d == suffix || strings.HasSuffix(d, "."+suffix) {
				return true
			}
			continue
		}
		if d == a {
			return true
		}
	}
	return false
}

// IsOriginAllowed extracts the host of a browser Origin header and checks it with IsDomainAllowed.
func IsOriginAllowed(origin string, allowed []string) bool {
	host := origin
	if hasScheme(origin) {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host = u.Hostname()
	}
	return IsDomainAllowed(host, allowed)
}

func wildcardSuffix(rule string) (string, bool) {
	switch {
	case strings.HasPrefix(rule, "*."):
		return strings.TrimPrefix(rule, "*."), true
	case strings.HasPrefix(rule, "."):
		return strings.TrimPrefix(rule, "."), true
	default:
		return "", false
	}
}

func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for j := 0; j < i; j++ {
		c := s[j]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}
