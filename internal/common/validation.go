package common

import (
	"fmt"
	"time"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// MaxZoneID is the highest supply-zone number published by the operator.
const MaxZoneID = 54

// ValidateZone checks a supply-zone identifier.
func ValidateZone(zone int) error {
	if zone < 1 || zone > MaxZoneID {
		return ValidationError{Field: "zone", Value: zone, Message: fmt.Sprintf("must be between 1 and %d", MaxZoneID)}
	}
	return nil
}

// ValidateDateRange checks that from..to is a sane, non-future window.
func ValidateDateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return ValidationError{Field: "date_range", Value: nil, Message: "both from and to are required"}
	}
	if to.Before(from) {
		return ValidationError{Field: "date_range", Value: fmt.Sprintf("%s..%s", from.Format("2006-01-02"), to.Format("2006-01-02")), Message: "to must not precede from"}
	}
	if from.After(time.Now().UTC()) {
		return ValidationError{Field: "date_range", Value: from.Format("2006-01-02"), Message: "from must not be in the future"}
	}
	return nil
}
