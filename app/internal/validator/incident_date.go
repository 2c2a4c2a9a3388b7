package validator

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	validatorUtil "backend/insurance-platform/app/pkg/util/validator"
)

const incidentDateLayout = "2006-01-02"

// IncidentDateValidator accepts YYYY-MM-DD dates that are not in the future
// and at most validatorUtil.MaxIncidentAge years old.
type IncidentDateValidator struct {
	now func() time.Time
}

func NewIncidentDateValidator(now func() time.Time) IValidator {
	return &IncidentDateValidator{now: now}
}

func (v *IncidentDateValidator) Register() (validator.Func, string) {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		incident, err := time.Parse(incidentDateLayout, field.String())
		if err != nil {
			return false
		}
		return validatorUtil.ValidateIncidentDate(incident, v.now().UTC()) == nil
	}, "incident_date"
}
