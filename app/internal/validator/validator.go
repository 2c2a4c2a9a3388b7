package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	validatorUtil "backend/insurance-platform/app/pkg/util/validator"
)

type IValidator interface {
	Register() (validator.Func, string)
}

type Validators struct {
	v          *validator.Validate
	validators []IValidator
}

func NewValidators(res runtime.Resource) *Validators {
	validators := []IValidator{
		NewNotBlankValidator(),
		NewIncidentDateValidator(time.Now),
	}

	v := &Validators{
		v:          validator.New(),
		validators: validators,
	}
	v.v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.v.RegisterTagNameFunc(jsonFieldName)

	// Setup all validators
	if err := v.Setup(); err != nil {
		panic(err)
	}

	return v
}

func (vl *Validators) Setup() error {
	for _, v := range vl.validators {
		fnc, tag := v.Register()
		if err := vl.v.RegisterValidation(tag, fnc); err != nil {
			return err
		}
	}
	return nil
}

func (vl *Validators) Validate(requestData any) error {
	err := vl.v.Struct(requestData)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	return echo.NewHTTPError(
		http.StatusBadRequest,
		response.GeneralResponse[any]{
			Code:         int(exception.ErrorCodeValidationFailed),
			Message:      exception.ErrValidationFailed.Error(),
			ErrorDetails: getDetails(validationErrs),
		}).WithInternal(err)
}

// decimalValue lets numeric tags such as gt=0 apply to decimal amounts.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

func getDetails(validationErrs validator.ValidationErrors) (out []response.ErrorDetail) {
	for _, vErr := range validationErrs {
		out = append(out, response.ErrorDetail{
			Key:     vErr.Namespace(),
			Field:   vErr.Field(),
			Message: message(vErr),
		})
	}

	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "datetime":
		return "must use the " + fe.Param() + " layout"
	case "incident_date":
		return fmt.Sprintf("must be a YYYY-MM-DD date that is not in the future nor more than %d year(s) ago", validatorUtil.MaxIncidentAge)
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

var _ echo.Validator = &Validators{}
