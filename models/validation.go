package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("decimal_gt", compareDecimal(decimal.Decimal.GreaterThan)) //nolint:errcheck
	v.RegisterValidation("decimal_lt", compareDecimal(decimal.Decimal.LessThan))    //nolint:errcheck
	v.RegisterStructValidation(requirePresent, ProductFields{})

	return v
}

// compareDecimal builds a rule that holds when cmp(field, param) is true.
func compareDecimal(cmp func(d, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		param, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, param)
	}
}

// requirePresent reports members a decoded product body left out. It runs
// after the field rules, so "required" replaces their message.
func requirePresent(sl validator.StructLevel) {
	f := sl.Current().Interface().(ProductFields)
	if f.absent&absentCategoryID != 0 {
		sl.ReportError(f.CategoryID, "categoria_id", "CategoryID", "required", "")
	}
	if f.absent&absentPrice != 0 {
		sl.ReportError(f.Price, "precio", "Price", "required", "")
	}
	if f.absent&absentStock != 0 {
		sl.ReportError(f.Stock, "stock", "Stock", "required", "")
	}
}

// ValidationError reports request fields that violate their declared
// constraints. It is produced before any database access.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks v against the validate tags of its fields.
// It returns a *ValidationError when any constraint fails.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "decimal_gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "decimal_lt":
		return "ensure this value fits in 20 digits with 2 decimal places"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// Normalize rounds the price to the two decimal places it is stored with.
func (f *ProductFields) Normalize() {
	f.Price = f.Price.Round(2)
}
