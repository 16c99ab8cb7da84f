package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is one failed field rule, reported with the field's JSON name
// so that the response matches the request body shape.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s fails the %s rule", v.Field, v.Rule)
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return Validator{
		validate: validate,
	}
}

// Check runs the schema declared on the struct tags of s.
// A nil result means the payload passed.
func (v Validator) Check(s any) []Violation {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns other error types for non-struct inputs,
		// which is a programming error on the caller
		panic(err)
	}

	violations := []Violation{}
	for _, fieldErr := range fieldErrs {
		rule := fieldErr.Tag()
		if param := fieldErr.Param(); param != "" {
			rule = fmt.Sprintf("%s=%s", rule, param)
		}

		violations = append(violations, Violation{
			Field: fieldErr.Field(),
			Rule:  rule,
		})
	}

	return violations
}

func Describe(violations []Violation) string {
	descriptions := []string{}
	for _, violation := range violations {
		descriptions = append(descriptions, violation.String())
	}

	return strings.Join(descriptions, ", ")
}
