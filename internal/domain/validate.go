package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateNewItem checks the shape of a capture request. Kind and status
// are checked against the taxonomy; field formats use struct tags.
func ValidateNewItem(in NewItem) error {
	if _, ok := validStatuses[in.Kind]; !ok {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", in.Kind)}
	}
	if in.Status != "" && !IsValid(in.Kind, in.Status) {
		return &InvalidTransitionError{Kind: in.Kind, Status: in.Status}
	}
	return translate(validatorInstance().Struct(in))
}

// ValidatePatch checks field formats of a requested patch
func ValidatePatch(p Patch) error {
	if p.Kind != nil {
		if _, ok := validStatuses[*p.Kind]; !ok {
			return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", *p.Kind)}
		}
	}

	// validator does not look through a non-nil pointer for omitempty, so
	// each set field is checked on its value and "" still clears.
	v := validatorInstance()
	checks := []struct {
		field string
		set   bool
		value func() any
		tag   string
	}{
		{"title", p.Title != nil, func() any { return *p.Title }, "max=500"},
		{"body", p.Body != nil, func() any { return *p.Body }, "max=100000"},
		{"priority", p.Priority != nil, func() any { return string(*p.Priority) }, "omitempty,oneof=low medium high"},
		{"due", p.Due != nil, func() any { return *p.Due }, "omitempty,datetime=2006-01-02"},
		{"tags", p.Tags != nil, func() any { return *p.Tags }, "max=50,dive,required,max=64"},
		{"aliases", p.Aliases != nil, func() any { return *p.Aliases }, "max=50,dive,required,max=200"},
	}
	for _, c := range checks {
		if !c.set {
			continue
		}
		if err := v.Var(c.value(), c.tag); err != nil {
			return translateVar(c.field, err)
		}
	}
	return nil
}

// translateVar converts a single-value validator failure into a ValidationError
func translateVar(field string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: field, Message: err.Error()}
	}
	return &ValidationError{Field: field, Message: describe(verrs[0])}
}

// translate converts validator failures into a ValidationError for the first field
func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "item", Message: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{
		Field:   fieldName(fe.StructField()),
		Message: describe(fe),
	}
}

func fieldName(structField string) string {
	switch structField {
	case "LinkedRef":
		return "linkedRef"
	case "ExternalSource":
		return "externalSource"
	}
	// Tags[3] -> tags
	if i := strings.IndexByte(structField, '['); i >= 0 {
		structField = structField[:i]
	}
	return strings.ToLower(structField)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return fmt.Sprintf("%v is not a date (expected YYYY-MM-DD)", fe.Value())
	case "oneof":
		return fmt.Sprintf("%v is not one of: %s", fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("exceeds maximum of %s", fe.Param())
	case "required":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
