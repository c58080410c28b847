package schema

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	publicschema "github.com/goliatone/go-editor/schema"
)

// ValidateField evaluates every declared rule for a field and returns the
// accumulated failure messages.
//
// Evaluation order:
//   - required + empty short-circuits with a single "required" message;
//   - empty optional values skip every remaining rule;
//   - otherwise all rules run and every failing message is collected so
//     callers see every problem at once.
func ValidateField(value any, field publicschema.Field) []string {
	if isEmpty(value) {
		if field.Required {
			return []string{requiredMessage}
		}
		return nil
	}

	var errs []string
	if msg := validateShape(value, field.Kind); msg != "" {
		errs = append(errs, msg)
	}
	errs = append(errs, validateFormat(value, field)...)
	errs = append(errs, validateRules(value, field.Rules)...)
	if field.Rules != nil && field.Rules.Custom != nil {
		if err := field.Rules.Custom(value); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// ValidateSection validates each value against its declared field. Only
// fields with at least one failing rule appear in the result.
func ValidateSection(values map[string]any, section publicschema.Section) map[string][]string {
	result := map[string][]string{}
	for _, field := range section.Fields {
		if errs := ValidateField(values[field.Name], field); len(errs) > 0 {
			result[field.Name] = errs
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

const requiredMessage = "value is required"

// isEmpty treats only nil and blank strings as absent. Empty lists and
// objects are present values and still have to match the declared shape.
func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}

// validateShape checks the runtime value shape against the declared kind.
// The switch is exhaustive over the field kind variants.
func validateShape(value any, kind publicschema.FieldKind) string {
	switch kind {
	case publicschema.KindText, publicschema.KindRichText, publicschema.KindURL,
		publicschema.KindEmail, publicschema.KindSelect, publicschema.KindImage:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("must be a string, got %T", value)
		}
	case publicschema.KindNumber:
		if !isNumeric(value) {
			return fmt.Sprintf("must be a number, got %T", value)
		}
	case publicschema.KindBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("must be a boolean, got %T", value)
		}
	case publicschema.KindArray:
		if _, ok := value.([]any); !ok {
			return fmt.Sprintf("must be a list, got %T", value)
		}
	case publicschema.KindSection:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Sprintf("must be an object, got %T", value)
		}
	default:
		return fmt.Sprintf("unknown field kind %q", kind)
	}
	return ""
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

// validateFormat applies the format rules implied by the field kind.
func validateFormat(value any, field publicschema.Field) []string {
	str, ok := value.(string)
	if !ok {
		return nil
	}

	var errs []string
	switch field.Kind {
	case publicschema.KindEmail:
		if err := validation.Validate(str, is.EmailFormat); err != nil {
			errs = append(errs, err.Error())
		}
	case publicschema.KindURL:
		if err := validation.Validate(str, is.URL); err != nil {
			errs = append(errs, err.Error())
		}
	case publicschema.KindSelect, publicschema.KindImage:
		if len(field.Options) > 0 && !optionAllowed(str, field.Options) {
			errs = append(errs, fmt.Sprintf("must be one of the declared options, got %q", str))
		}
	}
	return errs
}

func optionAllowed(value string, options []publicschema.Option) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// validateRules runs each declared constraint independently so a value that
// violates several rules reports all of them.
func validateRules(value any, rules *publicschema.Rules) []string {
	if rules == nil {
		return nil
	}

	var errs []string
	if str, ok := value.(string); ok {
		if rules.MinLength > 0 {
			if err := validation.Validate(str, validation.RuneLength(rules.MinLength, 0)); err != nil {
				errs = append(errs, err.Error())
			}
		}
		if rules.MaxLength > 0 {
			if err := validation.Validate(str, validation.RuneLength(0, rules.MaxLength)); err != nil {
				errs = append(errs, err.Error())
			}
		}
		if rules.Pattern != "" {
			re, err := regexp.Compile(rules.Pattern)
			if err != nil {
				errs = append(errs, fmt.Sprintf("pattern %q is not a valid expression", rules.Pattern))
			} else if err := validation.Validate(str, validation.Match(re)); err != nil {
				errs = append(errs, err.Error())
			}
		}
	}

	if num, ok := asFloat(value); ok {
		if rules.Min != nil && num < *rules.Min {
			errs = append(errs, fmt.Sprintf("must be no less than %v", *rules.Min))
		}
		if rules.Max != nil && num > *rules.Max {
			errs = append(errs, fmt.Sprintf("must be no greater than %v", *rules.Max))
		}
	}
	return errs
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}
