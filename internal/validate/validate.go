// Package validate checks request payloads against named schemas and
// reports field-level violations.
package validate

import (
	"fmt"
	"math"
	"regexp"
)

// Kind is the expected JSON type of a field.
type Kind int

const (
	String Kind = iota
	Number
	Integer
	Bool
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Rule describes the constraints for one field.
type Rule struct {
	Field    string
	Type     Kind
	Required bool
	MinLen   int      // strings: minimum length (0 = unchecked)
	MaxLen   int      // strings: maximum length (0 = unchecked)
	Min      *float64 // numbers: inclusive lower bound
	Max      *float64 // numbers: inclusive upper bound
	Email    bool     // strings: must look like an email address
}

// Schema is a named set of field rules.
type Schema struct {
	Name       string
	Rules      []Rule
	RequireAny bool // reject payloads where no known field is present
}

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Bound returns a pointer to v, for use as a Rule bound.
func Bound(v float64) *float64 { return &v }

// Validate checks payload against the schema. A nil result means the
// payload is acceptable.
func (s *Schema) Validate(payload map[string]interface{}) []Violation {
	var violations []Violation

	present := 0
	for _, r := range s.Rules {
		raw, ok := payload[r.Field]
		if !ok || raw == nil {
			if r.Required {
				violations = append(violations, Violation{r.Field, "is required"})
			}
			continue
		}
		present++
		violations = append(violations, r.check(raw)...)
	}

	if s.RequireAny && present == 0 && len(violations) == 0 {
		violations = append(violations, Violation{Field: "*", Message: "at least one field must be provided"})
	}

	return violations
}

func (r Rule) check(raw interface{}) []Violation {
	var violations []Violation

	switch r.Type {
	case String:
		str, ok := raw.(string)
		if !ok {
			return []Violation{{r.Field, "must be a string"}}
		}
		if r.Required && str == "" {
			return []Violation{{r.Field, "must not be empty"}}
		}
		if r.MinLen > 0 && len(str) < r.MinLen {
			violations = append(violations, Violation{r.Field, fmt.Sprintf("must be at least %d characters", r.MinLen)})
		}
		if r.MaxLen > 0 && len(str) > r.MaxLen {
			violations = append(violations, Violation{r.Field, fmt.Sprintf("must be at most %d characters", r.MaxLen)})
		}
		if r.Email && !emailRe.MatchString(str) {
			violations = append(violations, Violation{r.Field, "must be a valid email address"})
		}

	case Number, Integer:
		// JSON numbers decode as float64
		num, ok := raw.(float64)
		if !ok {
			return []Violation{{r.Field, "must be a number"}}
		}
		if r.Type == Integer && num != math.Trunc(num) {
			return []Violation{{r.Field, "must be an integer"}}
		}
		if r.Min != nil && num < *r.Min {
			violations = append(violations, Violation{r.Field, fmt.Sprintf("must be at least %v", *r.Min)})
		}
		if r.Max != nil && num > *r.Max {
			violations = append(violations, Violation{r.Field, fmt.Sprintf("must be at most %v", *r.Max)})
		}

	case Bool:
		if _, ok := raw.(bool); !ok {
			return []Violation{{r.Field, "must be a boolean"}}
		}
	}

	return violations
}

// Accessors for validated payloads. They assume Validate passed and
// return zero values for absent fields.

// Str returns the string value of a field.
func Str(payload map[string]interface{}, field string) string {
	v, _ := payload[field].(string)
	return v
}

// Num returns the numeric value of a field.
func Num(payload map[string]interface{}, field string) float64 {
	v, _ := payload[field].(float64)
	return v
}

// Boolean returns the boolean value of a field.
func Boolean(payload map[string]interface{}, field string) bool {
	v, _ := payload[field].(bool)
	return v
}

// Has reports whether a field is present and non-null.
func Has(payload map[string]interface{}, field string) bool {
	v, ok := payload[field]
	return ok && v != nil
}
