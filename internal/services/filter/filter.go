// Package filter validates and builds the flat metadata-filter grammar used
// to scope File Search retrieval:
//
//	filter    := condition (logicOp condition)*
//	condition := field operator value
//	operator  := "=" | "!=" | ">" | "<" | ">=" | "<="
//	value     := quoted-string | integer
//	logicOp   := "AND" | "OR"
//
// There is no precedence, grouping or nesting; the chain is strictly
// left-to-right. A regular expression is adequate for this grammar; if it
// ever grows parentheses, replace it with a small recursive-descent parser
// instead of extending the pattern.
package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// filterPattern matches one condition followed by zero or more AND/OR joined
// conditions. Values are double-quoted strings or bare integers.
var filterPattern = regexp.MustCompile(`^[\w\s]+(=|!=|>|<|>=|<=)\s*("[^"]*"|\d+)(\s+(AND|OR)\s+[\w\s]+(=|!=|>|<|>=|<=)\s*("[^"]*"|\d+))*$`)

// numericValue matches values emitted unquoted by Build.
var numericValue = regexp.MustCompile(`^\d+$`)

// Operators lists the comparison operators the grammar supports.
var Operators = []string{"=", "!=", ">", "<", ">=", "<="}

// LogicAnd and LogicOr join adjacent conditions.
const (
	LogicAnd = "AND"
	LogicOr  = "OR"
)

// Condition is one field/operator/value triple. Logic names the operator
// placed BEFORE this condition when it is not the first one emitted; the
// attachment direction matters for byte-exact output.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
	Logic    string `json:"logic,omitempty"`
}

// IsValid reports whether the filter string conforms to the grammar. An
// empty or whitespace-only filter is valid and means "no filter".
func IsValid(filter string) bool {
	trimmed := strings.TrimSpace(filter)
	if trimmed == "" {
		return true
	}
	return filterPattern.MatchString(trimmed)
}

// Build emits the filter string for a structured condition list. Conditions
// with an empty field or value are skipped (Validate reports them); numeric
// looking values are emitted unquoted, everything else is quoted. The joining
// operator before each non-first condition comes from that condition's own
// Logic field, defaulting to AND.
func Build(conditions []Condition) string {
	var b strings.Builder
	emitted := 0

	for _, cond := range conditions {
		if cond.Field == "" || cond.Value == "" {
			continue
		}

		if emitted > 0 {
			logic := cond.Logic
			if logic != LogicOr {
				logic = LogicAnd
			}
			b.WriteString(" ")
			b.WriteString(logic)
			b.WriteString(" ")
		}

		b.WriteString(cond.Field)
		b.WriteString(" ")
		b.WriteString(cond.Operator)
		b.WriteString(" ")
		if numericValue.MatchString(cond.Value) {
			b.WriteString(cond.Value)
		} else {
			b.WriteString(`"`)
			b.WriteString(cond.Value)
			b.WriteString(`"`)
		}
		emitted++
	}

	return b.String()
}

// Validate reports per-condition problems for UI feedback. Incomplete
// conditions are excluded from Build output but must not be silently dropped
// from user-facing validation.
func Validate(conditions []Condition) []error {
	var errs []error
	for i, cond := range conditions {
		if cond.Field == "" {
			errs = append(errs, fmt.Errorf("condition %d: field is required", i+1))
		}
		if cond.Value == "" {
			errs = append(errs, fmt.Errorf("condition %d: value is required", i+1))
		}
		if cond.Operator != "" && !isSupportedOperator(cond.Operator) {
			errs = append(errs, fmt.Errorf("condition %d: unsupported operator %q", i+1, cond.Operator))
		}
	}
	return errs
}

func isSupportedOperator(op string) bool {
	for _, supported := range Operators {
		if op == supported {
			return true
		}
	}
	return false
}
