// Package query compiles user-supplied conference filters into an
// executable, deterministically-ordered query description. Compilation is
// pure; execution belongs to the conference repository.
package query

import (
	"errors"
	"fmt"
	"strconv"
)

// Compilation errors. All of them are bad requests at the API boundary.
var (
	ErrInvalidFilter      = errors.New("filter contains invalid field or operator")
	ErrInequalityConflict = errors.New("inequality filter is allowed on only one field")
	ErrInvalidFilterValue = errors.New("filter value must be an integer for this field")
)

// Filter is one raw user-supplied filter triple.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// fields maps wire field tokens onto entity properties.
var fields = map[string]string{
	"CITY":          "city",
	"TOPIC":         "topics",
	"MONTH":         "month",
	"MAX_ATTENDEES": "maxAttendees",
}

// operators maps wire operator tokens onto comparison operators.
var operators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "!=",
}

// numericProperties are coerced to integers before comparison.
var numericProperties = map[string]struct{}{
	"month":        {},
	"maxAttendees": {},
}

// Condition is one resolved filter: entity property, comparison operator,
// and a coerced value (string or int).
type Condition struct {
	Property string
	Operator string
	Value    any
}

// Compiled is an executable query description: resolved conditions in input
// order plus the two-level sort. When an inequality field was established,
// ordering is (inequality property asc, name asc); otherwise (name asc).
// The first sort key must match the inequality property, mirroring the
// store's composite-index restriction.
type Compiled struct {
	Conditions         []Condition
	InequalityProperty string
	OrderBy            []string
}

// Compile validates and resolves the raw filters. The first non-equality
// filter fixes the inequality field for the whole set; any later
// non-equality filter on a different field fails. Multiple inequalities on
// the same field are permitted.
func Compile(filters []Filter) (*Compiled, error) {
	c := &Compiled{}
	for _, f := range filters {
		property, ok := fields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrInvalidFilter, f.Field)
		}
		op, ok := operators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Operator)
		}

		if op != "=" {
			if c.InequalityProperty != "" && c.InequalityProperty != property {
				return nil, ErrInequalityConflict
			}
			c.InequalityProperty = property
		}

		var value any = f.Value
		if _, numeric := numericProperties[property]; numeric {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFilterValue, f.Field, f.Value)
			}
			value = n
		}

		c.Conditions = append(c.Conditions, Condition{Property: property, Operator: op, Value: value})
	}

	if c.InequalityProperty != "" {
		c.OrderBy = []string{c.InequalityProperty, "name"}
	} else {
		c.OrderBy = []string{"name"}
	}
	return c, nil
}
