package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values. Matching
// is case-insensitive; the canonical spelling is stored.
type enumValue struct {
	target   *string
	allowed  []string
	typeName string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, def, typeName string, allowed []string) *enumValue {
	*target = def
	return &enumValue{target: target, allowed: allowed, typeName: typeName}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if strings.EqualFold(a, s) {
			*e.target = a
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return e.typeName }

// keys returns the sorted keys of one of the domain's canonical value sets.
func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// decimalValue parses amounts exactly instead of through float64.
type decimalValue struct {
	target *decimal.Decimal
}

var _ pflag.Value = (*decimalValue)(nil)

func (d *decimalValue) String() string {
	if d.target == nil {
		return "0"
	}
	return d.target.String()
}

func (d *decimalValue) Set(s string) error {
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*d.target = v
	return nil
}

func (d *decimalValue) Type() string { return "decimal" }

// parseScenario parses "field=v1,v2,..." into a field name and its values.
func parseScenario(s string) (string, []float64, error) {
	field, list, ok := strings.Cut(s, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", nil, fmt.Errorf("scenario %q: want field=v1,v2", s)
	}
	var vals []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return "", nil, fmt.Errorf("scenario %q: invalid value %q", s, part)
		}
		vals = append(vals, v)
	}
	return field, vals, nil
}
