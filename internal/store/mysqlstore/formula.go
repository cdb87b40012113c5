package mysqlstore

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/store"
)

// The services only ever generate `{field} = "value"` formulas, so that is
// the subset this backend evaluates. Anything else is rejected rather than
// silently matching nothing.
var equalityFormula = regexp.MustCompile(`^\{([^{}]+)\}\s*=\s*"((?:[^"\\]|\\.)*)"$`)

type matchFunc func(store.Record) bool

func compileFormula(formula string) (matchFunc, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return func(store.Record) bool { return true }, nil
	}

	m := equalityFormula.FindStringSubmatch(formula)
	if m == nil {
		return nil, fmt.Errorf("unsupported filter formula %q", formula)
	}
	field, want := m[1], unescape(m[2])

	return func(r store.Record) bool {
		v, ok := r.Fields[field]
		if !ok {
			return false
		}
		s, ok := v.(string)
		return ok && s == want
	}, nil
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
