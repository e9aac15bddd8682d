// Package scope implements the typed query-string view state shared by
// the forecast and cost-projection features. Parsing and encoding go
// through one field schema so both features canonicalize URLs the same
// way: a field equal to its default is never serialized.
package scope

import (
	"net/url"
	"strconv"

	"github.com/slahq/sla/internal/core"
)

// Default field values. Defaults are never written to the URL.
const (
	DefaultPeriod     = "12"
	DefaultCategory   = "all"
	DefaultSupplier   = "all"
	DefaultConfidence = 85
)

// Scope is the full view state: the computation scope plus the active
// run and tab.
type Scope struct {
	core.Scope
	RunID string
	Tab   string
}

// Default returns the scope with every field at its default.
func Default() Scope {
	return Scope{
		Scope: core.Scope{
			Period:     DefaultPeriod,
			Category:   DefaultCategory,
			Supplier:   DefaultSupplier,
			Confidence: DefaultConfidence,
		},
	}
}

// field describes one schema entry: its query key, default, and how to
// read/write it on a Scope. get returns the serialized value; set
// parses one and reports whether the raw value was well formed.
type field struct {
	key string
	def string
	get func(s *Scope) string
	set func(s *Scope, raw string) bool
}

var schema = []field{
	{
		key: "period",
		def: DefaultPeriod,
		get: func(s *Scope) string { return s.Period },
		set: func(s *Scope, raw string) bool {
			if n, err := strconv.Atoi(raw); err != nil || n <= 0 {
				return false
			}
			s.Period = raw
			return true
		},
	},
	{
		key: "category",
		def: DefaultCategory,
		get: func(s *Scope) string { return s.Category },
		set: func(s *Scope, raw string) bool { s.Category = raw; return raw != "" },
	},
	{
		key: "supplier",
		def: DefaultSupplier,
		get: func(s *Scope) string { return s.Supplier },
		set: func(s *Scope, raw string) bool { s.Supplier = raw; return raw != "" },
	},
	{
		key: "confidence",
		def: strconv.Itoa(DefaultConfidence),
		get: func(s *Scope) string { return strconv.Itoa(s.Confidence) },
		set: func(s *Scope, raw string) bool {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 || n > 100 {
				return false
			}
			s.Confidence = n
			return true
		},
	},
	{
		key: "run",
		def: "",
		get: func(s *Scope) string { return s.RunID },
		set: func(s *Scope, raw string) bool { s.RunID = raw; return true },
	},
	{
		key: "tab",
		def: "",
		get: func(s *Scope) string { return s.Tab },
		set: func(s *Scope, raw string) bool { s.Tab = raw; return true },
	},
}

// Parse derives a Scope from query parameters. Any malformed field
// yields the full default scope, never a partially defaulted one.
func Parse(q url.Values) Scope {
	s := Default()
	for _, f := range schema {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		if !f.set(&s, raw) {
			return Default()
		}
	}
	return s
}

// Values serializes the scope, omitting every field that equals its
// default so URLs stay canonical and minimal.
func (s Scope) Values() url.Values {
	q := url.Values{}
	for _, f := range schema {
		if v := f.get(&s); v != f.def {
			q.Set(f.key, v)
		}
	}
	return q
}

// Encode returns the canonical query-string form of the scope. The
// default scope encodes to the empty string.
func (s Scope) Encode() string {
	return s.Values().Encode()
}
