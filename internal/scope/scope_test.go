package scope

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Defaults(t *testing.T) {
	s := Parse(url.Values{})

	assert.Equal(t, "12", s.Period)
	assert.Equal(t, "all", s.Category)
	assert.Equal(t, "all", s.Supplier)
	assert.Equal(t, 85, s.Confidence)
	assert.Empty(t, s.RunID)
	assert.Empty(t, s.Tab)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Scope
	}{
		{
			name:  "explicit values override defaults",
			query: "period=6&category=electronics&supplier=acme&confidence=90",
			want: func() Scope {
				s := Default()
				s.Period = "6"
				s.Category = "electronics"
				s.Supplier = "acme"
				s.Confidence = 90
				return s
			}(),
		},
		{
			name:  "run and tab are carried",
			query: "run=abc123&tab=simulation",
			want: func() Scope {
				s := Default()
				s.RunID = "abc123"
				s.Tab = "simulation"
				return s
			}(),
		},
		{
			name:  "non-numeric confidence falls back to full defaults",
			query: "category=electronics&confidence=high",
			want:  Default(),
		},
		{
			name:  "non-numeric period falls back to full defaults",
			query: "period=twelve&supplier=acme",
			want:  Default(),
		},
		{
			name:  "out-of-range confidence falls back to full defaults",
			query: "confidence=150",
			want:  Default(),
		},
		{
			name:  "negative period falls back to full defaults",
			query: "period=-3",
			want:  Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Parse(q))
		})
	}
}

func TestEncode_DefaultsOmitted(t *testing.T) {
	// The documented scenario: the all-defaults scope serializes to an
	// empty query string; changing only confidence serializes to
	// exactly ?confidence=90.
	s := Default()
	assert.Equal(t, "", s.Encode())

	s.Confidence = 90
	assert.Equal(t, "confidence=90", s.Encode())
}

func TestEncode_OnlyNonDefaults(t *testing.T) {
	s := Default()
	s.Period = "24"
	s.Supplier = "globex"
	s.RunID = "r1"

	q := s.Values()
	assert.Equal(t, "24", q.Get("period"))
	assert.Equal(t, "globex", q.Get("supplier"))
	assert.Equal(t, "r1", q.Get("run"))
	assert.False(t, q.Has("category"))
	assert.False(t, q.Has("confidence"))
	assert.False(t, q.Has("tab"))
}

func TestRoundTrip(t *testing.T) {
	s := Default()
	s.Period = "18"
	s.Category = "packaging"
	s.Confidence = 70
	s.Tab = "replenishment"

	got := Parse(s.Values())
	assert.Equal(t, s, got)
}
