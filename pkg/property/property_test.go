package property

import (
	"errors"
	"testing"
)

func TestParse_ValidQueries(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		clauses int
	}{
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"single equality", "fips=yes", 1},
		{"single inequality", "provider!=legacy", 1},
		{"bare key", "fips", 1},
		{"multiple clauses", "fips=yes,provider!=legacy", 2},
		{"spaces around tokens", " fips = yes , provider != legacy ", 2},
		{"arbitrary value", "provider=default", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.query, err)
			}
			if q.Len() != tt.clauses {
				t.Errorf("expected %d clauses, got %d", tt.clauses, q.Len())
			}
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"double equals", "fips=="},
		{"missing value", "fips="},
		{"missing key", "=yes"},
		{"bare inequality", "!=yes"},
		{"empty clause", "fips=yes,,provider=default"},
		{"trailing comma", "fips=yes,"},
		{"value with equals", "fips=a=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query)
			if err == nil {
				t.Fatalf("Parse(%q) should have failed", tt.query)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("expected *SyntaxError, got %T: %v", err, err)
			}
		})
	}
}

func TestParse_BareKeyIsYesShorthand(t *testing.T) {
	q, err := Parse("fips")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	clauses := q.Clauses()
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	if clauses[0].Key != "fips" || clauses[0].Value != "yes" || clauses[0].Cmp != Equals {
		t.Errorf("unexpected clause: %+v", clauses[0])
	}
}

func TestMatch_MissingKeyBehavesAsNo(t *testing.T) {
	empty, err := ParseDefinition("")
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"fips=yes", false},
		{"fips!=yes", true},
		{"fips=no", true},
		{"fips=false", true},
		{"fips!=no", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := q.Match(empty); got != tt.want {
				t.Errorf("Match(%q, {}) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatch_Semantics(t *testing.T) {
	def, err := ParseDefinition("provider=legacy,legacy=yes,version=3.0.1")
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"legacy=yes", true},
		{"legacy", true},
		{"legacy=true", true},  // yes/true are equivalent
		{"LEGACY=YES", true},   // keys and boolean literals are case-insensitive
		{"legacy!=yes", false},
		{"provider=legacy", true},
		{"provider!=legacy", false},
		{"provider=Legacy", false}, // arbitrary values compare case-sensitively
		{"version=3.0.1", true},
		{"version=3.0.2", false},
		{"legacy=yes,provider=legacy", true},
		{"legacy=yes,provider!=legacy", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.query, err)
			}
			if got := q.Match(def); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatch_IsPure(t *testing.T) {
	q, err := Parse("fips=yes,provider!=legacy")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	def, err := ParseDefinition("fips=yes,provider=default")
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}

	first := q.Match(def)
	for i := 0; i < 10; i++ {
		if q.Match(def) != first {
			t.Fatal("Match is not idempotent")
		}
	}
	if !first {
		t.Error("expected query to match definition")
	}
}

func TestMerge_CallerWinsPerKey(t *testing.T) {
	caller, err := Parse("fips=no,provider=legacy")
	if err != nil {
		t.Fatalf("Parse caller failed: %v", err)
	}
	defaults, err := Parse("fips=yes,default=yes")
	if err != nil {
		t.Fatalf("Parse defaults failed: %v", err)
	}

	merged := Merge(caller, defaults)
	if got, want := merged.String(), "fips=no,provider=legacy,default=yes"; got != want {
		t.Errorf("Merge = %q, want %q", got, want)
	}
}

func TestMerge_NilAndEmpty(t *testing.T) {
	defaults, err := Parse("fips=yes")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	merged := Merge(nil, defaults)
	if got := merged.String(); got != "fips=yes" {
		t.Errorf("Merge(nil, defaults) = %q, want %q", got, "fips=yes")
	}

	caller, _ := Parse("a=1")
	if got := Merge(caller, nil); got != caller {
		t.Error("Merge(caller, nil) should return caller unchanged")
	}
}

func TestString_CanonicalAndStable(t *testing.T) {
	q1, err := Parse(" fips = yes , provider != legacy ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got, want := q1.String(), "fips=yes,provider!=legacy"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}

	// Reparsing the canonical form must be a fixed point.
	q2, err := Parse(q1.String())
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if q2.String() != q1.String() {
		t.Errorf("canonical form is not stable: %q vs %q", q1.String(), q2.String())
	}
}

func TestParseDefinition_RejectsInequality(t *testing.T) {
	_, err := ParseDefinition("fips!=yes")
	if err == nil {
		t.Fatal("expected error for inequality in definition")
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected *SyntaxError, got %T", err)
	}
}

func TestProperties_SetDefault(t *testing.T) {
	def, err := ParseDefinition("fips=yes")
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}

	def.SetDefault("provider", "default")
	if v, ok := def.Get("provider"); !ok || v != "default" {
		t.Errorf("expected provider=default, got %q (%v)", v, ok)
	}

	// Existing keys must not be overwritten.
	def.SetDefault("fips", "no")
	if v, _ := def.Get("fips"); v != "yes" {
		t.Errorf("SetDefault overwrote existing key: fips=%q", v)
	}
}
