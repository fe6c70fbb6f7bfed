package boolquery

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantKind      Kind
		wantTerms     []string
		wantOperators []string
	}{
		{
			name:     "empty query",
			raw:      "",
			wantKind: KindSimple,
		},
		{
			name:     "whitespace only",
			raw:      "   \t ",
			wantKind: KindSimple,
		},
		{
			name:      "single term",
			raw:       "tender",
			wantKind:  KindSimple,
			wantTerms: []string{"tender"},
		},
		{
			name:      "multi word without operators",
			raw:       "  network maintenance report ",
			wantKind:  KindSimple,
			wantTerms: []string{"network maintenance report"},
		},
		{
			name:          "and query",
			raw:           "tender AND contract",
			wantKind:      KindBoolean,
			wantTerms:     []string{"tender", "contract"},
			wantOperators: []string{"AND"},
		},
		{
			name:          "or query",
			raw:           "invoice OR bill",
			wantKind:      KindBoolean,
			wantTerms:     []string{"invoice", "bill"},
			wantOperators: []string{"OR"},
		},
		{
			name:          "not query",
			raw:           "contract NOT agreement",
			wantKind:      KindBoolean,
			wantTerms:     []string{"contract", "agreement"},
			wantOperators: []string{"NOT"},
		},
		{
			name:          "lowercase operators are recognized and uppercased",
			raw:           "invoice or bill",
			wantKind:      KindBoolean,
			wantTerms:     []string{"invoice", "bill"},
			wantOperators: []string{"OR"},
		},
		{
			name:          "mixed operators stay in order",
			raw:           "tender AND contract OR proposal NOT draft",
			wantKind:      KindBoolean,
			wantTerms:     []string{"tender", "contract", "proposal", "draft"},
			wantOperators: []string{"AND", "OR", "NOT"},
		},
		{
			name:          "quoted phrase containing an operator word stays whole",
			raw:           `"Build AND Design" OR notice`,
			wantKind:      KindBoolean,
			wantTerms:     []string{`"Build AND Design"`, "notice"},
			wantOperators: []string{"OR"},
		},
		{
			name:      "parentheses alone classify as boolean",
			raw:       "(tender)",
			wantKind:  KindBoolean,
			wantTerms: []string{"(tender)"},
		},
		{
			name:          "parentheses do not group, splitting is linear",
			raw:           "(tender OR proposal) AND notice",
			wantKind:      KindBoolean,
			wantTerms:     []string{"(tender", "proposal)", "notice"},
			wantOperators: []string{"OR", "AND"},
		},
		{
			name:          "operator words inside larger words are not operators",
			raw:           "android NOT oreo",
			wantKind:      KindBoolean,
			wantTerms:     []string{"android", "oreo"},
			wantOperators: []string{"NOT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)

			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if !reflect.DeepEqual(got.Terms, tt.wantTerms) {
				t.Errorf("Terms = %v, want %v", got.Terms, tt.wantTerms)
			}
			if !reflect.DeepEqual(got.Operators, tt.wantOperators) {
				t.Errorf("Operators = %v, want %v", got.Operators, tt.wantOperators)
			}
		})
	}
}

func TestParseOperatorCountMatchesTermJoins(t *testing.T) {
	got := Parse("alpha AND beta OR gamma")
	if len(got.Operators) != len(got.Terms)-1 {
		t.Errorf("got %d operators for %d terms, want %d", len(got.Operators), len(got.Terms), len(got.Terms)-1)
	}
}
