package folderrule

import (
	"testing"
	"time"
)

func testDate(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func boolPtr(v bool) *bool { return &v }

func TestParseDefaultsToUnconstrained(t *testing.T) {
	for _, definition := range []string{"", "{}", "not json at all", `{"unknown": 1}`} {
		rule := Parse(definition)

		if rule.Query != "" {
			t.Errorf("Parse(%q).Query = %q, want empty", definition, rule.Query)
		}
		if len(rule.DocumentTypes)+len(rule.Departments)+len(rule.UploadedBy)+len(rule.Tags) != 0 {
			t.Errorf("Parse(%q) produced constrained sets", definition)
		}
		if rule.CreatedFrom != nil || rule.CreatedTo != nil || rule.IsActive != nil {
			t.Errorf("Parse(%q) produced bounds", definition)
		}
	}
}

func TestParseFullDefinition(t *testing.T) {
	rule := Parse(`{
		"query": "contract",
		"documentTypes": ["CONTRACT", "INVOICE"],
		"departments": ["Finance"],
		"uploadedBy": ["finance.officer"],
		"tags": ["vendor"],
		"createdFrom": "2026-01-01",
		"createdTo": "2026-12-31",
		"isActive": true
	}`)

	if rule.Query != "contract" {
		t.Errorf("Query = %q", rule.Query)
	}
	if !rule.DocumentTypes["CONTRACT"] || !rule.DocumentTypes["INVOICE"] {
		t.Errorf("DocumentTypes = %v", rule.DocumentTypes)
	}
	if !rule.Departments["Finance"] {
		t.Errorf("Departments = %v", rule.Departments)
	}
	if !rule.UploadedBy["finance.officer"] {
		t.Errorf("UploadedBy = %v", rule.UploadedBy)
	}
	if !rule.Tags["vendor"] {
		t.Errorf("Tags = %v", rule.Tags)
	}
	if rule.CreatedFrom == nil || !rule.CreatedFrom.Equal(*testDate("2026-01-01")) {
		t.Errorf("CreatedFrom = %v", rule.CreatedFrom)
	}
	if rule.CreatedTo == nil || !rule.CreatedTo.Equal(*testDate("2026-12-31")) {
		t.Errorf("CreatedTo = %v", rule.CreatedTo)
	}
	if rule.IsActive == nil || !*rule.IsActive {
		t.Errorf("IsActive = %v", rule.IsActive)
	}
}

func TestParseScalarBecomesSingletonSet(t *testing.T) {
	rule := Parse(`{"departments": "Finance", "documentTypes": "CONTRACT"}`)

	if len(rule.Departments) != 1 || !rule.Departments["Finance"] {
		t.Errorf("Departments = %v, want singleton Finance", rule.Departments)
	}
	if len(rule.DocumentTypes) != 1 || !rule.DocumentTypes["CONTRACT"] {
		t.Errorf("DocumentTypes = %v, want singleton CONTRACT", rule.DocumentTypes)
	}
}

func TestParseUnparsableDateLeavesBoundUnset(t *testing.T) {
	rule := Parse(`{"createdFrom": "01/02/2026", "createdTo": "yesterday"}`)

	if rule.CreatedFrom != nil || rule.CreatedTo != nil {
		t.Errorf("bad dates should leave bounds unset, got %v / %v", rule.CreatedFrom, rule.CreatedTo)
	}
}

func TestMatches(t *testing.T) {
	rule := Parse(`{
		"documentTypes": ["CONTRACT"],
		"departments": ["Finance"],
		"createdFrom": "2026-01-01",
		"createdTo": "2026-06-30",
		"isActive": true
	}`)

	base := Doc{
		Department:   "Finance",
		DocumentType: "CONTRACT",
		CreatedAt:    testDate("2026-03-15"),
		IsActive:     boolPtr(true),
	}

	tests := []struct {
		name string
		doc  Doc
		want bool
	}{
		{"matching document", base, true},
		{"wrong department", with(base, func(d *Doc) { d.Department = "HR" }), false},
		{"missing department", with(base, func(d *Doc) { d.Department = "" }), false},
		{"wrong type", with(base, func(d *Doc) { d.DocumentType = "INVOICE" }), false},
		{"before createdFrom", with(base, func(d *Doc) { d.CreatedAt = testDate("2025-12-31") }), false},
		{"after createdTo", with(base, func(d *Doc) { d.CreatedAt = testDate("2026-07-01") }), false},
		{"missing date fails range checks", with(base, func(d *Doc) { d.CreatedAt = nil }), false},
		{"inactive rejected by isActive", with(base, func(d *Doc) { d.IsActive = boolPtr(false) }), false},
		{"nil active rejected by isActive", with(base, func(d *Doc) { d.IsActive = nil }), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Matches(tt.doc); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesUnconstrainedRuleAcceptsEverything(t *testing.T) {
	rule := Parse("")

	if !rule.Matches(Doc{}) {
		t.Errorf("empty rule should match empty doc")
	}
	if !rule.Matches(Doc{Department: "HR", DocumentType: "MEMO"}) {
		t.Errorf("empty rule should match any doc")
	}
}

func TestMatchesUploadedBy(t *testing.T) {
	rule := Parse(`{"uploadedBy": ["alice"]}`)

	if !rule.Matches(Doc{UploadedByUsername: "alice"}) {
		t.Errorf("alice should match")
	}
	if rule.Matches(Doc{UploadedByUsername: "bob"}) {
		t.Errorf("bob should not match")
	}
	if rule.Matches(Doc{}) {
		t.Errorf("missing uploader should not match a constrained rule")
	}
}

func with(d Doc, mutate func(*Doc)) Doc {
	mutate(&d)
	return d
}
