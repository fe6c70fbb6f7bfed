package folderrule

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Rule is the typed form of a smart folder's persisted JSON definition.
// Every field defaults to "unconstrained": empty sets and nil bounds
// filter nothing. Malformed definitions parse to the zero rule instead
// of failing, so a broken definition degrades to "no filter".
type Rule struct {
	Query         string
	DocumentTypes map[string]bool
	Departments   map[string]bool
	UploadedBy    map[string]bool
	Tags          map[string]bool
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	IsActive      *bool
}

// Doc is the view of an indexed document the rule predicates need.
type Doc struct {
	Department         string
	DocumentType       string
	UploadedByUsername string
	CreatedAt          *time.Time
	IsActive           *bool
}

// Parse deserializes a smart folder definition. It never returns an
// error: blank input, invalid JSON and unparsable dates all fall back to
// the unconstrained default for the affected fields.
func Parse(definition string) Rule {
	rule := Rule{
		DocumentTypes: map[string]bool{},
		Departments:   map[string]bool{},
		UploadedBy:    map[string]bool{},
		Tags:          map[string]bool{},
	}
	if definition == "" {
		return rule
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(definition), &root); err != nil {
		return rule
	}

	rule.Query = text(root, "query")
	rule.DocumentTypes = stringSet(root, "documentTypes")
	rule.Departments = stringSet(root, "departments")
	rule.UploadedBy = stringSet(root, "uploadedBy")
	rule.Tags = stringSet(root, "tags")
	rule.IsActive = boolean(root, "isActive")
	rule.CreatedFrom = date(root, "createdFrom")
	rule.CreatedTo = date(root, "createdTo")
	return rule
}

// Matches reports whether a document passes every set constraint of the
// rule. Department-based permission scoping is the evaluator's concern,
// not the rule's.
func (r Rule) Matches(d Doc) bool {
	if len(r.Departments) > 0 {
		if d.Department == "" || !r.Departments[d.Department] {
			return false
		}
	}
	if len(r.DocumentTypes) > 0 {
		if d.DocumentType == "" || !r.DocumentTypes[d.DocumentType] {
			return false
		}
	}
	if len(r.UploadedBy) > 0 {
		if d.UploadedByUsername == "" || !r.UploadedBy[d.UploadedByUsername] {
			return false
		}
	}
	if r.CreatedFrom != nil {
		if d.CreatedAt == nil || d.CreatedAt.Before(*r.CreatedFrom) {
			return false
		}
	}
	if r.CreatedTo != nil {
		if d.CreatedAt == nil || d.CreatedAt.After(*r.CreatedTo) {
			return false
		}
	}
	if r.IsActive != nil {
		if d.IsActive == nil || *d.IsActive != *r.IsActive {
			return false
		}
	}
	return true
}

func text(root map[string]json.RawMessage, field string) string {
	raw, ok := root[field]
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func boolean(root map[string]json.RawMessage, field string) *bool {
	raw, ok := root[field]
	if !ok {
		return nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// stringSet accepts either a JSON array of strings or a single scalar,
// which is treated as a singleton set.
func stringSet(root map[string]json.RawMessage, field string) map[string]bool {
	set := map[string]bool{}
	raw, ok := root[field]
	if !ok {
		return set
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err == nil {
		for _, v := range values {
			set[v] = true
		}
		return set
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		set[single] = true
	}
	return set
}

func date(root map[string]json.RawMessage, field string) *time.Time {
	v := text(root, field)
	if v == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}
