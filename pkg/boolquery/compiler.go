package boolquery

import (
	"strings"
)

// DefaultSearchFields are the index fields a free-text query runs against.
// Name-like fields get a higher weight in the compiled query.
var DefaultSearchFields = []string{"fileName", "originalName", "extractedText", "description", "tags"}

type clauseKind int

const (
	clauseMultiMatch clauseKind = iota // weighted multi-field match
	clausePhrase                       // exact phrase match, no weighting
)

// clause is the compiled form of a single term
type clause struct {
	kind clauseKind
	text string
}

// newClause dispatches on the quoting of the term: quoted terms become
// exact phrase clauses, everything else a weighted multi-field clause.
func newClause(term string) clause {
	if strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) && len(term) >= 2 {
		return clause{kind: clausePhrase, text: term[1 : len(term)-1]}
	}
	return clause{kind: clauseMultiMatch, text: term}
}

func (c clause) render(fields []string) string {
	var b strings.Builder
	b.WriteString(`{"multi_match": {`)
	b.WriteString(`"query": "`)
	b.WriteString(Escape(c.text))
	b.WriteString(`","fields": [`)

	quoted := make([]string, len(fields))
	for i, field := range fields {
		if c.kind == clauseMultiMatch && (field == "fileName" || field == "originalName") {
			quoted[i] = `"` + field + `^2"`
		} else {
			quoted[i] = `"` + field + `"`
		}
	}
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(`],`)

	switch c.kind {
	case clausePhrase:
		b.WriteString(`"type": "phrase"`)
	default:
		b.WriteString(`"type": "best_fields","operator": "and"`)
	}
	b.WriteString(`}}`)
	return b.String()
}

// Compile turns a parsed query into an Elasticsearch query body.
// An empty query compiles to match_all.
func Compile(pq ParsedQuery, fields []string) string {
	if pq.Kind == KindSimple {
		if len(pq.Terms) == 0 {
			return matchAllQuery()
		}
		return newClause(pq.Terms[0]).render(fields)
	}
	return compileBool(pq, fields)
}

// compileBool assigns terms to must/should/must_not groups by walking the
// operator list linearly: the operator preceding a term decides its group,
// the first term always lands in must.
func compileBool(pq ParsedQuery, fields []string) string {
	if len(pq.Terms) == 0 {
		return matchAllQuery()
	}

	var must, should, mustNot []string
	for i, term := range pq.Terms {
		var operator string
		if i > 0 && i <= len(pq.Operators) {
			operator = pq.Operators[i-1]
		}

		rendered := newClause(term).render(fields)
		switch operator {
		case "OR":
			should = append(should, rendered)
		case "NOT":
			mustNot = append(mustNot, rendered)
		default:
			// first term or explicit/implicit AND
			must = append(must, rendered)
		}
	}

	var groups []string
	if len(must) > 0 {
		groups = append(groups, `"must": [`+strings.Join(must, ", ")+`]`)
	}
	if len(should) > 0 {
		groups = append(groups, `"should": [`+strings.Join(should, ", ")+`]`)
		groups = append(groups, `"minimum_should_match": 1`)
	}
	if len(mustNot) > 0 {
		groups = append(groups, `"must_not": [`+strings.Join(mustNot, ", ")+`]`)
	}

	return `{"bool": {` + strings.Join(groups, ",") + `}}`
}

func matchAllQuery() string {
	return `{"match_all": {}}`
}

// Escape escapes control characters so text inserted into a query body
// cannot break the surrounding JSON.
func Escape(input string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return replacer.Replace(input)
}
