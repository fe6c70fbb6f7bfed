package boolquery

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a parsed query
type Kind string

const (
	KindSimple  Kind = "SIMPLE"  // no Boolean operators
	KindBoolean Kind = "BOOLEAN" // contains AND, OR, NOT operators
)

// ParsedQuery holds the ordered terms and operators extracted from a raw
// search query. Operators[i] joins Terms[i] to Terms[i+1]; the first term
// has no preceding operator. Quoted phrases keep their quotes so the
// compiler can dispatch them to phrase matching.
type ParsedQuery struct {
	Kind      Kind
	Terms     []string
	Operators []string
}

var (
	quotedPattern   = regexp.MustCompile(`"([^"]+)"`)
	operatorPattern = regexp.MustCompile(`(?i)\b(AND|OR|NOT)\b`)
	parenPattern    = regexp.MustCompile(`[()]`)
)

// Parse tokenizes a raw search query into terms and Boolean operators.
// Supported inputs:
// - "tender AND contract"
// - "invoice OR bill"
// - "contract NOT agreement"
// - quoted phrases: "\"Build AND Design\" OR notice"
//
// Parentheses only mark the query as BOOLEAN; splitting stays linear
// left-to-right, there is no nested grouping. "(tender OR proposal) AND
// notice" parses the same as "tender OR proposal AND notice".
func Parse(raw string) ParsedQuery {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ParsedQuery{Kind: KindSimple}
	}

	if !operatorPattern.MatchString(trimmed) && !parenPattern.MatchString(trimmed) {
		return ParsedQuery{Kind: KindSimple, Terms: []string{trimmed}}
	}

	return parseBoolean(trimmed)
}

func parseBoolean(query string) ParsedQuery {
	// Extract quoted phrases first so operator splitting cannot break a
	// phrase that contains the words AND/OR/NOT.
	replacements := map[string]string{}
	processed := query
	for i, match := range quotedPattern.FindAllStringSubmatch(query, -1) {
		phrase := match[1]
		placeholder := fmt.Sprintf("___PHRASE_%d___", i)
		replacements[placeholder] = phrase
		processed = strings.ReplaceAll(processed, `"`+phrase+`"`, placeholder)
	}

	var operators []string
	for _, match := range operatorPattern.FindAllStringSubmatch(processed, -1) {
		operators = append(operators, strings.ToUpper(match[1]))
	}

	var terms []string
	for _, part := range operatorPattern.Split(processed, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// Restore the original quoted phrases
		for placeholder, phrase := range replacements {
			part = strings.ReplaceAll(part, placeholder, `"`+phrase+`"`)
		}
		terms = append(terms, part)
	}

	return ParsedQuery{Kind: KindBoolean, Terms: terms, Operators: operators}
}
