// Package query turns raw recipe-list query parameters into a database
// filter and a pagination plan.
package query

import "strings"

// Tokens splits a comma-separated parameter into trimmed lowercase
// tokens, dropping empties. An empty or absent parameter yields nil so
// the corresponding filter dimension is omitted entirely.
func Tokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
