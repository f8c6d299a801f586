package variant

import "strings"

// Terms splits a filter query into lower-cased search terms.
func Terms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Filter returns the rows matching every term of query in the id,
// consequence, HGVS or flags. An empty query returns rows unchanged.
func Filter(rows []Variant, query string) []Variant {
	terms := Terms(query)
	if len(terms) == 0 {
		return rows
	}

	out := make([]Variant, 0, len(rows))
	for _, v := range rows {
		if matchesAll(v, terms) {
			out = append(out, v)
		}
	}
	return out
}

func matchesAll(v Variant, terms []string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		v.VariantID,
		v.Consequence,
		ConsequenceLabel(v.Consequence),
		v.HGVS,
		strings.Join(v.Flags, " "),
	}, "\x00"))
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
