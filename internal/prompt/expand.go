// Package prompt implements dynamic-prompt template expansion. A template is
// plain prompt text with alternation groups of the form `{a|b|c}`. Expansion
// produces the cartesian product of all groups in left-to-right order, with
// the leftmost group varying slowest, so output order is deterministic.
package prompt

import "strings"

// DefaultMaxVariants caps expansion when the caller does not supply a limit.
const DefaultMaxVariants = 100

// Expand evaluates a template into its concrete variants, at most limit of
// them (limit <= 0 applies DefaultMaxVariants). Text without alternation
// groups expands to itself. Braces that do not form a complete group are
// treated as literal characters.
func Expand(template string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxVariants
	}

	segments := parse(template)
	variants := []string{""}
	for _, seg := range segments {
		next := make([]string, 0, len(variants)*len(seg))
		for _, v := range variants {
			for _, opt := range seg {
				if len(next) == limit {
					break
				}
				next = append(next, v+opt)
			}
			if len(next) == limit {
				break
			}
		}
		variants = next
	}
	return variants
}

// parse splits a template into segments. A segment is either a single-option
// literal run or the option list of one alternation group.
func parse(template string) [][]string {
	var segments [][]string
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, []string{literal.String()})
			literal.Reset()
		}
	}

	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			literal.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			// Unterminated group: the rest is literal text.
			literal.WriteString(rest)
			break
		}
		closing += open

		literal.WriteString(rest[:open])
		body := rest[open+1 : closing]
		options := strings.Split(body, "|")
		if len(options) < 2 {
			// A braced run without alternatives stays literal.
			literal.WriteString(rest[open : closing+1])
		} else {
			flush()
			segments = append(segments, options)
		}
		rest = rest[closing+1:]
	}
	flush()

	if len(segments) == 0 {
		return [][]string{{""}}
	}
	return segments
}
