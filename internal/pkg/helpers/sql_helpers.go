package helpers

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE metacharacters in a user-supplied value so
// literal % and _ match themselves instead of acting as wildcards.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// ContainsPattern wraps a user-supplied value into an escaped containment
// pattern for ILIKE predicates.
func ContainsPattern(value string) string {
	return "%" + EscapeLike(strings.TrimSpace(value)) + "%"
}
