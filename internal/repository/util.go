package repository

import "strings"

// likeEscapeChar is used instead of a backslash, which mysql treats as an
// escape inside string literals.
const likeEscapeChar = "!"

var likeEscaper = strings.NewReplacer(
	likeEscapeChar, likeEscapeChar+likeEscapeChar,
	"%", likeEscapeChar+"%",
	"_", likeEscapeChar+"_",
)

// containsPattern builds a LIKE pattern matching q as a literal substring.
// Case is folded by the store, see likeAny.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// likeAny returns a condition matching the pattern against any of the given
// columns. Both sides go through the store's LOWER so they are folded the same
// way. The pattern is bound once per column.
func likeAny(pattern string, columns ...string) (string, []any) {
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		conds = append(conds, "LOWER("+c+") LIKE LOWER(?) ESCAPE '"+likeEscapeChar+"'")
		args = append(args, pattern)
	}

	return strings.Join(conds, " OR "), args
}
