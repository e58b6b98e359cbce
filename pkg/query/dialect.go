package query

import (
	"fmt"
	"strings"
)

// Dialect selects placeholder and pattern-matching syntax.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Validate reports whether the dialect is supported.
func (d Dialect) Validate() error {
	switch d {
	case Postgres, SQLite:
		return nil
	default:
		return fmt.Errorf("unsupported dialect: %s (must be postgres or sqlite)", d)
	}
}

// Placeholder returns the bind parameter for position n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// Placeholders returns count bind parameters starting at position start.
func (d Dialect) Placeholders(start, count int) []string {
	out := make([]string, count)
	for i := range count {
		out[i] = d.Placeholder(start + i)
	}
	return out
}

// contains returns a case-insensitive substring match template for col.
// SQLite LIKE folds ASCII only, so both sides are lowered.
func (d Dialect) contains(col string) string {
	if d == SQLite {
		return fmt.Sprintf(`lower(%s) LIKE lower(%s) ESCAPE '\'`, col, paramToken)
	}
	return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, paramToken)
}

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
