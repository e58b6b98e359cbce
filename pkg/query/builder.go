// Package query builds parameterized SQL for projection-mapped tables.
package query

import (
	"fmt"
	"strings"
)

// paramToken marks a bind parameter inside a condition template.
const paramToken = "$%d"

type condition struct {
	clause string
	args   []any
}

// Builder constructs SQL queries using a fluent API with automatic parameter numbering.
type Builder struct {
	projection *ProjectionMap
	dialect    Dialect
	conditions []condition
	orderBy    []SortField
}

// NewBuilder creates a Postgres Builder for the given projection.
// orderBy terms order paged results.
func NewBuilder(projection *ProjectionMap, orderBy ...SortField) *Builder {
	return &Builder{
		projection: projection,
		dialect:    Postgres,
		conditions: make([]condition, 0),
		orderBy:    orderBy,
	}
}

// WithDialect switches placeholder and matching syntax.
func (b *Builder) WithDialect(d Dialect) *Builder {
	if d != "" {
		b.dialect = d
	}
	return b
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args, _ := b.buildWhere(1)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where)
	return sql, args
}

// BuildPage returns a paginated SELECT query with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args, _ := b.buildWhere(1)
	orderBy := b.buildOrderBy()
	offset := (page - 1) * pageSize

	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.Table(),
		where,
		orderBy,
		pageSize,
		offset,
	)

	return sql, args
}

// BuildSingle returns a SELECT query for a single record by ID.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	col := b.projection.Column(idField)
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = %s",
		b.projection.Columns(),
		b.projection.Table(),
		col,
		b.dialect.Placeholder(1),
	)
	return sql, []any{id}
}

// WhereContains adds a case-insensitive substring condition. LIKE metacharacters
// in value match literally. Nil or empty values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: b.dialect.contains(col),
		args:   []any{"%" + EscapeLike(*value) + "%"},
	})
	return b
}

func (b *Builder) buildOrderBy() string {
	fields := b.orderBy
	if len(fields) == 0 {
		return ""
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		terms[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(terms, ", ")
}

func (b *Builder) buildWhere(startParam int) (string, []any, int) {
	if len(b.conditions) == 0 {
		return "", nil, startParam
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	paramIdx := startParam

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, paramToken, b.dialect.Placeholder(paramIdx), 1)
			args = append(args, arg)
			paramIdx++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, paramIdx
}
