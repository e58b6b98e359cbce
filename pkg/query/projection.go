package query

import "strings"

// ProjectionMap maps view field names to qualified table columns.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a projection for schema.table with the given alias.
// An empty schema omits the qualifier, which SQLite requires.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers column under the view field name. Columns keep registration order.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.fields[field] = qualified
	return p
}

// Table returns the qualified table reference with its alias.
func (p *ProjectionMap) Table() string {
	if p.schema == "" {
		return p.table + " " + p.alias
	}
	return p.schema + "." + p.table + " " + p.alias
}

// Column returns the qualified column for field, or field itself when unknown.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Columns returns the projected columns as a select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}
