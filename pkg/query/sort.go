package query

// SortField describes a single ordering term.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}
