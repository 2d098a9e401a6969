package models

import "fmt"

const (
	// MaxResults bounds how many cards a single search may return. It keeps
	// worst-case pagination inside the host's invocation time budget.
	MaxResults = 700

	DefaultFields = "name"
	DefaultCount  = 150
	DefaultOrder  = "name"
)

// Direction is the sort direction passed to the search API
type Direction string

const (
	DirectionAuto Direction = "auto"
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Valid reports whether d is one of the directions the search API accepts
func (d Direction) Valid() bool {
	switch d {
	case DirectionAuto, DirectionAsc, DirectionDesc:
		return true
	}
	return false
}

// UniqueMode is the API-level deduplication policy
type UniqueMode string

const (
	UniqueCards  UniqueMode = "cards"
	UniqueArt    UniqueMode = "art"
	UniquePrints UniqueMode = "prints"
)

// Valid reports whether u is one of the unique modes the search API accepts
func (u UniqueMode) Valid() bool {
	switch u {
	case UniqueCards, UniqueArt, UniquePrints:
		return true
	}
	return false
}

// SearchRequest is one invocation of the card table search
type SearchRequest struct {
	Query     string
	Fields    string // raw space- or comma-delimited field spec
	Count     int
	Order     string
	Direction Direction
	Unique    UniqueMode
}

// NewSearchRequest returns a request for query with every other argument at
// its default
func NewSearchRequest(query string) SearchRequest {
	return SearchRequest{
		Query:     query,
		Fields:    DefaultFields,
		Count:     DefaultCount,
		Order:     DefaultOrder,
		Direction: DirectionAuto,
		Unique:    UniqueCards,
	}
}

// WithDefaults fills empty optional arguments. Count is left alone because
// zero is a legitimate, if unusual, request.
func (r SearchRequest) WithDefaults() SearchRequest {
	if r.Fields == "" {
		r.Fields = DefaultFields
	}
	if r.Order == "" {
		r.Order = DefaultOrder
	}
	if r.Direction == "" {
		r.Direction = DirectionAuto
	}
	if r.Unique == "" {
		r.Unique = UniqueCards
	}
	return r
}

// Validate checks the enum arguments
func (r SearchRequest) Validate() error {
	if !r.Direction.Valid() {
		return fmt.Errorf("invalid direction %q: must be auto, asc or desc", r.Direction)
	}
	if !r.Unique.Valid() {
		return fmt.Errorf("invalid unique mode %q: must be cards, art or prints", r.Unique)
	}
	return nil
}

// ClampCount limits n to MaxResults. Larger values are clamped, never rejected.
func ClampCount(n int) int {
	if n > MaxResults {
		return MaxResults
	}
	return n
}

// Row is one output line: a string or float64 cell per requested field,
// followed by the converted price
type Row []any

// Table is the result of a search, ready to be placed into a sheet range
type Table struct {
	Columns []string
	Rows    []Row
	Rate    float64
}

// Cells returns the rows as a plain 2-D slice
func (t *Table) Cells() [][]any {
	out := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = []any(r)
	}
	return out
}
