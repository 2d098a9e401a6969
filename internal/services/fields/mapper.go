package fields

import (
	"regexp"

	"github.com/killallgit/cardsheet-api/internal/models"
)

// fieldAliases maps user-facing field names to canonical card field paths
var fieldAliases = map[string]string{
	"color":  "color_identity",
	"colors": "color_identity",
	"flavor": "flavor_text",
	"mana":   "mana_cost",
	"o":      "oracle_text",
	"oracle": "oracle_text",
	"price":  "prices.usd",
	"type":   "type_line",
	"uri":    "scryfall_uri",
	"url":    "scryfall_uri",
}

// orderAliases maps user-facing sort options to the API's sort keys
var orderAliases = map[string]string{
	"price":      "usd",
	"prices.eur": "eur",
	"prices.usd": "usd",
}

var separators = regexp.MustCompile(`[\s,]+`)

// Mapper translates field and order aliases. The tables it reads are never
// written after package initialization.
type Mapper struct {
	fields map[string]string
	orders map[string]string
}

// NewMapper returns a Mapper over the built-in alias tables
func NewMapper() *Mapper {
	return &Mapper{fields: fieldAliases, orders: orderAliases}
}

// ParseFields splits a space- or comma-delimited field spec. Empty tokens are
// dropped and order is kept. A spec with no tokens yields the default field.
func (m *Mapper) ParseFields(spec string) []string {
	var out []string
	for _, tok := range separators.Split(spec, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return []string{models.DefaultFields}
	}
	return out
}

// MapField returns the canonical path for name, or name when it has no alias
func (m *Mapper) MapField(name string) string {
	if canonical, ok := m.fields[name]; ok {
		return canonical
	}
	return name
}

// MapFields maps every name in order
func (m *Mapper) MapFields(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = m.MapField(n)
	}
	return out
}

// MapOrder returns the canonical sort key for order, or order when it has no alias
func (m *Mapper) MapOrder(order string) string {
	if canonical, ok := m.orders[order]; ok {
		return canonical
	}
	return order
}

// Resolve parses a raw field spec and maps each token
func (m *Mapper) Resolve(spec string) []string {
	return m.MapFields(m.ParseFields(spec))
}
