package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/killallgit/cardsheet-api/internal/models"
)

const (
	// ImageField is the synthetic field holding the sheet image formula
	ImageField = "image"

	legalitiesField = "legalities"
	priceField      = "prices.usd"
	imageURLField   = "image_uris.normal"
)

// DefaultLegalityFormats are the formats listed in a legalities cell
var DefaultLegalityFormats = []string{"commander", "pioneer"}

// Normalizer turns raw card records into display rows
type Normalizer struct {
	formats []string
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithLegalityFormats replaces the formats listed in a legalities cell
func WithLegalityFormats(formats ...string) Option {
	return func(n *Normalizer) {
		var kept []string
		for _, f := range formats {
			if f = strings.TrimSpace(f); f != "" {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			n.formats = kept
		}
	}
}

// New creates a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{formats: DefaultLegalityFormats}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Formats returns the configured legality formats
func (n *Normalizer) Formats() []string {
	return n.formats
}

// Normalize renders one row: a cell per field, in order, then the USD price
// converted with rate. It never fails; anything it cannot resolve renders as
// an empty cell.
func (n *Normalizer) Normalize(record models.Record, fields []string, rate float64) models.Row {
	card := models.MergeFirstFace(record)
	withImage(card)

	row := make(models.Row, 0, len(fields)+1)
	for _, field := range fields {
		if field == legalitiesField {
			row = append(row, doubleNewlines(FormatLegalities(card.Lookup(field), n.formats)))
			continue
		}
		row = append(row, render(field, card.Lookup(field)))
	}

	return append(row, convertedPrice(card.Lookup(priceField), rate))
}

// withImage stores the image formula on card, or clears the field when the
// card has no normal-size image
func withImage(card models.Record) {
	url, ok := card.Lookup(imageURLField).Str()
	if !ok || url == "" {
		delete(card, ImageField)
		return
	}
	card[ImageField] = fmt.Sprintf(`=IMAGE("%s", 4, 340, 244)`, url)
}

// FormatLegalities lists one "Format: status" line per format, in order.
// Formats absent from legalities read "unknown".
func FormatLegalities(legalities models.Value, formats []string) string {
	table, _ := legalities.Mapping()

	lines := make([]string, len(formats))
	for i, format := range formats {
		status, ok := table.Lookup(format).Str()
		if !ok || status == "" {
			status = "unknown"
		}
		lines[i] = fmt.Sprintf("%s: %s", capitalize(format), status)
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// render converts a resolved value to a cell. Numbers stay numeric so the
// sheet can do arithmetic on them. Zero and false render as empty cells.
func render(path string, v models.Value) any {
	switch v.Kind() {
	case models.KindString:
		s, _ := v.Str()
		return doubleNewlines(s)
	case models.KindNumber:
		f, _ := v.Number()
		if f == 0 {
			return ""
		}
		return f
	case models.KindBool:
		if b, _ := v.Bool(); b {
			return "true"
		}
		return ""
	case models.KindSequence:
		elems, _ := v.Sequence()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = element(e)
		}
		sep := ", "
		if strings.Contains(path, "color") {
			sep = ""
		}
		return strings.Join(parts, sep)
	case models.KindMapping:
		return compactJSON(v.Raw())
	default:
		return ""
	}
}

// element renders one sequence member as text
func element(v models.Value) string {
	switch v.Kind() {
	case models.KindString:
		s, _ := v.Str()
		return s
	case models.KindNumber:
		f, _ := v.Number()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case models.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case models.KindSequence, models.KindMapping:
		return compactJSON(v.Raw())
	default:
		return ""
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func doubleNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\n")
}

// convertedPrice multiplies the USD price by rate. A missing or unparseable
// price counts as zero.
func convertedPrice(usd models.Value, rate float64) float64 {
	price := decimal.Zero
	switch usd.Kind() {
	case models.KindString:
		s, _ := usd.Str()
		if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
			price = d
		}
	case models.KindNumber:
		f, _ := usd.Number()
		price = decimal.NewFromFloat(f)
	}
	return price.Mul(decimal.NewFromFloat(rate)).InexactFloat64()
}
