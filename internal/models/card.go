package models

import "strings"

// FacesField is the key under which multi-faced cards carry their per-face data
const FacesField = "card_faces"

// Record is one card as decoded from the search API. Values are whatever
// encoding/json produced: string, float64, bool, nil, []any or map[string]any.
type Record map[string]any

// Kind identifies which variant a Value holds
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindSequence
	KindMapping
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "absent"
	}
}

// Value is the result of resolving a field path against a Record
type Value struct {
	kind Kind
	raw  any
}

// Absent is the zero Value
var Absent = Value{}

// ValueOf classifies a decoded JSON value. Types outside the JSON model and
// JSON null are Absent.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case string:
		return Value{kind: KindString, raw: t}
	case float64:
		return Value{kind: KindNumber, raw: t}
	case int:
		return Value{kind: KindNumber, raw: float64(t)}
	case int64:
		return Value{kind: KindNumber, raw: float64(t)}
	case bool:
		return Value{kind: KindBool, raw: t}
	case []any:
		return Value{kind: KindSequence, raw: t}
	case []string:
		seq := make([]any, len(t))
		for i, s := range t {
			seq[i] = s
		}
		return Value{kind: KindSequence, raw: seq}
	case map[string]any:
		return Value{kind: KindMapping, raw: Record(t)}
	case Record:
		return Value{kind: KindMapping, raw: t}
	default:
		return Absent
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Str returns the string payload and whether the value is a string
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.kind == KindString
}

// Number returns the numeric payload and whether the value is a number
func (v Value) Number() (float64, bool) {
	n, ok := v.raw.(float64)
	return n, ok && v.kind == KindNumber
}

// Bool returns the boolean payload and whether the value is a bool
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.kind == KindBool
}

// Sequence returns the elements of a sequence value, each classified
func (v Value) Sequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	raw := v.raw.([]any)
	out := make([]Value, len(raw))
	for i, e := range raw {
		out[i] = ValueOf(e)
	}
	return out, true
}

// Mapping returns the nested record of a mapping value
func (v Value) Mapping() (Record, bool) {
	r, ok := v.raw.(Record)
	return r, ok && v.kind == KindMapping
}

// Raw returns the underlying decoded value, nil when absent
func (v Value) Raw() any {
	return v.raw
}

// Lookup resolves a dot-delimited path one segment at a time. A missing
// segment, or a non-mapping reached before the last segment, yields Absent.
func (r Record) Lookup(path string) Value {
	if r == nil || path == "" {
		return Absent
	}

	current := Value{kind: KindMapping, raw: r}
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.Mapping()
		if !ok {
			return Absent
		}
		raw, exists := m[segment]
		if !exists {
			return Absent
		}
		current = ValueOf(raw)
		if current.IsAbsent() {
			return Absent
		}
	}
	return current
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// MergeFirstFace returns a new record with the fields of the first card face
// copied over the top-level fields. Face values win on conflict; top-level
// fields the face does not carry are kept. Records without a non-empty faces
// sequence are returned as a copy, unchanged.
func MergeFirstFace(r Record) Record {
	merged := r.Clone()

	faces, ok := r.Lookup(FacesField).Sequence()
	if !ok || len(faces) == 0 {
		return merged
	}
	face, ok := faces[0].Mapping()
	if !ok {
		return merged
	}

	for k, v := range face {
		merged[k] = v
	}
	return merged
}
