package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, s string) Record {
	t.Helper()
	var r Record
	require.NoError(t, json.Unmarshal([]byte(s), &r))
	return r
}

func TestRecordLookup(t *testing.T) {
	card := decodeRecord(t, `{
		"name": "Braids, Cabal Minion",
		"cmc": 3,
		"reserved": false,
		"color_identity": ["B"],
		"prices": {"usd": "1.25", "eur": null},
		"image_uris": {"normal": "https://img.example/n.jpg"},
		"legalities": {"commander": "legal"}
	}`)

	tests := []struct {
		name     string
		path     string
		wantKind Kind
		check    func(t *testing.T, v Value)
	}{
		{
			name:     "top level string",
			path:     "name",
			wantKind: KindString,
			check: func(t *testing.T, v Value) {
				s, ok := v.Str()
				require.True(t, ok)
				assert.Equal(t, "Braids, Cabal Minion", s)
			},
		},
		{
			name:     "number",
			path:     "cmc",
			wantKind: KindNumber,
			check: func(t *testing.T, v Value) {
				n, ok := v.Number()
				require.True(t, ok)
				assert.Equal(t, 3.0, n)
			},
		},
		{
			name:     "bool",
			path:     "reserved",
			wantKind: KindBool,
		},
		{
			name:     "sequence",
			path:     "color_identity",
			wantKind: KindSequence,
			check: func(t *testing.T, v Value) {
				seq, ok := v.Sequence()
				require.True(t, ok)
				require.Len(t, seq, 1)
				s, _ := seq[0].Str()
				assert.Equal(t, "B", s)
			},
		},
		{
			name:     "nested path",
			path:     "prices.usd",
			wantKind: KindString,
		},
		{
			name:     "nested mapping",
			path:     "legalities",
			wantKind: KindMapping,
		},
		{
			name:     "nested null is absent",
			path:     "prices.eur",
			wantKind: KindAbsent,
		},
		{
			name:     "missing top level",
			path:     "power",
			wantKind: KindAbsent,
		},
		{
			name:     "missing intermediate segment",
			path:     "purchase_uris.tcgplayer",
			wantKind: KindAbsent,
		},
		{
			name:     "missing intermediate segment deep",
			path:     "a.b.c.d.e",
			wantKind: KindAbsent,
		},
		{
			name:     "descend through a string",
			path:     "name.first",
			wantKind: KindAbsent,
		},
		{
			name:     "descend through a sequence",
			path:     "color_identity.0",
			wantKind: KindAbsent,
		},
		{
			name:     "empty path",
			path:     "",
			wantKind: KindAbsent,
		},
		{
			name:     "trailing dot",
			path:     "prices.",
			wantKind: KindAbsent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := card.Lookup(tt.path)
			assert.Equal(t, tt.wantKind, v.Kind(), "kind for %q", tt.path)
			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

func TestRecordLookup_NilRecord(t *testing.T) {
	var r Record
	assert.True(t, r.Lookup("name").IsAbsent())
}

func TestValueOf(t *testing.T) {
	assert.Equal(t, KindNumber, ValueOf(2).Kind())
	assert.Equal(t, KindNumber, ValueOf(int64(2)).Kind())
	assert.Equal(t, KindSequence, ValueOf([]string{"W", "U"}).Kind())
	assert.Equal(t, KindMapping, ValueOf(map[string]any{"a": 1.0}).Kind())
	assert.Equal(t, KindAbsent, ValueOf(nil).Kind())
	assert.Equal(t, KindAbsent, ValueOf(struct{}{}).Kind())
	assert.Equal(t, "sequence", KindSequence.String())
}

func TestMergeFirstFace(t *testing.T) {
	t.Run("face fields overwrite top level", func(t *testing.T) {
		card := decodeRecord(t, `{
			"name": "Delver of Secrets // Insectile Aberration",
			"layout": "transform",
			"prices": {"usd": "0.10"},
			"card_faces": [
				{"name": "Delver of Secrets", "type_line": "Creature — Human Wizard",
				 "image_uris": {"normal": "https://img.example/front.jpg"}},
				{"name": "Insectile Aberration"}
			]
		}`)

		merged := MergeFirstFace(card)

		name, _ := merged.Lookup("name").Str()
		assert.Equal(t, "Delver of Secrets", name)
		typeLine, _ := merged.Lookup("type_line").Str()
		assert.Equal(t, "Creature — Human Wizard", typeLine)
		img, _ := merged.Lookup("image_uris.normal").Str()
		assert.Equal(t, "https://img.example/front.jpg", img)

		// fields only the outer record has survive
		layout, _ := merged.Lookup("layout").Str()
		assert.Equal(t, "transform", layout)
		assert.False(t, merged.Lookup("prices.usd").IsAbsent())
	})

	t.Run("input record is not modified", func(t *testing.T) {
		card := decodeRecord(t, `{"name": "outer", "card_faces": [{"name": "inner"}]}`)

		_ = MergeFirstFace(card)

		name, _ := card.Lookup("name").Str()
		assert.Equal(t, "outer", name)
	})

	t.Run("no faces returns an equal copy", func(t *testing.T) {
		card := decodeRecord(t, `{"name": "Llanowar Elves"}`)

		merged := MergeFirstFace(card)
		merged["image"] = "x"

		assert.Equal(t, "Llanowar Elves", merged["name"])
		_, leaked := card["image"]
		assert.False(t, leaked)
	})

	t.Run("empty or malformed faces are ignored", func(t *testing.T) {
		for _, body := range []string{
			`{"name": "a", "card_faces": []}`,
			`{"name": "a", "card_faces": null}`,
			`{"name": "a", "card_faces": "nope"}`,
			`{"name": "a", "card_faces": ["nope"]}`,
		} {
			merged := MergeFirstFace(decodeRecord(t, body))
			name, _ := merged.Lookup("name").Str()
			assert.Equal(t, "a", name, body)
		}
	})
}
