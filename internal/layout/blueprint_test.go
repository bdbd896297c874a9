package layout

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dir(d int) *int { return &d }

var sampleBlueprint = &Blueprint{
	Label:   "gears",
	Item:    "blueprint",
	Version: 281479275675648,
	Entities: []Placement{
		{EntityNumber: 1, Name: "assembling-machine-1", Position: Position{X: 0.5, Y: 0.5}, Recipe: "iron-gear-wheel"},
		{EntityNumber: 2, Name: "transport-belt", Position: Position{X: -1.5, Y: 0.5}, Direction: dir(2)},
		{EntityNumber: 3, Name: "underground-belt", Position: Position{X: 2.5, Y: 3.5}, Direction: dir(4), Type: "input"},
	},
}

const sampleJSON = `{
	"blueprint": {
		"label": "gears",
		"item": "blueprint",
		"version": 281479275675648,
		"entities": [
			{"entity_number": 1, "name": "assembling-machine-1", "position": {"x": 0.5, "y": 0.5}, "recipe": "iron-gear-wheel"},
			{"entity_number": 2, "name": "transport-belt", "position": {"x": -1.5, "y": 0.5}, "direction": 2},
			{"entity_number": 3, "name": "underground-belt", "position": {"x": 2.5, "y": 3.5}, "direction": 4, "type": "input"}
		]
	}
}`

const sampleYAML = `
label: gears
item: blueprint
version: 281479275675648
entities:
  - entity_number: 1
    name: assembling-machine-1
    position: {x: 0.5, y: 0.5}
    recipe: iron-gear-wheel
  - entity_number: 2
    name: transport-belt
    position: {x: -1.5, y: 0.5}
    direction: 2
  - entity_number: 3
    name: underground-belt
    position: {x: 2.5, y: 3.5}
    direction: 4
    type: input
`

func exchangeString(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return "0" + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecode(t *testing.T) {
	bareJSON := `{"label": "gears", "item": "blueprint", "version": 281479275675648, "entities": [
		{"entity_number": 1, "name": "assembling-machine-1", "position": {"x": 0.5, "y": 0.5}, "recipe": "iron-gear-wheel"},
		{"entity_number": 2, "name": "transport-belt", "position": {"x": -1.5, "y": 0.5}, "direction": 2},
		{"entity_number": 3, "name": "underground-belt", "position": {"x": 2.5, "y": 3.5}, "direction": 4, "type": "input"}
	]}`

	testCases := []struct {
		name  string
		input string
	}{
		{"wrapped json", sampleJSON},
		{"bare json", bareJSON},
		{"yaml", sampleYAML},
		{"wrapped yaml", "blueprint:\n" + indent(sampleYAML)},
		{"exchange string", exchangeString(t, sampleJSON)},
		{"exchange string with trailing newline", exchangeString(t, sampleJSON) + "\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bp, err := Decode([]byte(tc.input))
			require.NoError(t, err)
			if diff := cmp.Diff(sampleBlueprint, bp); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func indent(s string) string {
	var out bytes.Buffer
	for _, line := range bytes.Split([]byte(s), []byte("\n")) {
		if len(line) > 0 {
			out.WriteString("  ")
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.String()
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		sentinel error
		contains string
	}{
		{name: "empty", input: "  \n", sentinel: ErrEmptyBlueprint},
		{name: "blueprint book", input: `{"blueprint_book": {"blueprints": []}}`, sentinel: ErrBlueprintBook},
		{name: "compressed blueprint book", input: exchangeString(t, `{"blueprint_book": {}}`), sentinel: ErrBlueprintBook},
		{name: "bad base64", input: "0!!not-base64!!", contains: "invalid base64 payload"},
		{name: "not zlib", input: "0" + base64.StdEncoding.EncodeToString([]byte("plain text")), contains: "invalid zlib payload"},
		{name: "broken json", input: `{"blueprint": `, contains: "failed to parse blueprint document"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input))
			require.Error(t, err)
			if tc.sentinel != nil {
				assert.ErrorIs(t, err, tc.sentinel)
			}
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestDecode_InflateLimit(t *testing.T) {
	limit := maxInflatedSize
	maxInflatedSize = 1 << 10
	t.Cleanup(func() { maxInflatedSize = limit })

	doc := `{"blueprint": {"entities": [{"entity_number": 1, "name": "transport-belt", "position": {"x": 0.5, "y": 0.5}}]}}`

	t.Run("payload at the limit decodes", func(t *testing.T) {
		padded := doc + strings.Repeat(" ", int(maxInflatedSize)-len(doc))
		bp, err := Decode([]byte(exchangeString(t, padded)))
		require.NoError(t, err)
		assert.Len(t, bp.Entities, 1)
	})

	t.Run("payload past the limit is rejected", func(t *testing.T) {
		// Whitespace compresses to almost nothing, so the string stays tiny.
		bomb := exchangeString(t, doc+strings.Repeat(" ", 1<<20))
		require.Less(t, len(bomb), 4<<10)

		_, err := Decode([]byte(bomb))
		assert.ErrorIs(t, err, ErrBlueprintTooLarge)
	})
}

func TestEncode(t *testing.T) {
	s, err := Encode(sampleBlueprint)
	require.NoError(t, err)
	require.Equal(t, byte('0'), s[0])

	bp, err := Decode([]byte(s))
	require.NoError(t, err)
	if diff := cmp.Diff(sampleBlueprint, bp); diff != "" {
		t.Errorf("Decode(Encode()) mismatch (-want +got):\n%s", diff)
	}
}
