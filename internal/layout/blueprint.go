package layout

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/specialistvlad/factoryflow/internal/entity"
	"gopkg.in/yaml.v3"
)

// exchangeVersion is the leading byte of every blueprint exchange string.
const exchangeVersion = '0'

// maxInflatedSize caps the decompressed JSON of an exchange string at
// 64 MiB, far above the largest blueprints the game produces.
var maxInflatedSize int64 = 64 << 20

var (
	// ErrEmptyBlueprint is returned when a blueprint holds no usable entity.
	ErrEmptyBlueprint = errors.New("blueprint has no entities")
	// ErrBlueprintBook is returned for blueprint books, which hold several
	// layouts instead of one.
	ErrBlueprintBook = errors.New("blueprint books are not supported")
	// ErrBlueprintTooLarge is returned when an exchange string inflates past
	// maxInflatedSize.
	ErrBlueprintTooLarge = errors.New("blueprint too large")
)

// Blueprint is a decoded layout document.
type Blueprint struct {
	Label    string      `yaml:"label,omitempty" json:"label,omitempty"`
	Item     string      `yaml:"item,omitempty" json:"item,omitempty"`
	Version  int64       `yaml:"version,omitempty" json:"version,omitempty"`
	Entities []Placement `yaml:"entities" json:"entities"`
}

// Placement is one entity record of a blueprint document.
type Placement struct {
	EntityNumber int      `yaml:"entity_number" json:"entity_number"`
	Name         string   `yaml:"name" json:"name"`
	Position     Position `yaml:"position" json:"position"`
	Direction    *int     `yaml:"direction,omitempty" json:"direction,omitempty"`
	Recipe       string   `yaml:"recipe,omitempty" json:"recipe,omitempty"`
	// Type is "input" or "output" on underground belts.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// Position is the raw, possibly fractional, placement position.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (p Placement) toEntity() entity.Placement {
	return entity.Placement{
		Number:    p.EntityNumber,
		Name:      p.Name,
		X:         p.Position.X,
		Y:         p.Position.Y,
		Direction: p.Direction,
		Recipe:    p.Recipe,
		Side:      p.Type,
	}
}

// document is the wrapper the game puts around exported layouts.
type document struct {
	Blueprint *Blueprint     `yaml:"blueprint" json:"blueprint"`
	Book      map[string]any `yaml:"blueprint_book" json:"blueprint_book"`
}

// Decode reads a blueprint from an exchange string, from its decompressed
// JSON (wrapped in {"blueprint": ...} or bare), or from the same document
// written as YAML.
func Decode(data []byte) (*Blueprint, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyBlueprint
	}

	if data[0] == exchangeVersion {
		inflated, err := inflate(data[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to decode blueprint string: %w", err)
		}
		data = bytes.TrimSpace(inflated)
		if len(data) == 0 {
			return nil, ErrEmptyBlueprint
		}
	}

	var doc document
	if err := unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Book != nil {
		return nil, ErrBlueprintBook
	}
	if doc.Blueprint != nil {
		return doc.Blueprint, nil
	}

	var bp Blueprint
	if err := unmarshal(data, &bp); err != nil {
		return nil, err
	}
	return &bp, nil
}

// unmarshal parses JSON payloads with encoding/json, which tolerates the
// tab indentation some exporters emit, and everything else as YAML.
func unmarshal(data []byte, v any) error {
	var err error
	if data[0] == '{' {
		err = json.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to parse blueprint document: %w", err)
	}
	return nil
}

// Encode renders the blueprint as an exchange string.
func Encode(bp *Blueprint) (string, error) {
	body, err := json.Marshal(map[string]*Blueprint{"blueprint": bp})
	if err != nil {
		return "", fmt.Errorf("failed to marshal blueprint: %w", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return "", fmt.Errorf("failed to compress blueprint: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress blueprint: %w", err)
	}
	return string(exchangeVersion) + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func inflate(encoded []byte) ([]byte, error) {
	compressed := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(compressed, encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed[:n]))
	if err != nil {
		return nil, fmt.Errorf("invalid zlib payload: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxInflatedSize+1))
	if err != nil {
		return nil, fmt.Errorf("invalid zlib payload: %w", err)
	}
	if int64(len(out)) > maxInflatedSize {
		return nil, fmt.Errorf("%w: inflates past %d bytes", ErrBlueprintTooLarge, maxInflatedSize)
	}
	return out, nil
}
