// Package layout decodes blueprints and lays their entities out on an
// integer grid.
//
// Blueprints arrive as game exchange strings, as the JSON those strings
// carry, or as an equivalent YAML document. The resulting Grid is the
// surface the network builder walks: each cell holds the entity covering
// it, so a 3x3 assembling machine appears in nine cells.
package layout
