// Package catalog holds the read-only reference data the analysis needs:
// what kind of game entity each declared name is, and what every recipe
// consumes and produces.
//
// A Catalog is decoded from HCL documents containing `entity` and `recipe`
// blocks. It is built once, never mutated afterwards, and injected into the
// entity constructors, so several analyses can share one instance. Default
// returns the catalog embedded in the binary, which covers the vanilla
// logistics entities and a handful of common recipes.
package catalog
