// Package network turns a grid of entities into a directed graph of nodes
// and infers which materials travel along it.
//
// Nodes live in an arena owned by the Network and are addressed by NodeID.
// The lookup table built alongside it maps every grid cell to the handle of
// the node covering it, so the nine cells of an assembling machine or the two
// cells of a splitter all resolve to one node.
//
// After Build, CalculateBottleneck starts from each assembling machine:
// parents are told to deliver the recipe ingredients and children to carry
// the results away. A transport node accepts the first purpose that reaches
// it and passes it on to its other neighbours; later purposes are ignored.
package network
