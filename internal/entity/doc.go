/*
Package entity models the objects placed on a factory layout: transport
belts, underground belts, inserters, containers, splitters and assembling
machines.

An Entity is a closed tagged variant. Kind selects the variant and the
variant-specific fields (underground sub-kind, long-handed reach, container
kind, recipe) are only meaningful for their kind. Every switch over Kind in
this module lists all six kinds.

Each entity exposes its geometry as offsets relative to its own integer
position:

  - Footprint: the cells it occupies (a splitter covers two, an assembling
    machine nine).
  - Front: the cell a belt pushes into.
  - DropOffset / PickupOffset: where an inserter puts and takes items. The
    game stores inserter directions reversed with respect to belts, so the
    drop cell is the opposite of the belt front for the same direction.
  - DropOffsets: the two cells a splitter outputs into.
  - ReachableOutputOffsets: the cells an underground entrance searches for
    its matching exit.

The pairwise predicates CanConnectTo, CanMoveTo and CanMoveFrom decide
whether the network builder may link two neighbouring entities.
*/
package entity
