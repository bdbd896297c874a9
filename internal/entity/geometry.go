package entity

// assemblerFootprint covers the 3x3 square centred on the machine.
var assemblerFootprint = []Offset{
	{0, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, 0}, {1, -1},
	{-1, 1}, {-1, 0}, {-1, -1},
}

// splitterSecondCell is the offset of a splitter's second belt lane.
var splitterSecondCell = map[Direction]Offset{
	East:  {0, -1},
	South: {-1, 0},
	West:  {0, -1},
	North: {-1, 0},
}

// splitterDrops are the two cells a splitter outputs into.
var splitterDrops = map[Direction][2]Offset{
	East:  {{1, -1}, {1, 0}},
	South: {{-1, 1}, {0, 1}},
	West:  {{-1, -1}, {-1, 0}},
	North: {{-1, -1}, {0, -1}},
}

func (e *Entity) computeFootprint() []Offset {
	switch e.Kind {
	case AssemblingMachine:
		return append([]Offset(nil), assemblerFootprint...)
	case Splitter:
		return []Offset{{0, 0}, e.SecondCellOffset()}
	case TransportBelt, UndergroundBelt, Inserter, Container:
		return []Offset{{0, 0}}
	}
	return []Offset{{0, 0}}
}

// Footprint returns the cells the entity occupies relative to its position.
// The first offset is always the entity's own cell.
func (e *Entity) Footprint() []Offset {
	if len(e.footprint) == 0 {
		return []Offset{{0, 0}}
	}
	return append([]Offset(nil), e.footprint...)
}

// Cells returns the absolute cells covered by the footprint.
func (e *Entity) Cells() []Position {
	fp := e.Footprint()
	cells := make([]Position, len(fp))
	for i, o := range fp {
		cells[i] = e.Position.Add(o)
	}
	return cells
}

// Front is the offset of the cell a belt or underground belt feeds.
func (e *Entity) Front() Offset {
	return e.Direction.Front()
}

// DropOffset is where an inserter puts items. Inserter directions are
// recorded reversed relative to belts. Long-handed inserters reach twice as
// far.
func (e *Entity) DropOffset() Offset {
	drop := e.Direction.Front().Neg()
	if e.LongHanded {
		return drop.Scale(2)
	}
	return drop
}

// PickupOffset is where an inserter takes items from.
func (e *Entity) PickupOffset() Offset {
	return e.DropOffset().Neg()
}

// SecondCellOffset is the offset of a splitter's second cell.
func (e *Entity) SecondCellOffset() Offset {
	return splitterSecondCell[e.Direction]
}

// DropOffsets are the two cells a splitter outputs into.
func (e *Entity) DropOffsets() [2]Offset {
	return splitterDrops[e.Direction]
}

// ReachableOutputOffsets lists, nearest first, the cells an underground
// entrance may be paired with. Exits and other kinds reach nothing.
func (e *Entity) ReachableOutputOffsets() []Offset {
	if e.Kind != UndergroundBelt || e.Side != Input {
		return nil
	}
	front := e.Front()
	offsets := make([]Offset, 0, e.MaxDistance)
	for i := 1; i <= e.MaxDistance; i++ {
		offsets = append(offsets, front.Scale(i))
	}
	return offsets
}
