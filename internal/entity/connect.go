package entity

// CanConnectTo reports whether a belt (or an underground exit acting as one)
// may feed the entity in front of it. Belts feed other belts, underground
// entrances and splitters unless the two face each other head-on.
func (e *Entity) CanConnectTo(other *Entity) bool {
	if other == nil {
		return false
	}
	switch other.Kind {
	case TransportBelt, Splitter:
		return !e.Direction.Opposes(other.Direction)
	case UndergroundBelt:
		return other.Side == Input && !e.Direction.Opposes(other.Direction)
	case Inserter, Container, AssemblingMachine:
		return false
	}
	return false
}

// CanMoveTo reports whether items can leave e into other. Inserters drop
// into anything that holds or carries items. Splitters feed belts that do
// not face them head-on, and underground entrances or splitters facing the
// same way.
func (e *Entity) CanMoveTo(other *Entity) bool {
	if other == nil {
		return false
	}
	switch e.Kind {
	case Inserter:
		return holdsItems(other)
	case Splitter:
		switch other.Kind {
		case TransportBelt:
			return !e.Direction.Opposes(other.Direction)
		case UndergroundBelt:
			return other.Side == Input && e.Direction == other.Direction
		case Splitter:
			return e.Direction == other.Direction
		case Inserter, Container, AssemblingMachine:
			return false
		}
	case TransportBelt, UndergroundBelt, Container, AssemblingMachine:
		return false
	}
	return false
}

// CanMoveFrom reports whether an inserter may pick items up from other.
func (e *Entity) CanMoveFrom(other *Entity) bool {
	if other == nil || e.Kind != Inserter {
		return false
	}
	return holdsItems(other)
}

func holdsItems(e *Entity) bool {
	switch e.Kind {
	case TransportBelt, UndergroundBelt, Container, AssemblingMachine, Splitter:
		return true
	case Inserter:
		return false
	}
	return false
}
