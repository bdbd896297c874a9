package entity

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/ctxlog"
)

var (
	// ErrUnknownEntity is returned when a placement names an entity the
	// catalog does not know. The cell is treated as empty.
	ErrUnknownEntity = errors.New("entity not found in catalog")
	// ErrUnsupportedEntityType is returned for catalog types the network
	// builder has no rules for (furnaces, poles, pipes, ...).
	ErrUnsupportedEntityType = errors.New("entity type not supported")
	// ErrInvalidPlacement is returned when a placement lacks data its kind
	// requires, such as the input/output side of an underground belt.
	ErrInvalidPlacement = errors.New("invalid placement")
)

// MaxCoordinate bounds the absolute value of a placement coordinate. It is
// the edge of the largest map the game generates.
const MaxCoordinate = 1_000_000

// Kind is the entity variant discriminant.
type Kind int

const (
	TransportBelt Kind = iota + 1
	UndergroundBelt
	Inserter
	Container
	Splitter
	AssemblingMachine
)

func (k Kind) String() string {
	switch k {
	case TransportBelt:
		return "transport-belt"
	case UndergroundBelt:
		return "underground-belt"
	case Inserter:
		return "inserter"
	case Container:
		return "container"
	case Splitter:
		return "splitter"
	case AssemblingMachine:
		return "assembling-machine"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UndergroundSide tells the entrance of an underground pair from its exit.
type UndergroundSide int

const (
	Input UndergroundSide = iota + 1
	Output
)

func (s UndergroundSide) String() string {
	switch s {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return "none"
}

// ContainerKind is the logistic role of a container.
type ContainerKind int

const (
	Storage ContainerKind = iota + 1
	PassiveProvider
	ActiveProvider
	Buffer
	Requester
)

var containerKinds = map[string]ContainerKind{
	"":                 Storage,
	"storage":          Storage,
	"passive-provider": PassiveProvider,
	"active-provider":  ActiveProvider,
	"buffer":           Buffer,
	"requester":        Requester,
}

// Catalog is the read-only reference data entity construction needs.
// *catalog.Catalog implements it.
type Catalog interface {
	Entity(name string) (catalog.EntityDef, bool)
	Recipe(name string) (catalog.Recipe, bool)
}

// Placement is one placed object as described by a blueprint.
type Placement struct {
	Number    int
	Name      string
	X, Y      float64
	Direction *int
	Recipe    string
	// Side is "input" or "output" for underground belts.
	Side string
}

// Entity is a placed object on the layout grid.
type Entity struct {
	Number    int
	Name      string
	Kind      Kind
	Tier      int
	Position  Position
	Direction Direction

	// Underground belts.
	Side        UndergroundSide
	MaxDistance int

	// Inserters.
	LongHanded bool

	// Containers.
	ContainerKind ContainerKind

	// Assembling machines. Nil when no recipe is set or the recipe is unknown.
	Recipe *catalog.Recipe

	footprint []Offset
}

// New builds the entity described by a placement. Raw positions are floored
// to integer cells. Unknown names and unsupported catalog types are
// reported as errors wrapping ErrUnknownEntity and ErrUnsupportedEntityType;
// a recipe missing from the catalog is logged and the machine is built
// without one.
func New(ctx context.Context, p Placement, cat Catalog) (*Entity, error) {
	def, ok := cat.Entity(p.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, p.Name)
	}

	if !validCoordinate(p.X) || !validCoordinate(p.Y) {
		return nil, fmt.Errorf("%w: entity %d %q at (%v, %v) is off the map", ErrInvalidPlacement, p.Number, p.Name, p.X, p.Y)
	}

	dir, err := DirectionFromCode(p.Direction)
	if err != nil {
		return nil, fmt.Errorf("entity %d %q: %w", p.Number, p.Name, err)
	}

	e := &Entity{
		Number:    p.Number,
		Name:      p.Name,
		Tier:      def.Tier,
		Position:  Position{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))},
		Direction: dir,
	}

	switch def.Type {
	case catalog.TypeTransportBelt:
		e.Kind = TransportBelt
	case catalog.TypeUndergroundBelt:
		e.Kind = UndergroundBelt
		e.MaxDistance = def.MaxDistance
		switch p.Side {
		case "input":
			e.Side = Input
		case "output":
			e.Side = Output
		default:
			return nil, fmt.Errorf("%w: underground belt %d has side %q", ErrInvalidPlacement, p.Number, p.Side)
		}
	case catalog.TypeInserter:
		e.Kind = Inserter
		e.LongHanded = def.LongHanded
	case catalog.TypeContainer, catalog.TypeLogisticContainer:
		e.Kind = Container
		kind, ok := containerKinds[def.LogisticMode]
		if !ok {
			return nil, fmt.Errorf("%w: container %q has logistic mode %q", ErrInvalidPlacement, p.Name, def.LogisticMode)
		}
		e.ContainerKind = kind
	case catalog.TypeSplitter:
		e.Kind = Splitter
	case catalog.TypeAssemblingMachine:
		e.Kind = AssemblingMachine
		if p.Recipe != "" {
			if recipe, ok := cat.Recipe(p.Recipe); ok {
				e.Recipe = &recipe
			} else {
				ctxlog.FromContext(ctx).Warn("Recipe not found in catalog, machine has no purpose.",
					"entity_number", p.Number, "entity", p.Name, "recipe", p.Recipe)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q of type %q", ErrUnsupportedEntityType, p.Name, def.Type)
	}

	e.footprint = e.computeFootprint()
	return e, nil
}

func validCoordinate(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= MaxCoordinate
}

// Translate moves the entity by (dx, dy). Layouts call it once, before the
// entity is placed on a grid.
func (e *Entity) Translate(dx, dy int) {
	e.Position = e.Position.Add(Offset{dx, dy})
}

func (e *Entity) String() string {
	s := fmt.Sprintf("%d %s %s %s", e.Number, e.Name, e.Position, e.Direction)
	switch e.Kind {
	case UndergroundBelt:
		s += " " + e.Side.String()
	case AssemblingMachine:
		if e.Recipe != nil {
			s += " [" + e.Recipe.Name + "]"
		}
	case TransportBelt, Inserter, Container, Splitter:
	}
	return s
}
