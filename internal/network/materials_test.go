package network

import (
	"testing"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialsOutput_UnresolvedRingTerminates(t *testing.T) {
	f := newFixture(t, 5, 5)
	belts := f.ring(5)
	nw := f.build()

	for _, b := range belts {
		assert.Empty(t, nw.MaterialsOutput(nodeOf(t, nw, b).ID))
	}
}

func TestMaterialsOutput_RingFedByMachine(t *testing.T) {
	// A 2x2 belt ring with an inserter at (2, 0) taking gears from the
	// machine at (4, 1) and dropping them onto the ring at (1, 0).
	f := newFixture(t, 6, 3)
	belts := f.ring(2)
	f.inserter(2, 0, entity.East)
	f.machine(4, 1, "gear")
	nw := f.build()
	require.Len(t, nw.Cycles(), 1)

	for _, b := range belts {
		assert.Equal(t, []string{"iron-gear-wheel"}, itemNames(nw.MaterialsOutput(nodeOf(t, nw, b).ID)), "belt %s", b)
	}
}

func TestMaterialsOutput_MergesParentsByName(t *testing.T) {
	// Two belts carrying the same plates and one carrying coal side-load
	// onto a belt at (1, 1).
	f := newFixture(t, 3, 3)
	left := f.belt(0, 1, entity.East)
	top := f.belt(1, 0, entity.South)
	right := f.belt(2, 1, entity.West)
	mid := f.belt(1, 1, entity.South)
	nw := f.build()

	midNode := nodeOf(t, nw, mid)
	require.Len(t, midNode.Parents(), 3)

	nw.SetPurpose(f.ctx, nodeOf(t, nw, left).ID, []catalog.Item{item("iron-plate", 1)}, midNode.ID)
	nw.SetPurpose(f.ctx, nodeOf(t, nw, top).ID, []catalog.Item{item("iron-plate", 5)}, midNode.ID)
	nw.SetPurpose(f.ctx, nodeOf(t, nw, right).ID, []catalog.Item{item("coal", 1)}, midNode.ID)

	assert.False(t, midNode.Purpose().IsResolved())
	// Parents are linked in sweep order, so the top belt comes first.
	got := nw.MaterialsOutput(midNode.ID)
	assert.Equal(t, []catalog.Item{item("iron-plate", 5), item("coal", 1)}, got)
}

func TestMaterialsOutput_ResolvedWins(t *testing.T) {
	f, in, _, m := gearLine(t)
	nw := f.build()
	nw.CalculateBottleneck(f.ctx)

	assert.Equal(t, []string{"iron-plate"}, itemNames(nw.MaterialsOutput(nodeOf(t, nw, in).ID)))
	assert.Equal(t, []string{"iron-gear-wheel"}, itemNames(nw.MaterialsOutput(nodeOf(t, nw, m).ID)))
	assert.Nil(t, nw.MaterialsOutput(NoNode))
}
