package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/factoryflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
entity "yellow-belt" {
  type = "transport-belt"
}

entity "tunnel" {
  type         = "underground-belt"
  tier         = 2
  max_distance = 4
}

entity "grabber" {
  type        = "inserter"
  long_handed = true
}

entity "crate" {
  type          = "logistic-container"
  logistic_mode = "requester"
}

recipe "circuit" {
  ingredient "iron" {
    amount = 1
  }
  ingredient "acid" {
    amount = 5
    kind   = fluid
  }
  result "circuit" {
    amount = 2
  }
}
`

func TestParse(t *testing.T) {
	ctx, _ := testutil.Context(t)

	c, err := Parse(ctx, []byte(sampleCatalog), "sample.hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{"crate", "grabber", "tunnel", "yellow-belt"}, c.EntityNames())
	assert.Equal(t, []string{"circuit"}, c.RecipeNames())

	testCases := []struct {
		name     string
		expected EntityDef
	}{
		{"yellow-belt", EntityDef{Name: "yellow-belt", Type: TypeTransportBelt, Tier: 1}},
		{"tunnel", EntityDef{Name: "tunnel", Type: TypeUndergroundBelt, Tier: 2, MaxDistance: 4}},
		{"grabber", EntityDef{Name: "grabber", Type: TypeInserter, Tier: 1, LongHanded: true}},
		{"crate", EntityDef{Name: "crate", Type: TypeLogisticContainer, Tier: 1, LogisticMode: "requester"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, ok := c.Entity(tc.name)
			require.True(t, ok)
			if diff := cmp.Diff(tc.expected, def); diff != "" {
				t.Errorf("entity mismatch (-want +got):\n%s", diff)
			}
		})
	}

	recipe, ok := c.Recipe("circuit")
	require.True(t, ok)
	expected := Recipe{
		Name: "circuit",
		Ingredients: []Item{
			{Name: "iron", Amount: 1, Kind: KindItem},
			{Name: "acid", Amount: 5, Kind: KindFluid},
		},
		Results: []Item{{Name: "circuit", Amount: 2, Kind: KindItem}},
	}
	if diff := cmp.Diff(expected, recipe); diff != "" {
		t.Errorf("recipe mismatch (-want +got):\n%s", diff)
	}

	_, ok = c.Entity("nope")
	assert.False(t, ok)
	_, ok = c.Recipe("nope")
	assert.False(t, ok)
}

func TestRecipeIsCopied(t *testing.T) {
	ctx, _ := testutil.Context(t)
	c, err := Parse(ctx, []byte(sampleCatalog), "sample.hcl")
	require.NoError(t, err)

	r, _ := c.Recipe("circuit")
	r.Ingredients[0].Name = "mutated"

	again, _ := c.Recipe("circuit")
	assert.Equal(t, "iron", again.Ingredients[0].Name)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		errLike string
	}{
		{
			name:    "syntax error",
			src:     `entity "a" {`,
			errLike: "failed to parse catalog",
		},
		{
			name:    "missing type attribute",
			src:     `entity "a" {}`,
			errLike: "failed to decode catalog",
		},
		{
			name:    "empty type",
			src:     `entity "a" { type = "" }`,
			errLike: "type must not be empty",
		},
		{
			name:    "underground without distance",
			src:     `entity "u" { type = "underground-belt" }`,
			errLike: "positive max_distance",
		},
		{
			name: "duplicate entity",
			src: `
entity "a" { type = "container" }
entity "a" { type = "container" }`,
			errLike: `entity "a" defined more than once`,
		},
		{
			name: "unknown item kind",
			src: `
recipe "r" {
  result "x" {
    amount = 1
    kind   = "plasma"
  }
}`,
			errLike: `unknown kind "plasma"`,
		},
		{
			name: "non-positive amount",
			src: `
recipe "r" {
  ingredient "x" { amount = 0 }
  result "y" { amount = 1 }
}`,
			errLike: "amount must be positive",
		},
		{
			name:    "recipe without result",
			src:     `recipe "r" {}`,
			errLike: "has no result",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			_, err := Parse(ctx, []byte(tc.src), "broken.hcl")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.errLike)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entities.hcl"), []byte(`
entity "belt" {
  type = "transport-belt"
}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipes.hcl"), []byte(`
recipe "gear" {
  ingredient "plate" { amount = 2 }
  result "gear" { amount = 1 }
}`), 0o644))

	t.Run("directory", func(t *testing.T) {
		c, err := Load(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"belt"}, c.EntityNames())
		assert.Equal(t, []string{"gear"}, c.RecipeNames())
	})

	t.Run("duplicates across files", func(t *testing.T) {
		_, err := Load(ctx, dir, filepath.Join(dir, "entities.hcl"))
		assert.ErrorContains(t, err, `entity "belt" defined more than once`)
	})

	t.Run("no paths", func(t *testing.T) {
		_, err := Load(ctx)
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Same(t, c, Default())

	belt, ok := c.Entity("transport-belt")
	require.True(t, ok)
	assert.Equal(t, TypeTransportBelt, belt.Type)

	ug, ok := c.Entity("express-underground-belt")
	require.True(t, ok)
	assert.Equal(t, 9, ug.MaxDistance)

	arm, ok := c.Entity("long-handed-inserter")
	require.True(t, ok)
	assert.True(t, arm.LongHanded)

	gear, ok := c.Recipe("iron-gear-wheel")
	require.True(t, ok)
	require.Len(t, gear.Ingredients, 1)
	assert.Equal(t, "iron-plate", gear.Ingredients[0].Name)

	pu, ok := c.Recipe("processing-unit")
	require.True(t, ok)
	assert.Equal(t, KindFluid, pu.Ingredients[2].Kind)
}

func TestItemSame(t *testing.T) {
	a := Item{Name: "iron-plate", Amount: 2}
	b := Item{Name: "iron-plate", Amount: 7, Kind: KindFluid}
	c := Item{Name: "copper-plate", Amount: 2}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
	assert.Equal(t, "iron-plate (2)", a.String())
}
