package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/factoryflow/internal/ctxlog"
	"github.com/specialistvlad/factoryflow/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

//go:embed default.hcl
var defaultSource []byte

// hclCatalogFile is the top-level structure of a catalog file for decoding.
type hclCatalogFile struct {
	Entities []*hclEntity `hcl:"entity,block"`
	Recipes  []*hclRecipe `hcl:"recipe,block"`
}

type hclEntity struct {
	Name         string  `hcl:"name,label"`
	Type         string  `hcl:"type"`
	Tier         *int    `hcl:"tier,optional"`
	MaxDistance  *int    `hcl:"max_distance,optional"`
	LongHanded   *bool   `hcl:"long_handed,optional"`
	LogisticMode *string `hcl:"logistic_mode,optional"`
}

type hclRecipe struct {
	Name        string     `hcl:"name,label"`
	Ingredients []*hclItem `hcl:"ingredient,block"`
	Results     []*hclItem `hcl:"result,block"`
}

type hclItem struct {
	Name   string  `hcl:"name,label"`
	Amount float64 `hcl:"amount"`
	Kind   *string `hcl:"kind,optional"`
}

// evalContext lets catalog files write `kind = fluid` instead of a quoted string.
var evalContext = &hcl.EvalContext{
	Variables: map[string]cty.Value{
		"item":  cty.StringVal(string(KindItem)),
		"fluid": cty.StringVal(string(KindFluid)),
	},
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(ctxlog.Discard(context.Background()), defaultSource, "default.hcl")
})

// Default returns the catalog embedded in the binary. The embedded document
// is covered by tests, so a decode failure here is a build defect.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes a single HCL catalog document.
func Parse(ctx context.Context, src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	c := newCatalog()
	if err := c.decode(ctx, file, filename); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads every .hcl file found at the given paths (files or
// directories) into one catalog. A name defined twice, in the same file or
// across files, is an error.
func Load(ctx context.Context, paths ...string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	if len(paths) == 0 {
		return nil, errors.New("no catalog paths given")
	}

	parser := hclparse.NewParser()
	c := newCatalog()
	for _, root := range paths {
		files, err := fsutil.FindFilesByExtension(root, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find catalog files in %s: %w", root, err)
		}
		if len(files) == 0 {
			logger.Warn("No .hcl catalog files found in path.", "path", root)
			continue
		}
		for _, filename := range files {
			file, diags := parser.ParseHCLFile(filename)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
			}
			if err := c.decode(ctx, file, filename); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Catalog loaded.", "entities", len(c.entities), "recipes", len(c.recipes))
	return c, nil
}

// decode merges the blocks of one parsed file into the catalog.
func (c *Catalog) decode(ctx context.Context, file *hcl.File, filename string) error {
	logger := ctxlog.FromContext(ctx).With("file", filename)

	var doc hclCatalogFile
	if diags := gohcl.DecodeBody(file.Body, evalContext, &doc); diags.HasErrors() {
		return fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	var errs []string
	for _, e := range doc.Entities {
		def, err := translateEntity(e)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if _, exists := c.entities[def.Name]; exists {
			errs = append(errs, fmt.Sprintf("entity %q defined more than once", def.Name))
			continue
		}
		c.entities[def.Name] = def
	}
	for _, r := range doc.Recipes {
		recipe, err := translateRecipe(r)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if _, exists := c.recipes[recipe.Name]; exists {
			errs = append(errs, fmt.Sprintf("recipe %q defined more than once", recipe.Name))
			continue
		}
		c.recipes[recipe.Name] = recipe
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog %s:\n- %s", filename, strings.Join(errs, "\n- "))
	}
	logger.Debug("Catalog file decoded.", "entities", len(doc.Entities), "recipes", len(doc.Recipes))
	return nil
}

func translateEntity(e *hclEntity) (EntityDef, error) {
	def := EntityDef{Name: e.Name, Type: e.Type, Tier: 1}
	if def.Type == "" {
		return def, fmt.Errorf("entity %q: type must not be empty", e.Name)
	}
	if e.Tier != nil {
		if *e.Tier < 1 {
			return def, fmt.Errorf("entity %q: tier must be at least 1", e.Name)
		}
		def.Tier = *e.Tier
	}
	if e.MaxDistance != nil {
		def.MaxDistance = *e.MaxDistance
	}
	if def.Type == TypeUndergroundBelt && def.MaxDistance < 1 {
		return def, fmt.Errorf("entity %q: underground belts need a positive max_distance", e.Name)
	}
	if e.LongHanded != nil {
		def.LongHanded = *e.LongHanded
	}
	if e.LogisticMode != nil {
		def.LogisticMode = *e.LogisticMode
	}
	return def, nil
}

func translateRecipe(r *hclRecipe) (Recipe, error) {
	recipe := Recipe{Name: r.Name}
	for _, in := range r.Ingredients {
		item, err := translateItem(in)
		if err != nil {
			return recipe, fmt.Errorf("recipe %q ingredient: %w", r.Name, err)
		}
		recipe.Ingredients = append(recipe.Ingredients, item)
	}
	for _, out := range r.Results {
		item, err := translateItem(out)
		if err != nil {
			return recipe, fmt.Errorf("recipe %q result: %w", r.Name, err)
		}
		recipe.Results = append(recipe.Results, item)
	}
	if len(recipe.Results) == 0 {
		return recipe, fmt.Errorf("recipe %q has no result", r.Name)
	}
	return recipe, nil
}

func translateItem(i *hclItem) (Item, error) {
	item := Item{Name: i.Name, Amount: i.Amount, Kind: KindItem}
	if !(i.Amount > 0) {
		return item, fmt.Errorf("%q: amount must be positive", i.Name)
	}
	if i.Kind != nil {
		switch ItemKind(*i.Kind) {
		case KindItem, KindFluid:
			item.Kind = ItemKind(*i.Kind)
		default:
			return item, fmt.Errorf("%q: unknown kind %q", i.Name, *i.Kind)
		}
	}
	return item, nil
}
