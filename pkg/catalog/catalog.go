package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
)

//go:embed data/catalog.yaml
var defaultData []byte

// Catalog holds the static game content: creation traits, the starter kit,
// shop stock and crafting recipes.
type Catalog struct {
	Traits  []actor.Trait  `yaml:"traits" json:"traits"`
	Starter StarterKit     `yaml:"starter_kit" json:"starterKit"`
	Shop    []actor.Item   `yaml:"shop" json:"shop"`
	Recipes []actor.Recipe `yaml:"recipes" json:"recipes"`
}

type StarterKit struct {
	Gold   int          `yaml:"gold" json:"gold"`
	Skills []string     `yaml:"skills" json:"skills"`
	Items  []actor.Item `yaml:"items" json:"items"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultData)
})

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads a catalog from a YAML file. An empty path returns Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that IDs are unique, that trait conflicts point at known
// traits, and that shop items and recipes are usable.
func (c *Catalog) Validate() error {
	var errs []string

	traitIDs := make(map[string]bool, len(c.Traits))
	counts := map[actor.Polarity]int{}
	for _, t := range c.Traits {
		if t.ID == "" || t.Name == "" {
			errs = append(errs, "trait with empty id or name")
			continue
		}
		if traitIDs[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate trait id %q", t.ID))
		}
		traitIDs[t.ID] = true
		if t.Polarity != actor.PolarityPositive && t.Polarity != actor.PolarityNegative {
			errs = append(errs, fmt.Sprintf("trait %q has invalid polarity %q", t.ID, t.Polarity))
		}
		counts[t.Polarity]++
	}
	for _, p := range []actor.Polarity{actor.PolarityPositive, actor.PolarityNegative} {
		if counts[p] < actor.TraitsPerPolarity {
			errs = append(errs, fmt.Sprintf("need at least %d %s traits, found %d", actor.TraitsPerPolarity, p, counts[p]))
		}
	}
	for _, t := range c.Traits {
		for _, other := range t.ConflictsWith {
			if !traitIDs[other] {
				errs = append(errs, fmt.Sprintf("trait %q conflicts with unknown trait %q", t.ID, other))
			}
		}
	}

	shopIDs := make(map[string]bool, len(c.Shop))
	for _, it := range c.Shop {
		if shopIDs[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate shop item %q", it.ID))
		}
		shopIDs[it.ID] = true
		if err := validateItem(it); err != "" {
			errs = append(errs, "shop: "+err)
		}
		if it.Cost <= 0 {
			errs = append(errs, fmt.Sprintf("shop item %q has no cost", it.ID))
		}
	}

	recipeIDs := make(map[string]bool, len(c.Recipes))
	for _, r := range c.Recipes {
		if recipeIDs[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate recipe %q", r.ID))
		}
		recipeIDs[r.ID] = true
		if r.RequiredLevel < 1 {
			errs = append(errs, fmt.Sprintf("recipe %q has required level %d", r.ID, r.RequiredLevel))
		}
		if len(r.Materials) == 0 {
			errs = append(errs, fmt.Sprintf("recipe %q has no materials", r.ID))
		}
		materials := make(map[string]bool, len(r.Materials))
		for _, m := range r.Materials {
			if m.Name == "" || m.Count < 1 {
				errs = append(errs, fmt.Sprintf("recipe %q has invalid material %+v", r.ID, m))
			}
			if materials[m.Name] {
				errs = append(errs, fmt.Sprintf("recipe %q lists material %q twice", r.ID, m.Name))
			}
			materials[m.Name] = true
		}
		if err := validateItem(r.Result); err != "" {
			errs = append(errs, fmt.Sprintf("recipe %q: %s", r.ID, err))
		}
	}

	for _, it := range c.Starter.Items {
		if err := validateItem(it); err != "" {
			errs = append(errs, "starter kit: "+err)
		}
	}
	if c.Starter.Gold < 0 {
		errs = append(errs, "starter kit gold is negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func validateItem(it actor.Item) string {
	if it.ID == "" || it.Name == "" {
		return fmt.Sprintf("item %q has empty id or name", it.Name)
	}
	switch it.Type {
	case actor.ItemWeapon, actor.ItemArmor, actor.ItemAccessory, actor.ItemMaterial, actor.ItemConsumable:
	default:
		return fmt.Sprintf("item %q has invalid type %q", it.ID, it.Type)
	}
	return ""
}

// Trait looks up a trait by ID.
func (c *Catalog) Trait(id string) (actor.Trait, bool) {
	i := slices.IndexFunc(c.Traits, func(t actor.Trait) bool { return t.ID == id })
	if i < 0 {
		return actor.Trait{}, false
	}
	return c.Traits[i], true
}

// ResolveTraits maps trait IDs to catalog entries, preserving order.
func (c *Catalog) ResolveTraits(ids []string) ([]actor.Trait, error) {
	out := make([]actor.Trait, 0, len(ids))
	for _, id := range ids {
		t, ok := c.Trait(strings.TrimSpace(id))
		if !ok {
			return nil, fmt.Errorf("unknown trait %q", id)
		}
		out = append(out, t)
	}
	return out, nil
}

// TraitsByPolarity returns the traits of one polarity in catalog order.
func (c *Catalog) TraitsByPolarity(p actor.Polarity) []actor.Trait {
	var out []actor.Trait
	for _, t := range c.Traits {
		if t.Polarity == p {
			out = append(out, t)
		}
	}
	return out
}

// ShopItem looks up a shop entry by item ID.
func (c *Catalog) ShopItem(id string) (actor.Item, bool) {
	i := slices.IndexFunc(c.Shop, func(it actor.Item) bool { return it.ID == id })
	if i < 0 {
		return actor.Item{}, false
	}
	return c.Shop[i], true
}

// Recipe looks up a recipe by ID.
func (c *Catalog) Recipe(id string) (actor.Recipe, bool) {
	i := slices.IndexFunc(c.Recipes, func(r actor.Recipe) bool { return r.ID == id })
	if i < 0 {
		return actor.Recipe{}, false
	}
	return c.Recipes[i], true
}

// Kit returns a copy of the starter kit for a new character.
func (c *Catalog) Kit() actor.StarterKit {
	return actor.StarterKit{
		Gold:      c.Starter.Gold,
		Skills:    slices.Clone(c.Starter.Skills),
		Inventory: slices.Clone(c.Starter.Items),
	}
}
