package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Item slot kinds, assigned by the loaders.
const (
	ItemArmor  = "armor"
	ItemRanged = "ranged"
	ItemMelee  = "melee"
	ItemGear   = "gear"
)

// Item defines a purchasable piece of equipment. AC is meaningful only
// for armor; Damage only for weapons.
type Item struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"-"`
	Category  string `yaml:"category"` // armor: combat/street/powered; gear: tools/medical/field/...
	Cost      int    `yaml:"cost"`
	Enc       int    `yaml:"enc"`
	TechLevel int    `yaml:"tech_level"` // 0-5
	AC        int    `yaml:"ac"`
	Damage    string `yaml:"damage"`
}

// Validate checks the structural invariants of a loaded item.
//
// Postcondition: returns nil iff the item is well-formed; violations
// wrap ErrDataIntegrity.
func (i *Item) Validate() error {
	switch {
	case i.Name == "":
		return fmt.Errorf("%w: item name must not be empty", ErrDataIntegrity)
	case i.Cost < 0:
		return fmt.Errorf("%w: item %q cost must be >= 0", ErrDataIntegrity, i.Name)
	case i.Enc < 0:
		return fmt.Errorf("%w: item %q enc must be >= 0", ErrDataIntegrity, i.Name)
	case i.TechLevel < 0 || i.TechLevel > 5:
		return fmt.Errorf("%w: item %q tech_level %d out of [0, 5]", ErrDataIntegrity, i.Name, i.TechLevel)
	}
	if i.Kind == ItemArmor && i.AC < 1 {
		return fmt.Errorf("%w: armor %q must declare an AC value", ErrDataIntegrity, i.Name)
	}
	return nil
}

type armorFile struct {
	Armor []*Item `yaml:"armor"`
}

type weaponsFile struct {
	Ranged []*Item `yaml:"ranged"`
	Melee  []*Item `yaml:"melee"`
}

type gearFile struct {
	Gear []*Item `yaml:"gear"`
}

// LoadArmor reads the armor table from a single YAML file.
//
// Postcondition: every returned item has Kind == ItemArmor.
func LoadArmor(path string) ([]*Item, error) {
	var f armorFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	return tagAndValidate(f.Armor, ItemArmor, path)
}

// LoadWeapons reads the ranged and melee weapon tables from a single YAML file.
//
// Postcondition: items are tagged ItemRanged or ItemMelee by section.
func LoadWeapons(path string) (ranged, melee []*Item, err error) {
	var f weaponsFile
	if err := readYAML(path, &f); err != nil {
		return nil, nil, err
	}
	if ranged, err = tagAndValidate(f.Ranged, ItemRanged, path); err != nil {
		return nil, nil, err
	}
	if melee, err = tagAndValidate(f.Melee, ItemMelee, path); err != nil {
		return nil, nil, err
	}
	return ranged, melee, nil
}

// LoadGear reads the general gear table from a single YAML file.
//
// Postcondition: every returned item has Kind == ItemGear.
func LoadGear(path string) ([]*Item, error) {
	var f gearFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	return tagAndValidate(f.Gear, ItemGear, path)
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func tagAndValidate(items []*Item, kind, path string) ([]*Item, error) {
	for _, i := range items {
		i.Kind = kind
		if err := i.Validate(); err != nil {
			return nil, fmt.Errorf("equipment file %s: %w", path, err)
		}
	}
	return items, nil
}
