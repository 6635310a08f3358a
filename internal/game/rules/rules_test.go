package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const warriorYAML = `name: Warrior
description: A trained fighter.
hit_dice: 1d6+2
skill_points_base: 3
foci_count: 1
bonus_focus: combat
attack_bonus: 1
base_credits: 1500
combat_priority: true
power: normal
priority_skills:
  - Shoot
  - Stab
saving_throws:
  physical: 14
  evasion: 15
  mental: 16
`

const pacterYAML = `name: Pacter
description: A binder of shadows.
hit_dice: 1d6
skill_points_base: 2
foci_count: 1
attack_bonus: 0
base_credits: 1000
combat_priority: false
power: magic
tradition: Pacter
priority_skills:
  - Know Magic
saving_throws:
  physical: 16
  evasion: 15
  mental: 14
`

func TestClassValidate(t *testing.T) {
	base := func() *Class {
		return &Class{
			Name:            "Warrior",
			HitDice:         "1d6+2",
			SkillPointsBase: 3,
			FociCount:       1,
			BaseCredits:     1500,
			Power:           PowerNone,
		}
	}

	t.Run("valid class passes", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("credits outside range fail", func(t *testing.T) {
		c := base()
		c.BaseCredits = 500
		require.ErrorIs(t, c.Validate(), ErrDataIntegrity)
		c.BaseCredits = 2500
		require.ErrorIs(t, c.Validate(), ErrDataIntegrity)
	})

	t.Run("magic class requires tradition", func(t *testing.T) {
		c := base()
		c.Power = PowerSpellcasting
		require.ErrorIs(t, c.Validate(), ErrDataIntegrity)
		c.Tradition = "Pacter"
		require.NoError(t, c.Validate())
	})

	t.Run("special class requires track", func(t *testing.T) {
		c := base()
		c.Power = PowerTrack
		require.ErrorIs(t, c.Validate(), ErrDataIntegrity)
		c.Track = "Sunblade"
		require.NoError(t, c.Validate())
	})

	t.Run("unknown power kind fails", func(t *testing.T) {
		c := base()
		c.Power = PowerKind("divine")
		require.ErrorIs(t, c.Validate(), ErrDataIntegrity)
	})

	t.Run("unparseable hit dice fail", func(t *testing.T) {
		c := base()
		c.HitDice = "d6+kh"
		require.ErrorIs(t, c.Validate(), ErrDataIntegrity)
	})
}

func TestLoadClasses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "warrior.yaml"), warriorYAML)
	writeFile(t, filepath.Join(dir, "pacter.yaml"), pacterYAML)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	classes, err := LoadClasses(dir)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	// Lexical file order: pacter.yaml before warrior.yaml.
	assert.Equal(t, "Pacter", classes[0].Name)
	assert.Equal(t, "Warrior", classes[1].Name)

	w := classes[1]
	assert.Equal(t, PowerNone, w.Capability().Kind)
	assert.Equal(t, 1500, w.BaseCredits)
	assert.True(t, w.CombatPriority)
	assert.Equal(t, []string{"Shoot", "Stab"}, w.PrioritySkills)
	assert.Equal(t, SavingThrows{Physical: 14, Evasion: 15, Mental: 16}, w.SavingThrows)

	expr := w.HitDiceExpr()
	assert.Equal(t, 1, expr.Count)
	assert.Equal(t, 6, expr.Sides)
	assert.Equal(t, 2, expr.Modifier)

	p := classes[0]
	require.Equal(t, PowerSpellcasting, p.Capability().Kind)
	assert.Equal(t, "Pacter", p.Capability().Tradition)
}

func TestLoadClassesRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "name: Broken\nhit_dice: nope\nskill_points_base: 2\nbase_credits: 1000\npower: normal\n")

	_, err := LoadClasses(dir)
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestLoadBackgrounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backgrounds.yaml")
	writeFile(t, path, `backgrounds:
  - name: Soldier
    description: Served in a planetary military.
    free_skill: Shoot
    quick_skills: [Shoot, Exert, AnyCombat]
  - name: Scholar
    free_skill: Know
    quick_skills: [Know, Administer, AnySkill]
`)

	bgs, err := LoadBackgrounds(path)
	require.NoError(t, err)
	require.Len(t, bgs, 2)
	assert.Equal(t, "Shoot", bgs[0].FreeSkill)
	assert.Equal(t, []string{"Shoot", "Exert", AnyCombat}, bgs[0].QuickSkills)
	assert.Equal(t, AnySkill, bgs[1].QuickSkills[2])
}

func TestLoadBackgroundsRequiresThreeQuickSkills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backgrounds.yaml")
	writeFile(t, path, `backgrounds:
  - name: Drifter
    free_skill: Sneak
    quick_skills: [Sneak, Notice]
`)

	_, err := LoadBackgrounds(path)
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestLoadTraditions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pacter.yaml"), `tradition: Pacter
style: fixed
spells:
  - name: Accursed Brand
    level: 1
    effect: Marks a target for a shadow.
  - name: Ruinous Pact
    level: 2
    effect: Trades vitality for power.
`)

	trads, err := LoadTraditions(dir)
	require.NoError(t, err)
	require.Len(t, trads, 1)

	p := trads[0]
	assert.Equal(t, "Pacter", p.Name)
	assert.Equal(t, TraditionFixed, p.Style)
	require.Len(t, p.SpellsAtLevel(1), 1)
	assert.Equal(t, "Accursed Brand", p.SpellsAtLevel(1)[0].Name)
	assert.Empty(t, p.SpellsAtLevel(5))
}

func TestTraditionValidate(t *testing.T) {
	tr := &Tradition{Name: "Arcanist", Style: "open", Spells: []*Spell{{Name: "Zap", Level: 6}}}
	require.ErrorIs(t, tr.Validate(), ErrDataIntegrity)

	tr.Spells[0].Level = 5
	require.NoError(t, tr.Validate())

	tr.Style = "prepared"
	require.ErrorIs(t, tr.Validate(), ErrDataIntegrity)
}

func TestLoadDisciplines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disciplines.yaml")
	writeFile(t, path, `disciplines:
  - name: Telepathy
    description: Mind to mind contact.
    core_technique:
      name: Telepathic Contact
      level: 0
      effort_cost: 0
    techniques:
      - name: Surface Thoughts
        level: 1
      - name: Deep Scan
        level: 2
`)

	discs, err := LoadDisciplines(path)
	require.NoError(t, err)
	require.Len(t, discs, 1)

	d := discs[0]
	assert.Equal(t, "Telepathic Contact", d.CoreTechnique.Name)
	require.Len(t, d.TechniquesAtLevel(1), 1)
	assert.Equal(t, "Surface Thoughts", d.TechniquesAtLevel(1)[0].Name)
	assert.Len(t, d.TechniquesUpTo(2), 2)
	assert.Empty(t, d.TechniquesAtLevel(4))
}

func TestFocusCompatibility(t *testing.T) {
	sniper := &Focus{Name: "Sniper's Eye", Combat: true, IncompatibleWith: []string{"Gunslinger"}}
	gunslinger := &Focus{Name: "Gunslinger", Combat: true}
	healer := &Focus{Name: "Healer"}

	assert.False(t, sniper.CompatibleWith(sniper), "a focus is never compatible with itself")
	assert.False(t, sniper.CompatibleWith(gunslinger))
	assert.False(t, gunslinger.CompatibleWith(sniper), "incompatibility is mutual")
	assert.True(t, sniper.CompatibleWith(healer))
}

func TestLoadWeaponsTagsSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weapons.yaml")
	writeFile(t, path, `ranged:
  - name: Laser Pistol
    cost: 200
    enc: 1
    tech_level: 4
    damage: 1d6
melee:
  - name: Knife
    cost: 2
    enc: 1
    tech_level: 0
    damage: 1d4
`)

	ranged, melee, err := LoadWeapons(path)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	require.Len(t, melee, 1)
	assert.Equal(t, ItemRanged, ranged[0].Kind)
	assert.Equal(t, ItemMelee, melee[0].Kind)
}

func TestItemValidate(t *testing.T) {
	armor := &Item{Name: "Shield Belt", Kind: ItemArmor, Cost: 500, TechLevel: 5}
	require.ErrorIs(t, armor.Validate(), ErrDataIntegrity, "armor without AC is rejected")

	armor.AC = 13
	require.NoError(t, armor.Validate())

	armor.TechLevel = 6
	require.ErrorIs(t, armor.Validate(), ErrDataIntegrity)
}

func TestTrackValidate(t *testing.T) {
	t.Run("automatic needs abilities", func(t *testing.T) {
		tk := &Track{Name: "Godhunter", Mode: TrackAutomatic}
		require.ErrorIs(t, tk.Validate(), ErrDataIntegrity)

		tk.Level1Abilities = []*TrackAbility{{Name: "Chosen Foe", Level: 1}}
		require.NoError(t, tk.Validate())
	})

	t.Run("selection needs a pool", func(t *testing.T) {
		tk := &Track{Name: "Sunblade", Mode: TrackEvenSelection}
		require.ErrorIs(t, tk.Validate(), ErrDataIntegrity)

		tk.Selectable = []*TrackAbility{{Name: "Burning Stroke", Level: 2}}
		require.NoError(t, tk.Validate())
	})

	t.Run("effort rule needs two attributes", func(t *testing.T) {
		tk := &Track{
			Name:       "Sunblade",
			Mode:       TrackEvenSelection,
			Selectable: []*TrackAbility{{Name: "Burning Stroke", Level: 2}},
			Effort:     &EffortRule{Attributes: []string{"WIS"}},
		}
		require.ErrorIs(t, tk.Validate(), ErrDataIntegrity)

		tk.Effort.Attributes = []string{"WIS", "CHA"}
		require.NoError(t, tk.Validate())
	})

	t.Run("effort attributes must be canonical", func(t *testing.T) {
		tk := &Track{
			Name:       "Sunblade",
			Mode:       TrackEvenSelection,
			Selectable: []*TrackAbility{{Name: "Burning Stroke", Level: 2}},
			Effort:     &EffortRule{Attributes: []string{"WIS", "LCK"}},
		}
		require.ErrorIs(t, tk.Validate(), ErrDataIntegrity)
	})

	t.Run("selectable abilities must be named", func(t *testing.T) {
		tk := &Track{
			Name:       "Sunblade",
			Mode:       TrackEvenSelection,
			Selectable: []*TrackAbility{{Level: 2}},
		}
		require.ErrorIs(t, tk.Validate(), ErrDataIntegrity)
	})
}

func testTables() StoreTables {
	return StoreTables{
		Classes: []*Class{
			{Name: "Warrior", HitDice: "1d6+2", SkillPointsBase: 3, BaseCredits: 1500, Power: PowerNone, CombatPriority: true},
			{Name: "Pacter", HitDice: "1d6", SkillPointsBase: 2, BaseCredits: 1000, Power: PowerSpellcasting, Tradition: "Pacter"},
			{Name: "Sunblade", HitDice: "1d6+2", SkillPointsBase: 2, BaseCredits: 1500, Power: PowerTrack, Track: "Sunblade"},
		},
		Backgrounds: []*Background{
			{Name: "Soldier", FreeSkill: "Shoot", QuickSkills: []string{"Shoot", "Exert", AnyCombat}},
		},
		Skills: []*Skill{
			{Name: "Shoot", Combat: true},
			{Name: "Stab", Combat: true},
			{Name: "Exert"},
			{Name: "Notice"},
		},
		Disciplines: []*Discipline{
			{Name: "Telepathy", CoreTechnique: Technique{Name: "Telepathic Contact"}},
		},
		Traditions: []*Tradition{
			{Name: "Pacter", Style: TraditionFixed},
		},
		Tracks: []*Track{
			{Name: "Sunblade", Mode: TrackEvenSelection, Selectable: []*TrackAbility{{Name: "Burning Stroke", Level: 2}}},
		},
		Names: &NameTable{First: []string{"Arn"}, Last: []string{"Vasek"}},
	}
}

func TestStoreLookups(t *testing.T) {
	store, err := NewStore(testTables())
	require.NoError(t, err)

	t.Run("lookups are case-insensitive", func(t *testing.T) {
		c, err := store.Class("wArRiOr")
		require.NoError(t, err)
		assert.Equal(t, "Warrior", c.Name)

		b, err := store.Background("SOLDIER")
		require.NoError(t, err)
		assert.Equal(t, "Soldier", b.Name)
	})

	t.Run("misses wrap the sentinel", func(t *testing.T) {
		_, err := store.Class("Mystic")
		require.ErrorIs(t, err, ErrUnknownClassOrTradition)
		_, err = store.Tradition("Necromancer")
		require.ErrorIs(t, err, ErrUnknownClassOrTradition)
		_, err = store.Track("Voidwalker")
		require.ErrorIs(t, err, ErrUnknownClassOrTradition)
		_, err = store.Discipline("Pyrokinesis")
		require.ErrorIs(t, err, ErrUnknownClassOrTradition)
	})

	t.Run("name lists preserve load order", func(t *testing.T) {
		assert.Equal(t, []string{"Warrior", "Pacter", "Sunblade"}, store.ClassNames())
		assert.Equal(t, []string{"Telepathy"}, store.DisciplineNames())
	})

	t.Run("combat skill filter", func(t *testing.T) {
		assert.Equal(t, []string{"Shoot", "Stab"}, store.CombatSkillNames())
	})
}

func TestNewStoreChecksCrossReferences(t *testing.T) {
	t.Run("dangling tradition", func(t *testing.T) {
		tables := testTables()
		tables.Traditions = nil
		_, err := NewStore(tables)
		require.ErrorIs(t, err, ErrDataIntegrity)
	})

	t.Run("dangling track", func(t *testing.T) {
		tables := testTables()
		tables.Tracks = nil
		_, err := NewStore(tables)
		require.ErrorIs(t, err, ErrDataIntegrity)
	})
}

func TestLoadStoreFullLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classes", "warrior.yaml"), warriorYAML)
	writeFile(t, filepath.Join(dir, "backgrounds.yaml"), `backgrounds:
  - name: Soldier
    free_skill: Shoot
    quick_skills: [Shoot, Exert, AnyCombat]
`)
	writeFile(t, filepath.Join(dir, "skills.yaml"), `skills:
  - name: Shoot
    combat: true
  - name: Exert
`)
	writeFile(t, filepath.Join(dir, "foci.yaml"), `foci:
  - name: Gunslinger
    combat: true
`)
	writeFile(t, filepath.Join(dir, "disciplines.yaml"), `disciplines:
  - name: Telepathy
    core_technique:
      name: Telepathic Contact
      level: 0
    techniques:
      - name: Surface Thoughts
        level: 1
`)
	writeFile(t, filepath.Join(dir, "spells", "pacter.yaml"), `tradition: Pacter
style: fixed
spells:
  - name: Accursed Brand
    level: 1
`)
	writeFile(t, filepath.Join(dir, "tracks", "sunblade.yaml"), `name: Sunblade
mode: even-selection
selectable_abilities:
  - name: Burning Stroke
    level: 2
effort:
  attributes: [WIS, CHA]
`)
	writeFile(t, filepath.Join(dir, "equipment", "armor.yaml"), `armor:
  - name: Armored Undersuit
    cost: 600
    enc: 1
    tech_level: 4
    ac: 13
`)
	writeFile(t, filepath.Join(dir, "equipment", "weapons.yaml"), `ranged:
  - name: Laser Pistol
    cost: 200
    enc: 1
    tech_level: 4
    damage: 1d6
melee:
  - name: Knife
    cost: 2
    enc: 1
    damage: 1d4
`)
	writeFile(t, filepath.Join(dir, "equipment", "gear.yaml"), `gear:
  - name: Backpack
    category: field
    cost: 5
    enc: 1
`)
	writeFile(t, filepath.Join(dir, "names.yaml"), `first: [Arn, Besh]
last: [Vasek, Okonkwo]
`)

	store, err := LoadStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Warrior"}, store.ClassNames())
	assert.Len(t, store.Armor(), 1)
	assert.Len(t, store.RangedWeapons(), 1)
	assert.Len(t, store.MeleeWeapons(), 1)
	assert.Len(t, store.Gear(), 1)
	require.NotNil(t, store.Names())
	assert.Len(t, store.Names().First, 2)
}

func TestLoadStoreMissingTableFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classes", "warrior.yaml"), warriorYAML)

	_, err := LoadStore(dir)
	require.Error(t, err)
}
