// Package data loads game content (items, skills, enemy abilities,
// character templates and encounters) from YAML.
package data

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/galaxies/internal/model"
)

//go:embed content/*.yaml
var contentFS embed.FS

// DefaultContentFile is the embedded catalog used when no file is given.
const DefaultContentFile = "content/default.yaml"

var (
	// ErrNotFound is returned for ids missing from the catalog.
	ErrNotFound = errors.New("not found in catalog")
	// ErrInvalidContent is returned for catalogs that fail validation.
	ErrInvalidContent = errors.New("invalid content")
)

type itemDef struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Slot        string          `yaml:"slot"`
	Level       int32           `yaml:"level"`
	GemSlots    int32           `yaml:"gem_slots"`
	LinkedSlots []int32         `yaml:"linked_slots"`
	Stats       model.ItemStats `yaml:"stats"`
}

type skillDef struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Level    int32       `yaml:"level"`
	Damage   float64     `yaml:"damage"`
	ManaCost float64     `yaml:"mana_cost"`
	Cooldown float64     `yaml:"cooldown"`
	Range    float64     `yaml:"range"`
	Effects  []effectDef `yaml:"effects"`
}

type abilityDef struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Damage   float64     `yaml:"damage"`
	Cooldown float64     `yaml:"cooldown"`
	Range    float64     `yaml:"range"`
	Effects  []effectDef `yaml:"effects"`
}

type characterDef struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Kind      string             `yaml:"kind"`
	Level     int32              `yaml:"level"`
	Stats     model.PrimaryStats `yaml:"stats"`
	Equipment []string           `yaml:"equipment"`
	Skills    []string           `yaml:"skills"`
	Abilities []string           `yaml:"abilities"`
}

// EncounterDef names the character templates that meet in one fight.
type EncounterDef struct {
	ID      string   `yaml:"id"`
	Players []string `yaml:"players"`
	Enemies []string `yaml:"enemies"`
}

type catalogFile struct {
	Items      []itemDef      `yaml:"items"`
	Skills     []skillDef     `yaml:"skills"`
	Abilities  []abilityDef   `yaml:"abilities"`
	Characters []characterDef `yaml:"characters"`
	Encounters []EncounterDef `yaml:"encounters"`
}

// Catalog is an immutable set of content definitions.
// Safe for concurrent use: every constructor returns fresh values.
type Catalog struct {
	items      map[string]itemDef
	skills     map[string]skillDef
	abilities  map[string]abilityDef
	characters map[string]characterDef
	encounters []EncounterDef
}

// LoadDefault parses the embedded content pack.
func LoadDefault() (*Catalog, error) {
	raw, err := contentFS.ReadFile(DefaultContentFile)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", DefaultContentFile, err)
	}
	return Parse(raw)
}

// LoadFile parses a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		items:      make(map[string]itemDef, len(f.Items)),
		skills:     make(map[string]skillDef, len(f.Skills)),
		abilities:  make(map[string]abilityDef, len(f.Abilities)),
		characters: make(map[string]characterDef, len(f.Characters)),
		encounters: f.Encounters,
	}

	var errs []error
	for _, d := range f.Items {
		errs = append(errs, putUnique(c.items, "item", d.ID, d))
		if _, err := model.ParseSlot(strings.ToLower(d.Slot)); err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", d.ID, err))
		}
		errs = append(errs, d.Stats.Validate("item "+d.ID))
	}
	for _, d := range f.Skills {
		errs = append(errs, putUnique(c.skills, "skill", d.ID, d))
		if _, err := model.ParseSkillType(strings.ToLower(d.Type)); err != nil {
			errs = append(errs, fmt.Errorf("skill %q: %w", d.ID, err))
		}
	}
	for _, d := range f.Abilities {
		errs = append(errs, putUnique(c.abilities, "ability", d.ID, d))
	}
	for _, d := range f.Characters {
		errs = append(errs, putUnique(c.characters, "character", d.ID, d))
		errs = append(errs, d.Stats.Validate("character "+d.ID))
	}
	// references are checked once every section is indexed
	for _, d := range f.Characters {
		errs = append(errs, c.checkCharacterRefs(d))
	}
	for _, enc := range f.Encounters {
		errs = append(errs, c.checkEncounterRefs(enc))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	slog.Debug("catalog loaded",
		"items", len(c.items),
		"skills", len(c.skills),
		"abilities", len(c.abilities),
		"characters", len(c.characters),
		"encounters", len(c.encounters))
	return c, nil
}

func putUnique[T any](m map[string]T, what, id string, v T) error {
	if id == "" {
		return fmt.Errorf("%s with empty id", what)
	}
	if _, ok := m[id]; ok {
		return fmt.Errorf("duplicate %s %q", what, id)
	}
	m[id] = v
	return nil
}

func (c *Catalog) checkCharacterRefs(d characterDef) error {
	var errs []error
	if _, err := parseKind(d.Kind); err != nil {
		errs = append(errs, fmt.Errorf("character %q: %w", d.ID, err))
	}
	slots := make(map[string]string)
	for _, id := range d.Equipment {
		it, ok := c.items[id]
		if !ok {
			errs = append(errs, fmt.Errorf("character %q: item %q: %w", d.ID, id, ErrNotFound))
			continue
		}
		slot := strings.ToLower(it.Slot)
		if prev, taken := slots[slot]; taken {
			errs = append(errs, fmt.Errorf("character %q: items %q and %q share slot %s", d.ID, prev, id, slot))
		}
		slots[slot] = id
	}
	for _, id := range d.Skills {
		if _, ok := c.skills[id]; !ok {
			errs = append(errs, fmt.Errorf("character %q: skill %q: %w", d.ID, id, ErrNotFound))
		}
	}
	for _, id := range d.Abilities {
		if _, ok := c.abilities[id]; !ok {
			errs = append(errs, fmt.Errorf("character %q: ability %q: %w", d.ID, id, ErrNotFound))
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) checkEncounterRefs(enc EncounterDef) error {
	var errs []error
	if enc.ID == "" {
		errs = append(errs, errors.New("encounter with empty id"))
	}
	for _, id := range append(append([]string(nil), enc.Players...), enc.Enemies...) {
		if _, ok := c.characters[id]; !ok {
			errs = append(errs, fmt.Errorf("encounter %q: character %q: %w", enc.ID, id, ErrNotFound))
		}
	}
	return errors.Join(errs...)
}

func parseKind(name string) (model.Kind, error) {
	switch strings.ToLower(name) {
	case "", "player":
		return model.KindPlayer, nil
	case "enemy":
		return model.KindEnemy, nil
	default:
		return 0, fmt.Errorf("unknown character kind %q", name)
	}
}

// Encounters returns encounter definitions in file order.
func (c *Catalog) Encounters() []EncounterDef {
	return append([]EncounterDef(nil), c.encounters...)
}

// Encounter returns the encounter definition with id.
func (c *Catalog) Encounter(id string) (EncounterDef, error) {
	for _, e := range c.encounters {
		if e.ID == id {
			return e, nil
		}
	}
	return EncounterDef{}, fmt.Errorf("encounter %q: %w", id, ErrNotFound)
}

// NewItem returns a fresh, unequipped item built from definition id.
func (c *Catalog) NewItem(id string) (*model.Item, error) {
	d, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	slot, err := model.ParseSlot(strings.ToLower(d.Slot))
	if err != nil {
		return nil, err
	}
	it := model.NewItem(d.ID, d.Name, slot, d.Stats)
	it.Level = d.Level
	it.GemSlots = d.GemSlots
	it.LinkedSlots = append([]int32(nil), d.LinkedSlots...)
	return it, nil
}

// Skill returns a fresh skill built from definition id.
func (c *Catalog) Skill(id string) (*model.Skill, error) {
	d, ok := c.skills[id]
	if !ok {
		return nil, fmt.Errorf("skill %q: %w", id, ErrNotFound)
	}
	typ, err := model.ParseSkillType(strings.ToLower(d.Type))
	if err != nil {
		return nil, err
	}
	return &model.Skill{
		ID:       d.ID,
		Name:     d.Name,
		Type:     typ,
		Level:    d.Level,
		Damage:   d.Damage,
		ManaCost: d.ManaCost,
		Cooldown: d.Cooldown,
		Range:    d.Range,
		Effects:  toEffects(d.Effects),
	}, nil
}

// Ability returns a fresh enemy ability built from definition id.
func (c *Catalog) Ability(id string) (*model.EnemyAbility, error) {
	d, ok := c.abilities[id]
	if !ok {
		return nil, fmt.Errorf("ability %q: %w", id, ErrNotFound)
	}
	return &model.EnemyAbility{
		ID:       d.ID,
		Name:     d.Name,
		Damage:   d.Damage,
		Cooldown: d.Cooldown,
		Range:    d.Range,
		Effects:  toEffects(d.Effects),
	}, nil
}

// NewCharacter builds character template templateID under instanceID with
// its own equipment, skills and abilities. Health and mana start at 0.
func (c *Catalog) NewCharacter(templateID, instanceID string) (*model.Character, error) {
	d, ok := c.characters[templateID]
	if !ok {
		return nil, fmt.Errorf("character %q: %w", templateID, ErrNotFound)
	}
	kind, err := parseKind(d.Kind)
	if err != nil {
		return nil, err
	}
	if instanceID == "" {
		instanceID = d.ID
	}
	name := d.Name
	if name == "" {
		name = d.ID
	}

	ch := model.NewCharacter(instanceID, name, kind, d.Level, d.Stats)
	for _, id := range d.Equipment {
		it, err := c.NewItem(id)
		if err != nil {
			return nil, err
		}
		if _, err := ch.Equipment().Equip(it); err != nil {
			return nil, fmt.Errorf("character %q: equip %q: %w", templateID, id, err)
		}
	}
	for _, id := range d.Skills {
		s, err := c.Skill(id)
		if err != nil {
			return nil, err
		}
		ch.LearnSkill(s)
	}
	for _, id := range d.Abilities {
		a, err := c.Ability(id)
		if err != nil {
			return nil, err
		}
		ch.LearnAbility(a)
	}
	return ch, nil
}
