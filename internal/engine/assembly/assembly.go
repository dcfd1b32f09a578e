// Package assembly builds a new character sheet from a creation request.
//
// Every check runs before the sheet is built, so a failed request never yields
// a partial character.
package assembly

import (
	"slices"

	"github.com/KirkDiggler/charsheet-api/internal/engine/cost"
	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

// Request describes a character to create
type Request struct {
	UserID     string
	Name       string
	Attributes map[sheet.AttributeName]int
	Profession sheet.Occupation
	Hobby      sheet.Occupation

	Advantages    []sheet.Trait
	Disadvantages []sheet.Trait

	// BonusSkills maps an advantage kind with a bonus target to the chosen
	// skill id.
	BonusSkills map[string]string

	// FreeSkills are additional skills activated at no cost.
	FreeSkills []string
}

// Assembler builds character sheets
type Assembler struct {
	rules      *rules.Rules
	propagator *derive.Propagator
}

// New creates an assembler
func New(r *rules.Rules) *Assembler {
	return &Assembler{rules: r, propagator: derive.New(r)}
}

type plan struct {
	costCategories map[sheet.SkillCategory]int
	bonusSkills    map[string]string
	generation     sheet.GenerationPoints
}

// Assemble validates req and returns the new character. UserID is copied;
// CharacterID and CreatedAt are left for the caller to assign.
func (a *Assembler) Assemble(req Request) (*sheet.Character, error) {
	p, err := a.validate(req)
	if err != nil {
		return nil, err
	}
	return a.build(req, p), nil
}

func (a *Assembler) validate(req Request) (*plan, error) {
	creation := a.rules.Creation()
	vb := errors.NewValidationBuilder()

	if req.UserID == "" {
		vb.RequiredField("user_id")
	}
	if req.Name == "" {
		vb.RequiredField("name")
	}

	sum := 0
	for name, value := range req.Attributes {
		if !slices.Contains(sheet.AttributeNames(), name) {
			vb.Fieldf("attributes", "unknown attribute %q", name)
			continue
		}
		if value < 0 {
			vb.Fieldf("attributes."+string(name), "must not be negative, got %d", value)
		}
		sum += value
	}
	if sum != creation.AttributePoints {
		vb.Fieldf("attributes", "must sum to %d, got %d", creation.AttributePoints, sum)
	}

	a.validateOccupation(vb, "profession", req.Profession)
	a.validateOccupation(vb, "hobby", req.Hobby)

	if len(req.FreeSkills) > creation.MaxFreeSkills {
		vb.Fieldf("free_skills", "at most %d free skills, got %d", creation.MaxFreeSkills, len(req.FreeSkills))
	}
	for _, id := range req.FreeSkills {
		if _, ok := a.rules.Skill(id); !ok {
			vb.Fieldf("free_skills", "unknown skill %q", id)
		}
	}

	p := &plan{
		costCategories: map[sheet.SkillCategory]int{},
		bonusSkills:    map[string]string{},
	}

	spent, err := a.validateTraits(vb, "advantages", req.Advantages, a.rules.Advantage, req.BonusSkills, p)
	if err != nil {
		return nil, err
	}
	granted, err := a.validateTraits(vb, "disadvantages", req.Disadvantages, a.rules.Disadvantage, nil, p)
	if err != nil {
		return nil, err
	}
	p.generation = sheet.GenerationPoints{
		Total: creation.GenerationPoints + granted,
		Spent: spent,
	}
	if spent > p.generation.Total {
		vb.Fieldf("advantages", "advantages cost %d generation points, only %d available", spent, p.generation.Total)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	for _, def := range a.rules.Skills() {
		if _, err := cost.ShiftCategory(def.CostCategory, p.costCategories[def.Category]); err != nil {
			return nil, errors.Wrapf(err, "disadvantages shift cost category of %s", def.ID)
		}
	}
	return p, nil
}

func (a *Assembler) validateOccupation(vb *errors.ValidationBuilder, field string, o sheet.Occupation) {
	if o.Name == "" {
		vb.RequiredField(field + ".name")
	}
	if _, ok := a.rules.Skill(o.SkillID); !ok {
		vb.Fieldf(field+".skill", "unknown skill %q", o.SkillID)
	}
}

// validateTraits checks (kind, value) pairs and bonus targets and returns the
// summed trait value. A bonus target outside its allow-list is a table
// inconsistency and fails hard.
func (a *Assembler) validateTraits(
	vb *errors.ValidationBuilder,
	field string,
	traits []sheet.Trait,
	lookup func(string) (rules.TraitDef, bool),
	bonusSkills map[string]string,
	p *plan,
) (int, error) {
	total := 0
	seen := map[string]bool{}
	for _, trait := range traits {
		def, ok := lookup(trait.Kind)
		if !ok {
			vb.Fieldf(field, "unknown kind %q", trait.Kind)
			continue
		}
		if seen[trait.Kind] {
			vb.Fieldf(field, "%s selected more than once", trait.Kind)
			continue
		}
		seen[trait.Kind] = true
		if !def.AllowsValue(trait.Value) {
			vb.Fieldf(field, "%s cannot be taken at value %d", trait.Kind, trait.Value)
			continue
		}
		total += trait.Value

		for _, category := range def.CostShifts {
			p.costCategories[category]++
		}

		if def.BonusTarget == nil {
			continue
		}
		target, ok := bonusSkills[trait.Kind]
		if !ok || target == "" {
			vb.Fieldf("bonus_skills", "%s requires a bonus skill", trait.Kind)
			continue
		}
		if !slices.Contains(def.BonusTarget.AllowedSkills, target) {
			return 0, errors.Internalf("bonus skill %s is not allowed for %s", target, trait.Kind).
				WithMeta("allowed", def.BonusTarget.AllowedSkills)
		}
		p.bonusSkills[trait.Kind] = target
	}
	return total, nil
}

func (a *Assembler) build(req Request, p *plan) *sheet.Character {
	creation := a.rules.Creation()

	c := &sheet.Character{
		UserID:           req.UserID,
		Name:             req.Name,
		Level:            creation.StartLevel,
		Profession:       req.Profession,
		Hobby:            req.Hobby,
		Advantages:       slices.Clone(req.Advantages),
		Disadvantages:    slices.Clone(req.Disadvantages),
		GenerationPoints: p.generation,
		CalculationPoints: sheet.CalculationPoints{
			AdventurePoints: sheet.Points{
				Start:     creation.AdventurePoints,
				Available: creation.AdventurePoints,
				Total:     creation.AdventurePoints,
			},
		},
		Attributes:  make(map[sheet.AttributeName]sheet.Attribute),
		BaseValues:  make(map[sheet.BaseValueName]sheet.BaseValue),
		Skills:      make(map[string]sheet.Skill),
		CombatStats: make(map[string]sheet.CombatValues),
		LevelUpProgress: sheet.LevelUpProgress{
			EffectsByLevel: map[int]sheet.LevelUpEffectKind{},
			Effects:        map[sheet.LevelUpEffectKind]sheet.EffectProgress{},
		},
		SpecialAbilities: []string{},
	}

	for _, name := range sheet.AttributeNames() {
		value := req.Attributes[name]
		c.Attributes[name] = sheet.Attribute{Start: value, Current: value}
	}

	for _, name := range sheet.BaseValueNames() {
		def, _ := a.rules.BaseValue(name)
		bv := sheet.BaseValue{Start: def.Start}
		if def.LevelUpEligible {
			bv.ByLvlUp = sheet.IntPtr(0)
		}
		bv.Recompute()
		c.BaseValues[name] = bv
	}

	for _, def := range a.rules.Skills() {
		// validated above
		category, _ := cost.ShiftCategory(def.CostCategory, p.costCategories[def.Category])
		c.Skills[def.ID] = sheet.Skill{DefaultCostCategory: category}
	}

	for _, trait := range req.Advantages {
		def, _ := a.rules.Advantage(trait.Kind)
		applyTrait(c, def, p.bonusSkills[trait.Kind])
	}
	for _, trait := range req.Disadvantages {
		def, _ := a.rules.Disadvantage(trait.Kind)
		applyTrait(c, def, "")
	}

	activate := slices.Concat(creation.StarterSkills, req.FreeSkills, []string{req.Profession.SkillID, req.Hobby.SkillID})
	for _, id := range activate {
		skill := c.Skills[id]
		skill.Activated = true
		c.Skills[id] = skill
	}
	raiseSkill(c, req.Profession.SkillID, creation.ProfessionBonus)
	raiseSkill(c, req.Hobby.SkillID, creation.HobbyBonus)

	a.propagator.All(c)
	return c
}

func applyTrait(c *sheet.Character, def rules.TraitDef, bonusSkill string) {
	for id, delta := range def.SkillMods {
		skill := c.Skills[id]
		skill.Mod += delta
		c.Skills[id] = skill
	}
	for name, delta := range def.AttributeMods {
		attr := c.Attributes[name]
		attr.Mod += delta
		c.Attributes[name] = attr
	}
	if def.BonusTarget != nil && bonusSkill != "" {
		skill := c.Skills[bonusSkill]
		skill.Mod += def.BonusTarget.Mod
		c.Skills[bonusSkill] = skill
	}
}

func raiseSkill(c *sheet.Character, id string, points int) {
	skill := c.Skills[id]
	skill.Start += points
	skill.Current += points
	c.Skills[id] = skill
}
