// Package levelup computes the selectable level-up effects of a character and
// applies a chosen effect as a level transition.
package levelup

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/cespare/xxhash/v2"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
)

var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)

// Machine evaluates and applies level-ups
type Machine struct {
	rules  *rules.Rules
	roller dice.Roller
}

// New creates a level-up machine. Dice effects without a caller-supplied roll
// are rolled with roller.
func New(r *rules.Rules, roller dice.Roller) *Machine {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &Machine{rules: r, roller: roller}
}

// Options returns one option per effect kind for a character reaching
// nextLevel with the given progress
func (m *Machine) Options(nextLevel int, progress sheet.LevelUpProgress) []sheet.LevelUpOption {
	effects := m.rules.LevelUpEffects()
	options := make([]sheet.LevelUpOption, 0, len(effects))
	for _, effect := range effects {
		options = append(options, option(effect, nextLevel, progress.Effects[effect.Kind]))
	}
	return options
}

func option(effect rules.LevelUpEffect, nextLevel int, p sheet.EffectProgress) sheet.LevelUpOption {
	opt := sheet.LevelUpOption{
		Kind:              effect.Kind,
		FirstLevel:        effect.FirstLevel,
		SelectionCount:    p.SelectionCount,
		MaxSelectionCount: effect.MaxSelectionCount,
		CooldownLevels:    effect.CooldownLevels,
		DiceExpression:    effect.Dice,
	}
	if p.SelectionCount > 0 {
		opt.FirstChosenLevel = sheet.IntPtr(p.FirstChosenLevel)
		opt.LastChosenLevel = sheet.IntPtr(p.LastChosenLevel)
	}

	switch {
	case nextLevel < effect.FirstLevel:
		opt.ReasonIfDenied = fmt.Sprintf("available from level %d", effect.FirstLevel)
	case p.SelectionCount >= effect.MaxSelectionCount:
		opt.ReasonIfDenied = fmt.Sprintf("already selected the maximum of %d times", effect.MaxSelectionCount)
	case p.SelectionCount > 0 && nextLevel-p.LastChosenLevel < effect.CooldownLevels:
		opt.ReasonIfDenied = cooldownReason(effect, p)
	default:
		opt.Allowed = true
	}
	return opt
}

func cooldownReason(effect rules.LevelUpEffect, p sheet.EffectProgress) string {
	if effect.CooldownLevels >= rules.Unlimited {
		return "can only be selected once"
	}
	return fmt.Sprintf("on cooldown until level %d", p.LastChosenLevel+effect.CooldownLevels)
}

// OptionsHash returns a digest of the option list. Any change to the stored
// progress that affects the options changes the hash.
func OptionsHash(options []sheet.LevelUpOption) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode level-up options")
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// ApplyInput is a level-up request
type ApplyInput struct {
	InitialLevel int
	OptionsHash  string
	Effect       sheet.LevelUpEffectKind

	// Roll is the caller's dice result for dice effects. When nil the
	// machine rolls.
	Roll *int
}

// Result describes an applied level-up
type Result struct {
	Level  int
	Effect sheet.LevelUpEffectKind

	// Delta is the increase applied to Target; zero for ability unlocks.
	Delta  int
	Target sheet.BaseValueName

	// Roll is the dice result of roll-based effects
	Roll int

	Ability string
}

// Apply validates the request against the stored character and advances c
// by one level. c is modified in place only when no error is returned.
func (m *Machine) Apply(c *sheet.Character, input ApplyInput) (*Result, error) {
	if c.Level != input.InitialLevel {
		return nil, errors.Conflict("level", input.InitialLevel, input.InitialLevel+1, c.Level)
	}

	nextLevel := c.Level + 1
	options := m.Options(nextLevel, c.LevelUpProgress)
	hash, err := OptionsHash(options)
	if err != nil {
		return nil, err
	}
	if hash != input.OptionsHash {
		return nil, errors.Conflictf("level-up options have changed since they were listed").
			WithMeta("field", "optionsHash").
			WithMeta("expected", input.OptionsHash).
			WithMeta("actual", hash)
	}

	var chosen *sheet.LevelUpOption
	for i := range options {
		if options[i].Kind == input.Effect {
			chosen = &options[i]
			break
		}
	}
	if chosen == nil {
		return nil, invalidEffect(errors.InvalidArgumentf("unknown level-up effect %q", input.Effect))
	}
	if !chosen.Allowed {
		return nil, invalidEffect(errors.InvalidArgumentf("level-up effect %s is not allowed: %s", input.Effect, chosen.ReasonIfDenied))
	}

	effect, _ := m.rules.LevelUpEffect(input.Effect)
	delta, roll := effect.Delta, 0
	if effect.Dice != "" {
		roll, err = m.roll(effect.Dice, input.Roll)
		if err != nil {
			return nil, err
		}
		delta = roll
	} else if input.Roll != nil {
		return nil, errors.InvalidArgumentf("level-up effect %s does not take a roll", input.Effect)
	}

	if effect.Target != "" {
		bv := c.BaseValues[effect.Target]
		bv.ByLvlUp = sheet.IntPtr(sheet.IntValue(bv.ByLvlUp) + delta)
		bv.Recompute()
		c.BaseValues[effect.Target] = bv
	}
	if effect.Ability != "" {
		c.SpecialAbilities = append(c.SpecialAbilities, effect.Ability)
	}

	recordSelection(&c.LevelUpProgress, effect.Kind, nextLevel)
	c.Level = nextLevel

	return &Result{
		Level:   nextLevel,
		Effect:  effect.Kind,
		Delta:   delta,
		Target:  effect.Target,
		Roll:    roll,
		Ability: effect.Ability,
	}, nil
}

func recordSelection(progress *sheet.LevelUpProgress, kind sheet.LevelUpEffectKind, level int) {
	if progress.EffectsByLevel == nil {
		progress.EffectsByLevel = map[int]sheet.LevelUpEffectKind{}
	}
	if progress.Effects == nil {
		progress.Effects = map[sheet.LevelUpEffectKind]sheet.EffectProgress{}
	}
	progress.EffectsByLevel[level] = kind

	p := progress.Effects[kind]
	if p.SelectionCount == 0 {
		p.FirstChosenLevel = level
	}
	p.SelectionCount++
	p.LastChosenLevel = level
	progress.Effects[kind] = p
}

// roll validates a supplied roll against the dice expression or rolls one
func (m *Machine) roll(expression string, supplied *int) (int, error) {
	count, size, err := ParseDice(expression)
	if err != nil {
		return 0, err
	}
	if supplied != nil {
		if *supplied < count || *supplied > count*size {
			return 0, errors.InvalidArgumentf("roll %d is outside %s (%d-%d)", *supplied, expression, count, count*size).
				WithMeta("dice", expression)
		}
		return *supplied, nil
	}

	rolls, err := m.roller.RollN(count, size)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %s", expression)
	}
	total := 0
	for _, r := range rolls {
		total += r
	}
	return total, nil
}

// ParseDice parses simple dice notation like "1d4"
func ParseDice(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(notation)
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}
	count, _ = strconv.Atoi(matches[1])
	size, _ = strconv.Atoi(matches[2])
	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	return count, size, nil
}

func invalidEffect(err *errors.Error) error {
	return err.WithMeta("reason", "InvalidEffect")
}
