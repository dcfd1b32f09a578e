package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/charsheet-api/internal/engine/mutation"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	v1 "github.com/KirkDiggler/charsheet-api/internal/handlers/charsheet/v1"
)

var (
	comment string

	attributeName string
	skillID       string
	fromValue     int
	addPoints     int
	activate      bool
	method        string

	attackFrom, attackTo int
	paradeFrom, paradeTo int

	adventureFrom, adventureAdd float64
	attributeFrom, attributeAdd float64
)

var updateAttributeCmd = &cobra.Command{
	Use:   "update-attribute",
	Short: "Raise an attribute with attribute points",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(c *v1.Client, ctx context.Context) (*v1.UpdateAttributeResponse, error) {
			return c.UpdateAttribute(ctx, &v1.UpdateAttributeRequest{
				CharacterID: characterID,
				Attribute:   sheet.AttributeName(attributeName),
				Current:     &mutation.Increase{InitialValue: fromValue, IncreasedPoints: addPoints},
				Comment:     comment,
			})
		})
	},
}

var updateSkillCmd = &cobra.Command{
	Use:   "update-skill",
	Short: "Activate or raise a skill with adventure points",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := &v1.UpdateSkillRequest{
			CharacterID:    characterID,
			SkillID:        skillID,
			LearningMethod: sheet.LearningMethod(method),
			Comment:        comment,
		}
		if activate {
			req.Activated = &mutation.Set[bool]{InitialValue: false, NewValue: true}
		}
		if cmd.Flags().Changed("add") {
			req.Current = &mutation.Increase{InitialValue: fromValue, IncreasedPoints: addPoints}
		}
		return call(func(c *v1.Client, ctx context.Context) (*v1.UpdateSkillResponse, error) {
			return c.UpdateSkill(ctx, req)
		})
	},
}

var updateCombatStatsCmd = &cobra.Command{
	Use:   "update-combat-stats",
	Short: "Distribute a combat skill's points between attack and parade",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := &v1.UpdateCombatStatsRequest{
			CharacterID: characterID,
			SkillID:     skillID,
			Comment:     comment,
		}
		if cmd.Flags().Changed("attack") {
			req.SkilledAttackValue = &mutation.Set[int]{InitialValue: attackFrom, NewValue: attackTo}
		}
		if cmd.Flags().Changed("parade") {
			req.SkilledParadeValue = &mutation.Set[int]{InitialValue: paradeFrom, NewValue: paradeTo}
		}
		return call(func(c *v1.Client, ctx context.Context) (*v1.UpdateCombatStatsResponse, error) {
			return c.UpdateCombatStats(ctx, req)
		})
	},
}

var grantPointsCmd = &cobra.Command{
	Use:   "grant-points",
	Short: "Raise the adventure or attribute point budget",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := &v1.UpdateCalculationPointsRequest{CharacterID: characterID, Comment: comment}
		if cmd.Flags().Changed("adventure") {
			req.AdventurePoints = &v1.PointsUpdate{
				Total: &mutation.FloatIncrease{InitialValue: adventureFrom, IncreasedPoints: adventureAdd},
			}
		}
		if cmd.Flags().Changed("attribute-points") {
			req.AttributePoints = &v1.PointsUpdate{
				Total: &mutation.FloatIncrease{InitialValue: attributeFrom, IncreasedPoints: attributeAdd},
			}
		}
		return call(func(c *v1.Client, ctx context.Context) (*v1.UpdateCalculationPointsResponse, error) {
			return c.UpdateCalculationPoints(ctx, req)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{updateAttributeCmd, updateSkillCmd, updateCombatStatsCmd, grantPointsCmd} {
		addCharacterIDFlag(cmd)
		cmd.Flags().StringVar(&comment, "comment", "", "Comment stored with the history record")
	}

	updateAttributeCmd.Flags().StringVar(&attributeName, "attribute", "", "Attribute name (required)")
	updateAttributeCmd.Flags().IntVar(&fromValue, "from", 0, "Current value the change is based on")
	updateAttributeCmd.Flags().IntVar(&addPoints, "add", 0, "Points to add (required)")
	_ = updateAttributeCmd.MarkFlagRequired("attribute") // nolint:errcheck // safe to ignore in init
	_ = updateAttributeCmd.MarkFlagRequired("add")       // nolint:errcheck // safe to ignore in init

	updateSkillCmd.Flags().StringVar(&skillID, "skill", "", "Skill ID (required)")
	updateSkillCmd.Flags().BoolVar(&activate, "activate", false, "Activate the skill")
	updateSkillCmd.Flags().IntVar(&fromValue, "from", 0, "Current value the increase is based on")
	updateSkillCmd.Flags().IntVar(&addPoints, "add", 0, "Points to add")
	updateSkillCmd.Flags().StringVar(&method, "method", string(sheet.LearningMethodNormal),
		"Learning method: FREE, LOW_PRICED, NORMAL or EXPENSIVE")
	_ = updateSkillCmd.MarkFlagRequired("skill") // nolint:errcheck // safe to ignore in init

	updateCombatStatsCmd.Flags().StringVar(&skillID, "skill", "", "Combat skill ID (required)")
	updateCombatStatsCmd.Flags().IntVar(&attackFrom, "attack-from", 0, "Skilled attack value the change is based on")
	updateCombatStatsCmd.Flags().IntVar(&attackTo, "attack", 0, "New skilled attack value")
	updateCombatStatsCmd.Flags().IntVar(&paradeFrom, "parade-from", 0, "Skilled parade value the change is based on")
	updateCombatStatsCmd.Flags().IntVar(&paradeTo, "parade", 0, "New skilled parade value")
	_ = updateCombatStatsCmd.MarkFlagRequired("skill") // nolint:errcheck // safe to ignore in init

	grantPointsCmd.Flags().Float64Var(&adventureFrom, "adventure-from", 0, "Adventure point total the grant is based on")
	grantPointsCmd.Flags().Float64Var(&adventureAdd, "adventure", 0, "Adventure points to grant")
	grantPointsCmd.Flags().Float64Var(&attributeFrom, "attribute-from", 0, "Attribute point total the grant is based on")
	grantPointsCmd.Flags().Float64Var(&attributeAdd, "attribute-points", 0, "Attribute points to grant")
}
