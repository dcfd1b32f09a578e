package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	v1 "github.com/KirkDiggler/charsheet-api/internal/handlers/charsheet/v1"
)

var (
	effect      string
	optionsHash string
	fromLevel   int
	roll        int

	afterNumber int64
	pageSize    int
)

var levelUpOptionsCmd = &cobra.Command{
	Use:   "level-up-options",
	Short: "List the level-up effects for the next level",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(c *v1.Client, ctx context.Context) (*v1.GetLevelUpOptionsResponse, error) {
			return c.GetLevelUpOptions(ctx, &v1.GetLevelUpOptionsRequest{CharacterID: characterID})
		})
	},
}

var levelUpCmd = &cobra.Command{
	Use:   "level-up",
	Short: "Apply a level-up effect",
	Long: `Apply one effect from level-up-options. Pass the options hash it printed;
dice effects are rolled by the server unless --roll is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := &v1.ApplyLevelUpRequest{
			CharacterID:  characterID,
			InitialLevel: fromLevel,
			OptionsHash:  optionsHash,
			Effect:       sheet.LevelUpEffectKind(effect),
			Comment:      comment,
		}
		if cmd.Flags().Changed("roll") {
			req.Roll = &roll
		}
		return call(func(c *v1.Client, ctx context.Context) (*v1.ApplyLevelUpResponse, error) {
			return c.ApplyLevelUp(ctx, req)
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Page through a character's history",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(c *v1.Client, ctx context.Context) (*v1.ListHistoryResponse, error) {
			return c.ListHistory(ctx, &v1.ListHistoryRequest{
				CharacterID: characterID,
				AfterNumber: afterNumber,
				PageSize:    pageSize,
			})
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{levelUpOptionsCmd, levelUpCmd, historyCmd} {
		addCharacterIDFlag(cmd)
	}

	levelUpCmd.Flags().StringVar(&effect, "effect", "", "Effect kind, e.g. hpRoll (required)")
	levelUpCmd.Flags().StringVar(&optionsHash, "hash", "", "Options hash from level-up-options (required)")
	levelUpCmd.Flags().IntVar(&fromLevel, "from-level", 1, "Level the character is leaving")
	levelUpCmd.Flags().IntVar(&roll, "roll", 0, "Dice result for roll effects")
	levelUpCmd.Flags().StringVar(&comment, "comment", "", "Comment stored with the history record")
	_ = levelUpCmd.MarkFlagRequired("effect") // nolint:errcheck // safe to ignore in init
	_ = levelUpCmd.MarkFlagRequired("hash")   // nolint:errcheck // safe to ignore in init

	historyCmd.Flags().Int64Var(&afterNumber, "after", 0, "Only records numbered above this")
	historyCmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per page (server default when 0)")
}
