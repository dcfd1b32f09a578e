package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	v1 "github.com/KirkDiggler/charsheet-api/internal/handlers/charsheet/v1"
)

var (
	characterID string

	createName            string
	createAttributes      map[string]int
	createProfession      string
	createProfessionSkill string
	createHobby           string
	createHobbySkill      string
	createAdvantages      map[string]int
	createDisadvantages   map[string]int
	createFreeSkills      []string
)

var createCharacterCmd = &cobra.Command{
	Use:   "create-character",
	Short: "Assemble and store a new character",
	Example: `  charsheet-api client create-character --user u1 --name Alrik \
    --attribute courage=3,strength=6 --profession Hunter --profession-skill nature/tracking \
    --advantage brave=2 --free-skill combat/daggers`,
	RunE: func(_ *cobra.Command, _ []string) error {
		req := &v1.CreateCharacterRequest{
			Name:          createName,
			Attributes:    make(map[sheet.AttributeName]int, len(createAttributes)),
			Profession:    sheet.Occupation{Name: createProfession, SkillID: createProfessionSkill},
			Hobby:         sheet.Occupation{Name: createHobby, SkillID: createHobbySkill},
			Advantages:    traits(createAdvantages),
			Disadvantages: traits(createDisadvantages),
			FreeSkills:    createFreeSkills,
		}
		for name, value := range createAttributes {
			req.Attributes[sheet.AttributeName(name)] = value
		}
		return call(func(c *v1.Client, ctx context.Context) (*v1.CreateCharacterResponse, error) {
			return c.CreateCharacter(ctx, req)
		})
	},
}

var getCharacterCmd = &cobra.Command{
	Use:   "get-character",
	Short: "Print a character sheet",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(c *v1.Client, ctx context.Context) (*v1.GetCharacterResponse, error) {
			return c.GetCharacter(ctx, &v1.GetCharacterRequest{CharacterID: characterID})
		})
	},
}

var listCharactersCmd = &cobra.Command{
	Use:   "list-characters",
	Short: "List the user's characters",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(c *v1.Client, ctx context.Context) (*v1.ListCharactersResponse, error) {
			return c.ListCharacters(ctx, &v1.ListCharactersRequest{})
		})
	},
}

var deleteCharacterCmd = &cobra.Command{
	Use:   "delete-character",
	Short: "Delete a character and its history",
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(c *v1.Client, ctx context.Context) (*v1.DeleteCharacterResponse, error) {
			return c.DeleteCharacter(ctx, &v1.DeleteCharacterRequest{CharacterID: characterID})
		})
	},
}

func init() {
	f := createCharacterCmd.Flags()
	f.StringVar(&createName, "name", "", "Character name (required)")
	f.StringToIntVar(&createAttributes, "attribute", nil, "Attribute start values, e.g. courage=3")
	f.StringVar(&createProfession, "profession", "", "Profession name")
	f.StringVar(&createProfessionSkill, "profession-skill", "", "Skill ID of the profession")
	f.StringVar(&createHobby, "hobby", "", "Hobby name")
	f.StringVar(&createHobbySkill, "hobby-skill", "", "Skill ID of the hobby")
	f.StringToIntVar(&createAdvantages, "advantage", nil, "Advantages as kind=value")
	f.StringToIntVar(&createDisadvantages, "disadvantage", nil, "Disadvantages as kind=value")
	f.StringSliceVar(&createFreeSkills, "free-skill", nil, "Skills activated for free")
	_ = createCharacterCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{getCharacterCmd, deleteCharacterCmd} {
		addCharacterIDFlag(cmd)
	}
}

func addCharacterIDFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&characterID, "character-id", "", "Character ID (required)")
	_ = cmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
}

func traits(values map[string]int) []sheet.Trait {
	out := make([]sheet.Trait, 0, len(values))
	for kind, value := range values {
		out = append(out, sheet.Trait{Kind: kind, Value: value})
	}
	return out
}
