// Package v1 handles the charsheet.v1 grpc service interface
package v1

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// UserIDHeader is the metadata key carrying the authenticated caller
const UserIDHeader = "x-user-id"

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements the charsheet.v1 CharacterService
type Handler struct {
	characterService character.Service
}

var _ CharacterServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

// userID reads the caller from request metadata. Authentication happens
// upstream; a request without the header is rejected.
func userID(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.ToGRPCError(errors.Unauthenticated("missing request metadata"))
	}
	for _, v := range md.Get(UserIDHeader) {
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}
	return "", errors.ToGRPCError(errors.Unauthenticatedf("%s is required", UserIDHeader))
}

func (h *Handler) ref(ctx context.Context, characterID string) (character.CharacterRef, error) {
	uid, err := userID(ctx)
	if err != nil {
		return character.CharacterRef{}, err
	}
	return character.CharacterRef{UserID: uid, CharacterID: characterID}, nil
}

// CreateCharacter assembles and stores a new character
func (h *Handler) CreateCharacter(
	ctx context.Context,
	req *CreateCharacterRequest,
) (*CreateCharacterResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		UserID:        uid,
		Name:          req.Name,
		Attributes:    req.Attributes,
		Profession:    req.Profession,
		Hobby:         req.Hobby,
		Advantages:    req.Advantages,
		Disadvantages: req.Disadvantages,
		BonusSkills:   req.BonusSkills,
		FreeSkills:    req.FreeSkills,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CreateCharacterResponse{
		Character:     output.Character,
		HistoryRecord: output.HistoryRecord,
	}, nil
}

// GetCharacter returns one character of the caller
func (h *Handler) GetCharacter(
	ctx context.Context,
	req *GetCharacterRequest,
) (*GetCharacterResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{CharacterRef: ref})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetCharacterResponse{Character: output.Character}, nil
}

// ListCharacters lists the caller's characters
func (h *Handler) ListCharacters(
	ctx context.Context,
	_ *ListCharactersRequest,
) (*ListCharactersResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{UserID: uid})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListCharactersResponse{Characters: output.Characters}, nil
}

// DeleteCharacter deletes a character and its history
func (h *Handler) DeleteCharacter(
	ctx context.Context,
	req *DeleteCharacterRequest,
) (*DeleteCharacterResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{CharacterRef: ref})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DeleteCharacterResponse{DeletedHistoryRecords: output.DeletedHistoryRecords}, nil
}

// UpdateAttribute changes one attribute
func (h *Handler) UpdateAttribute(
	ctx context.Context,
	req *UpdateAttributeRequest,
) (*UpdateAttributeResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.UpdateAttribute(ctx, &character.UpdateAttributeInput{
		CharacterRef: ref,
		Attribute:    req.Attribute,
		Start:        req.Start,
		Current:      req.Current,
		Mod:          req.Mod,
		Comment:      req.Comment,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &UpdateAttributeResponse{
		Attribute:       output.Attribute,
		Derived:         output.Derived,
		AttributePoints: output.AttributePoints,
		HistoryRecord:   output.HistoryRecord,
	}, nil
}

// UpdateSkill activates, raises or modifies one skill
func (h *Handler) UpdateSkill(
	ctx context.Context,
	req *UpdateSkillRequest,
) (*UpdateSkillResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.UpdateSkill(ctx, &character.UpdateSkillInput{
		CharacterRef:   ref,
		SkillID:        req.SkillID,
		Activated:      req.Activated,
		Start:          req.Start,
		Current:        req.Current,
		Mod:            req.Mod,
		LearningMethod: req.LearningMethod,
		Comment:        req.Comment,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &UpdateSkillResponse{
		Skill:           output.Skill,
		Derived:         output.Derived,
		AdventurePoints: output.AdventurePoints,
		HistoryRecord:   output.HistoryRecord,
	}, nil
}

// UpdateBaseValue changes the start or mod of one base value
func (h *Handler) UpdateBaseValue(
	ctx context.Context,
	req *UpdateBaseValueRequest,
) (*UpdateBaseValueResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.UpdateBaseValue(ctx, &character.UpdateBaseValueInput{
		CharacterRef: ref,
		BaseValue:    req.BaseValue,
		Start:        req.Start,
		Mod:          req.Mod,
		Comment:      req.Comment,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &UpdateBaseValueResponse{
		BaseValue:     output.BaseValue,
		Derived:       output.Derived,
		HistoryRecord: output.HistoryRecord,
	}, nil
}

// UpdateCombatStats distributes a combat skill's points
func (h *Handler) UpdateCombatStats(
	ctx context.Context,
	req *UpdateCombatStatsRequest,
) (*UpdateCombatStatsResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.UpdateCombatStats(ctx, &character.UpdateCombatStatsInput{
		CharacterRef:       ref,
		SkillID:            req.SkillID,
		SkilledAttackValue: req.SkilledAttackValue,
		SkilledParadeValue: req.SkilledParadeValue,
		Comment:            req.Comment,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &UpdateCombatStatsResponse{
		CombatStats:   output.CombatStats,
		HistoryRecord: output.HistoryRecord,
	}, nil
}

// UpdateCalculationPoints changes the point budgets
func (h *Handler) UpdateCalculationPoints(
	ctx context.Context,
	req *UpdateCalculationPointsRequest,
) (*UpdateCalculationPointsResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.UpdateCalculationPoints(ctx, &character.UpdateCalculationPointsInput{
		CharacterRef:    ref,
		AdventurePoints: toPointsUpdate(req.AdventurePoints),
		AttributePoints: toPointsUpdate(req.AttributePoints),
		Comment:         req.Comment,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &UpdateCalculationPointsResponse{
		CalculationPoints: output.CalculationPoints,
		HistoryRecord:     output.HistoryRecord,
	}, nil
}

func toPointsUpdate(p *PointsUpdate) *character.PointsUpdate {
	if p == nil {
		return nil
	}
	return &character.PointsUpdate{Start: p.Start, Total: p.Total}
}

// GetLevelUpOptions lists the effects for the next level
func (h *Handler) GetLevelUpOptions(
	ctx context.Context,
	req *GetLevelUpOptionsRequest,
) (*GetLevelUpOptionsResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.GetLevelUpOptions(ctx, &character.GetLevelUpOptionsInput{CharacterRef: ref})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetLevelUpOptionsResponse{
		Level:       output.Level,
		NextLevel:   output.NextLevel,
		Options:     output.Options,
		OptionsHash: output.OptionsHash,
	}, nil
}

// ApplyLevelUp applies the chosen level-up effect
func (h *Handler) ApplyLevelUp(
	ctx context.Context,
	req *ApplyLevelUpRequest,
) (*ApplyLevelUpResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.ApplyLevelUp(ctx, &character.ApplyLevelUpInput{
		CharacterRef: ref,
		InitialLevel: req.InitialLevel,
		OptionsHash:  req.OptionsHash,
		Effect:       req.Effect,
		Roll:         req.Roll,
		Comment:      req.Comment,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ApplyLevelUpResponse{
		Level:            output.Level,
		Effect:           output.Effect,
		Roll:             output.Roll,
		BaseValue:        output.BaseValue,
		Derived:          output.Derived,
		SpecialAbilities: output.SpecialAbilities,
		HistoryRecord:    output.HistoryRecord,
	}, nil
}

// ListHistory pages through a character's history records
func (h *Handler) ListHistory(
	ctx context.Context,
	req *ListHistoryRequest,
) (*ListHistoryResponse, error) {
	ref, err := h.ref(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}

	output, err := h.characterService.ListHistory(ctx, &character.ListHistoryInput{
		CharacterRef: ref,
		AfterNumber:  req.AfterNumber,
		PageSize:     req.PageSize,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListHistoryResponse{
		Records: output.Records,
		HasMore: output.HasMore,
	}, nil
}
