package v1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "charsheet.v1.CharacterService"

// CharacterServiceServer is the server API of charsheet.v1.CharacterService
type CharacterServiceServer interface {
	CreateCharacter(context.Context, *CreateCharacterRequest) (*CreateCharacterResponse, error)
	GetCharacter(context.Context, *GetCharacterRequest) (*GetCharacterResponse, error)
	ListCharacters(context.Context, *ListCharactersRequest) (*ListCharactersResponse, error)
	DeleteCharacter(context.Context, *DeleteCharacterRequest) (*DeleteCharacterResponse, error)
	UpdateAttribute(context.Context, *UpdateAttributeRequest) (*UpdateAttributeResponse, error)
	UpdateSkill(context.Context, *UpdateSkillRequest) (*UpdateSkillResponse, error)
	UpdateBaseValue(context.Context, *UpdateBaseValueRequest) (*UpdateBaseValueResponse, error)
	UpdateCombatStats(context.Context, *UpdateCombatStatsRequest) (*UpdateCombatStatsResponse, error)
	UpdateCalculationPoints(context.Context, *UpdateCalculationPointsRequest) (*UpdateCalculationPointsResponse, error)
	GetLevelUpOptions(context.Context, *GetLevelUpOptionsRequest) (*GetLevelUpOptionsResponse, error)
	ApplyLevelUp(context.Context, *ApplyLevelUpRequest) (*ApplyLevelUpResponse, error)
	ListHistory(context.Context, *ListHistoryRequest) (*ListHistoryResponse, error)
}

// ServiceDesc describes charsheet.v1.CharacterService for grpc.Server
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateCharacter", CharacterServiceServer.CreateCharacter),
		unary("GetCharacter", CharacterServiceServer.GetCharacter),
		unary("ListCharacters", CharacterServiceServer.ListCharacters),
		unary("DeleteCharacter", CharacterServiceServer.DeleteCharacter),
		unary("UpdateAttribute", CharacterServiceServer.UpdateAttribute),
		unary("UpdateSkill", CharacterServiceServer.UpdateSkill),
		unary("UpdateBaseValue", CharacterServiceServer.UpdateBaseValue),
		unary("UpdateCombatStats", CharacterServiceServer.UpdateCombatStats),
		unary("UpdateCalculationPoints", CharacterServiceServer.UpdateCalculationPoints),
		unary("GetLevelUpOptions", CharacterServiceServer.GetLevelUpOptions),
		unary("ApplyLevelUp", CharacterServiceServer.ApplyLevelUp),
		unary("ListHistory", CharacterServiceServer.ListHistory),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "charsheet/v1/character_service",
}

// RegisterCharacterServiceServer registers srv with s
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary builds the method descriptor for one RPC the way generated code
// does, decoding into Req and running the interceptor chain.
func unary[Req, Resp any](
	name string,
	call func(CharacterServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CharacterServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CharacterServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls charsheet.v1.CharacterService with the JSON codec
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Req, Resp any](
	ctx context.Context,
	c *Client,
	name string,
	in *Req,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCharacter(
	ctx context.Context, in *CreateCharacterRequest, opts ...grpc.CallOption,
) (*CreateCharacterResponse, error) {
	return invoke[CreateCharacterRequest, CreateCharacterResponse](ctx, c, "CreateCharacter", in, opts)
}

func (c *Client) GetCharacter(
	ctx context.Context, in *GetCharacterRequest, opts ...grpc.CallOption,
) (*GetCharacterResponse, error) {
	return invoke[GetCharacterRequest, GetCharacterResponse](ctx, c, "GetCharacter", in, opts)
}

func (c *Client) ListCharacters(
	ctx context.Context, in *ListCharactersRequest, opts ...grpc.CallOption,
) (*ListCharactersResponse, error) {
	return invoke[ListCharactersRequest, ListCharactersResponse](ctx, c, "ListCharacters", in, opts)
}

func (c *Client) DeleteCharacter(
	ctx context.Context, in *DeleteCharacterRequest, opts ...grpc.CallOption,
) (*DeleteCharacterResponse, error) {
	return invoke[DeleteCharacterRequest, DeleteCharacterResponse](ctx, c, "DeleteCharacter", in, opts)
}

func (c *Client) UpdateAttribute(
	ctx context.Context, in *UpdateAttributeRequest, opts ...grpc.CallOption,
) (*UpdateAttributeResponse, error) {
	return invoke[UpdateAttributeRequest, UpdateAttributeResponse](ctx, c, "UpdateAttribute", in, opts)
}

func (c *Client) UpdateSkill(
	ctx context.Context, in *UpdateSkillRequest, opts ...grpc.CallOption,
) (*UpdateSkillResponse, error) {
	return invoke[UpdateSkillRequest, UpdateSkillResponse](ctx, c, "UpdateSkill", in, opts)
}

func (c *Client) UpdateBaseValue(
	ctx context.Context, in *UpdateBaseValueRequest, opts ...grpc.CallOption,
) (*UpdateBaseValueResponse, error) {
	return invoke[UpdateBaseValueRequest, UpdateBaseValueResponse](ctx, c, "UpdateBaseValue", in, opts)
}

func (c *Client) UpdateCombatStats(
	ctx context.Context, in *UpdateCombatStatsRequest, opts ...grpc.CallOption,
) (*UpdateCombatStatsResponse, error) {
	return invoke[UpdateCombatStatsRequest, UpdateCombatStatsResponse](ctx, c, "UpdateCombatStats", in, opts)
}

func (c *Client) UpdateCalculationPoints(
	ctx context.Context, in *UpdateCalculationPointsRequest, opts ...grpc.CallOption,
) (*UpdateCalculationPointsResponse, error) {
	return invoke[UpdateCalculationPointsRequest, UpdateCalculationPointsResponse](
		ctx, c, "UpdateCalculationPoints", in, opts)
}

func (c *Client) GetLevelUpOptions(
	ctx context.Context, in *GetLevelUpOptionsRequest, opts ...grpc.CallOption,
) (*GetLevelUpOptionsResponse, error) {
	return invoke[GetLevelUpOptionsRequest, GetLevelUpOptionsResponse](ctx, c, "GetLevelUpOptions", in, opts)
}

func (c *Client) ApplyLevelUp(
	ctx context.Context, in *ApplyLevelUpRequest, opts ...grpc.CallOption,
) (*ApplyLevelUpResponse, error) {
	return invoke[ApplyLevelUpRequest, ApplyLevelUpResponse](ctx, c, "ApplyLevelUp", in, opts)
}

func (c *Client) ListHistory(
	ctx context.Context, in *ListHistoryRequest, opts ...grpc.CallOption,
) (*ListHistoryResponse, error) {
	return invoke[ListHistoryRequest, ListHistoryResponse](ctx, c, "ListHistory", in, opts)
}
