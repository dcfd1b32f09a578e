package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// detailsCodeKey carries the service code inside the status details so a
// client sees the exact code even where two codes share a gRPC status.
const detailsCodeKey = "code"

// ToGRPCError converts err into a status error. Metadata travels as a
// structpb.Struct detail; status errors pass through untouched.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !errors.As(err, &e) {
		code := GetCode(err)
		return status.Error(code.GRPCCode(), err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if len(e.Meta) == 0 {
		return st.Err()
	}
	details, derr := metaToStruct(e.Code, e.Meta)
	if derr != nil {
		return st.Err()
	}
	if withDetails, derr := st.WithDetails(details); derr == nil {
		st = withDetails
	}
	return st.Err()
}

// FromGRPCError is the client-side inverse of ToGRPCError. Errors that are
// not status errors are returned as they are.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		if c, ok := details.AsMap()[detailsCodeKey].(string); ok && c != "" {
			out.Code = Code(c)
		}
		out.Meta = structToMeta(details)
		break
	}
	return out
}

// metaToStruct normalizes meta through JSON first since structpb only holds
// JSON-shaped values (no int, no typed slices, no structs).
func metaToStruct(code Code, meta map[string]any) (*structpb.Struct, error) {
	fields := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		fields[k] = v
	}
	fields[detailsCodeKey] = string(code)

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal error details: %w", err)
	}
	var normalized map[string]any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, fmt.Errorf("normalize error details: %w", err)
	}
	return structpb.NewStruct(normalized)
}

func structToMeta(details *structpb.Struct) map[string]any {
	meta := details.AsMap()
	delete(meta, detailsCodeKey)
	if len(meta) == 0 {
		return nil
	}
	return meta
}
