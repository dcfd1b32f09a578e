// Package errors is the error vocabulary of the charsheet service.
//
// Every layer returns *Error values carrying a Code, a message and optional
// metadata. Repositories report NotFound, AlreadyExists and DataLoss. The
// rules engine reports InvalidArgument for bad input and the two domain
// failures clients act on:
//
//   - Conflict (CodeAborted): a compare-and-swap guard no longer matches
//     storage. Meta holds field, expected, target and actual so the client
//     can refetch and resubmit.
//   - InsufficientBudget (CodeFailedPrecondition): the price of a change is
//     above the points still available. Meta holds budget, price and
//     available.
//
// Wrap keeps the inner code and metadata:
//
//	got, err := repo.Get(ctx, input)
//	if err != nil {
//	    return nil, errors.Wrapf(err, "failed to load character %s", id)
//	}
//
// Request validation goes through a ValidationBuilder, which reports every
// bad field at once:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("characterId", input.CharacterID, vb)
//	errors.ValidateRange("initialLevel", input.InitialLevel, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// Handlers return errors.ToGRPCError(err). Metadata travels as a
// structpb.Struct status detail and errors.FromGRPCError restores it on the
// client side.
package errors
