package mutation

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/charsheet-api/internal/engine/derive"
	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/clock"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	historyrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/history"
)

const tracerName = "github.com/KirkDiggler/charsheet-api/internal/engine/mutation"

// maxRederiveAttempts bounds the reload-and-rederive loop that runs when a
// derived write loses to a concurrent mutation.
const maxRederiveAttempts = 3

// Deriver recomputes every derived structure of a sheet from its sources
type Deriver interface {
	PropagateAll(c *sheet.Character) derive.Changes
}

// ApplyFunc stages a mutation on a copy of the loaded sheet. It compares every
// requested field group through the guard before touching c, and returns the
// outcome describing what changed.
type ApplyFunc func(c *sheet.Character, g *Guard) (*Outcome, error)

// Outcome describes a staged mutation
type Outcome struct {
	// Old and New hold every structure the mutation touched; they are
	// encoded into the history record.
	Old any
	New any

	CalculationPoints sheet.PointsChanges
	LearningMethod    sheet.LearningMethod
	Comment           string
}

// Request is one mutation of a stored character
type Request struct {
	UserID      string
	CharacterID string

	// Type and Name label the history record.
	Type sheet.HistoryRecordType
	Name string

	// PrimaryField is the encoded field the caller asked to change. It is
	// written first and guards the write with a compare-and-set.
	PrimaryField string

	Apply ApplyFunc
}

// Result is the outcome of an executed mutation
type Result struct {
	// Character is the stored sheet after the mutation
	Character *sheet.Character

	// Record is nil when the request was already applied
	Record *sheet.HistoryRecord

	Outcome *Outcome
}

// Idempotent reports whether the request had already been applied
func (r *Result) Idempotent() bool {
	return r.Record == nil
}

// ExecutorConfig holds the dependencies of an Executor
type ExecutorConfig struct {
	CharacterRepo characterrepo.Repository
	HistoryRepo   historyrepo.Repository
	Clock         clock.Clock
	IDGenerator   idgen.Generator

	// Deriver repairs derived groups after a lost derived write. Without
	// one the lost write is returned as a conflict.
	Deriver Deriver
}

// Validate validates the config
func (cfg *ExecutorConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if cfg.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// Executor runs mutations: load, compare and stage on a clone, write the
// changed field groups in order, then append a history record
type Executor struct {
	characters characterrepo.Repository
	history    historyrepo.Repository
	clock      clock.Clock
	idGen      idgen.Generator
	deriver    Deriver
	tracer     trace.Tracer
}

// NewExecutor creates an Executor
func NewExecutor(cfg *ExecutorConfig) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Executor{
		characters: cfg.CharacterRepo,
		history:    cfg.HistoryRepo,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
		deriver:    cfg.Deriver,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

func (r *Request) validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("user_id", r.UserID, vb)
	errors.ValidateRequired("character_id", r.CharacterID, vb)
	if r.Type == "" {
		vb.RequiredField("type")
	}
	if r.PrimaryField == "" {
		vb.RequiredField("primary_field")
	}
	if r.Apply == nil {
		vb.RequiredField("apply")
	}
	return vb.Build()
}

// Execute runs one mutation. Every validation, conflict and budget check runs
// before the first write.
func (e *Executor) Execute(ctx context.Context, req Request) (result *Result, err error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "mutation."+string(req.Type), trace.WithAttributes(
		attribute.String("charsheet.user_id", req.UserID),
		attribute.String("charsheet.character_id", req.CharacterID),
		attribute.String("charsheet.field", req.PrimaryField),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, errors.GetMessage(err))
		} else {
			span.SetAttributes(attribute.Bool("charsheet.idempotent", result.Idempotent()))
		}
		span.End()
	}()

	loaded, err := e.characters.Get(ctx, characterrepo.GetInput{
		UserID:      req.UserID,
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	staged := loaded.Character.Clone()
	guard := &Guard{}
	outcome, err := req.Apply(staged, guard)
	if err != nil {
		slog.DebugContext(ctx, "mutation rejected",
			"user_id", req.UserID,
			"character_id", req.CharacterID,
			"type", req.Type,
			"error", err)
		return nil, err
	}
	if outcome == nil {
		return nil, errors.Internal("mutation produced no outcome")
	}

	if guard.Idempotent() {
		slog.DebugContext(ctx, "mutation already applied",
			"user_id", req.UserID,
			"character_id", req.CharacterID,
			"type", req.Type,
			"fields", guard.Satisfied())
		return &Result{Character: loaded.Character, Outcome: outcome}, nil
	}

	before, err := characterrepo.EncodeFields(loaded.Character)
	if err != nil {
		return nil, err
	}
	after, err := characterrepo.EncodeFields(staged)
	if err != nil {
		return nil, err
	}

	writes := characterrepo.PlanWrites(before, after, req.PrimaryField)
	for i, w := range writes {
		_, err := e.characters.UpdateFields(ctx, characterrepo.UpdateFieldsInput{
			UserID:      req.UserID,
			CharacterID: req.CharacterID,
			Fields:      w.Fields,
			Expected:    w.Expected,
		})
		if err == nil {
			continue
		}
		if i > 0 && errors.IsConflict(err) && e.deriver != nil {
			// another mutation wrote the same derived group between our
			// first write and this one; recompute from what is stored now
			err = e.rederive(ctx, req)
			if err == nil {
				break
			}
		}
		if i > 0 {
			// the primary write landed; derived groups stay stale until
			// their source changes again
			slog.ErrorContext(ctx, "derived write failed after primary write",
				"user_id", req.UserID,
				"character_id", req.CharacterID,
				"type", req.Type,
				"write", i,
				"error", err)
		}
		return nil, err
	}

	record, err := e.record(req, outcome)
	if err != nil {
		return nil, err
	}
	appended, err := e.history.Append(ctx, historyrepo.AppendInput{
		UserID:      req.UserID,
		CharacterID: req.CharacterID,
		Record:      record,
	})
	if err != nil {
		// the sheet is already stored and a retry is idempotent, so the log
		// line is the only copy of this record
		slog.ErrorContext(ctx, "failed to append history record",
			"user_id", req.UserID,
			"character_id", req.CharacterID,
			"type", req.Type,
			"record", recordPayload(record),
			"error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "mutation applied",
		"user_id", req.UserID,
		"character_id", req.CharacterID,
		"type", req.Type,
		"name", req.Name,
		"writes", len(writes),
		"history_number", appended.Record.Number)

	return &Result{
		Character: staged,
		Record:    appended.Record,
		Outcome:   outcome,
	}, nil
}

// rederive reloads the sheet, recomputes every derived group and writes the
// groups that differ, each conditional on the reloaded value
func (e *Executor) rederive(ctx context.Context, req Request) error {
	var lastErr error
	for attempt := 1; attempt <= maxRederiveAttempts; attempt++ {
		loaded, err := e.characters.Get(ctx, characterrepo.GetInput{
			UserID:      req.UserID,
			CharacterID: req.CharacterID,
		})
		if err != nil {
			return err
		}
		before, err := characterrepo.EncodeFields(loaded.Character)
		if err != nil {
			return err
		}
		repaired := loaded.Character.Clone()
		e.deriver.PropagateAll(repaired)
		after, err := characterrepo.EncodeFields(repaired)
		if err != nil {
			return err
		}

		lastErr = nil
		for _, w := range characterrepo.PlanWrites(before, after, "") {
			if _, err := e.characters.UpdateFields(ctx, characterrepo.UpdateFieldsInput{
				UserID:      req.UserID,
				CharacterID: req.CharacterID,
				Fields:      w.Fields,
				Expected:    w.Expected,
			}); err != nil {
				lastErr = err
				break
			}
		}
		if lastErr == nil {
			slog.InfoContext(ctx, "derived groups recomputed after concurrent update",
				"user_id", req.UserID,
				"character_id", req.CharacterID,
				"type", req.Type,
				"attempt", attempt)
			return nil
		}
		if !errors.IsConflict(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func recordPayload(record *sheet.HistoryRecord) string {
	data, err := json.Marshal(record)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (e *Executor) record(req Request, outcome *Outcome) (*sheet.HistoryRecord, error) {
	oldData, err := json.Marshal(outcome.Old)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode old state")
	}
	newData, err := json.Marshal(outcome.New)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode new state")
	}
	return &sheet.HistoryRecord{
		Type:              req.Type,
		Name:              req.Name,
		ID:                e.idGen.Generate(),
		Timestamp:         e.clock.Now().UnixMilli(),
		Data:              sheet.Change{Old: oldData, New: newData},
		CalculationPoints: outcome.CalculationPoints,
		LearningMethod:    outcome.LearningMethod,
		Comment:           outcome.Comment,
	}, nil
}
