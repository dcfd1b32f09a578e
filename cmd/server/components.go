package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/charsheet-api/internal/config"
	"github.com/KirkDiggler/charsheet-api/internal/engine"
	charorch "github.com/KirkDiggler/charsheet-api/internal/orchestrators/character"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/clock"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/idgen"
	"github.com/KirkDiggler/charsheet-api/internal/redis"
	characterrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/character"
	historyrepo "github.com/KirkDiggler/charsheet-api/internal/repositories/history"
	"github.com/KirkDiggler/charsheet-api/internal/rules"
	"github.com/KirkDiggler/charsheet-api/internal/services/character"
)

// components is everything the gRPC handler runs on
type components struct {
	service character.Service
	closers []func() error
}

// Close releases storage connections in reverse order of opening
func (c *components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func buildComponents(ctx context.Context, cfg *config.Config) (_ *components, err error) {
	comps := &components{}
	defer func() {
		if err != nil {
			_ = comps.Close()
		}
	}()

	r, err := loadRules(cfg.CostTablePath)
	if err != nil {
		return nil, err
	}

	client, err := redis.Connect(ctx, cfg.Redis.Addrs, &redis.Options{
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		PoolSize:   cfg.Redis.PoolSize,
		MaxRetries: cfg.Redis.MaxRetries,
		UseTLS:     cfg.Redis.UseTLS,
	})
	if err != nil {
		return nil, err
	}
	comps.closers = append(comps.closers, client.Close)

	characterRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}

	historyRepo, err := openHistory(cfg.History, client, comps)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	subscribeEventLog(bus)

	eng, err := engine.New(&engine.Config{
		Rules:    r,
		EventBus: bus,
	})
	if err != nil {
		return nil, err
	}

	comps.service, err = charorch.New(&charorch.Config{
		CharacterRepo:        characterRepo,
		HistoryRepo:          historyRepo,
		Engine:               eng,
		Clock:                clock.New(),
		CharacterIDGenerator: idgen.NewUUID("char"),
		RecordIDGenerator:    idgen.NewTimeOrdered("rec"),
	})
	if err != nil {
		return nil, err
	}
	return comps, nil
}

func loadRules(costTablePath string) (*rules.Rules, error) {
	if costTablePath == "" {
		return rules.New()
	}
	table, err := rules.LoadCostTable(costTablePath)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded cost table", "path", costTablePath)
	return rules.New(rules.WithCostTable(table))
}

func openHistory(cfg config.HistoryConfig, client redis.Client, comps *components) (historyrepo.Repository, error) {
	switch cfg.Backend {
	case config.HistoryBackendSQLite:
		store, err := historyrepo.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		comps.closers = append(comps.closers, store.Close)
		return store, nil
	case config.HistoryBackendRedis:
		return historyrepo.NewRedis(&historyrepo.RedisConfig{Client: client})
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

// subscribeEventLog logs every character event published on bus
func subscribeEventLog(bus events.EventBus) {
	for _, eventType := range []string{
		engine.EventCharacterCreated,
		engine.EventCharacterChanged,
		engine.EventCharacterLevelUp,
		engine.EventCharacterDeleted,
	} {
		bus.SubscribeFunc(eventType, 0, func(ctx context.Context, e events.Event) error {
			attrs := []any{"event", e.Type()}
			if src := e.Source(); src != nil {
				attrs = append(attrs, "character_id", src.GetID())
			}
			slog.DebugContext(ctx, "character event", attrs...)
			return nil
		})
	}
}
