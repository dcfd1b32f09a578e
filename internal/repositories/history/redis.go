package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/charsheet-api/internal/entities/sheet"
	"github.com/KirkDiggler/charsheet-api/internal/errors"
	redisclient "github.com/KirkDiggler/charsheet-api/internal/redis"
)

const (
	historyKeyPrefix = "charsheet_history:"
	sequenceSuffix   = ":seq"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis history repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a history repository storing each log as a sorted set
// scored by record number
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func historyKey(userID, characterID string) string {
	return historyKeyPrefix + userID + ":" + characterID
}

func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	key := historyKey(input.UserID, input.CharacterID)
	number, err := r.client.Incr(ctx, key+sequenceSuffix).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate history number")
	}

	record := *input.Record
	record.Number = number
	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal history record")
	}

	if err := r.client.ZAdd(ctx, key, redis.Z{Score: float64(number), Member: data}).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to append history record")
	}

	slog.DebugContext(ctx, "appended history record",
		"user_id", input.UserID,
		"character_id", input.CharacterID,
		"number", number,
		"type", record.Type)

	return &AppendOutput{Record: &record}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}
	limit := limitOrDefault(input.Limit)

	members, err := r.client.ZRangeByScore(ctx, historyKey(input.UserID, input.CharacterID), &redis.ZRangeBy{
		Min:   "(" + strconv.FormatInt(input.AfterNumber, 10),
		Max:   "+inf",
		Count: int64(limit + 1),
	}).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list history")
	}

	output := &ListOutput{}
	if len(members) > limit {
		output.HasMore = true
		members = members[:limit]
	}
	for _, member := range members {
		var record sheet.HistoryRecord
		if err := json.Unmarshal([]byte(member), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal history record")
		}
		output.Records = append(output.Records, &record)
	}
	return output, nil
}

func (r *redisRepository) DeleteAll(ctx context.Context, input DeleteAllInput) (*DeleteAllOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}
	key := historyKey(input.UserID, input.CharacterID)

	pipe := r.client.TxPipeline()
	count := pipe.ZCard(ctx, key)
	pipe.Del(ctx, key, key+sequenceSuffix)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete history")
	}
	return &DeleteAllOutput{Deleted: count.Val()}, nil
}
