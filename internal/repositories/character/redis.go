package character

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/charsheet-api/internal/errors"
	"github.com/KirkDiggler/charsheet-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/charsheet-api/internal/redis"
)

const (
	characterKeyPrefix = "charsheet:"
	userIndexPrefix    = "charsheet_index:user:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errUserIDEmpty      = "user ID cannot be empty"
	errNoFields         = "at least one field is required"
)

// compareAndSet checks the ARGV[1] expected field/value pairs and, when all
// match, writes the field/value pairs that follow them. Returns -1 when the
// hash is missing, 0 when written, and the 1-based position of the first
// expected pair that differs otherwise.
var compareAndSet = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
local expected = tonumber(ARGV[1])
for n = 1, expected do
	if redis.call("HGET", KEYS[1], ARGV[2 * n]) ~= ARGV[2 * n + 1] then
		return n
	end
end
for i = 2 * expected + 2, #ARGV, 2 do
	redis.call("HSET", KEYS[1], ARGV[i], ARGV[i + 1])
end
return 0
`)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func characterKey(userID, characterID string) string {
	return characterKeyPrefix + userID + ":" + characterID
}

func validateIDs(userID, characterID string) error {
	if userID == "" {
		return errors.InvalidArgument(errUserIDEmpty)
	}
	if characterID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if err := validateIDs(input.Character.UserID, input.Character.CharacterID); err != nil {
		return nil, err
	}

	key := characterKey(input.Character.UserID, input.Character.CharacterID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.CharacterID)
	}

	fields, err := EncodeFields(input.Character)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, 2*len(fields))
	for name, value := range fields {
		values = append(values, name, value)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, values...)
	pipe.SAdd(ctx, userIndexPrefix+input.Character.UserID, input.Character.CharacterID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	slog.DebugContext(ctx, "created character",
		"user_id", input.Character.UserID,
		"character_id", input.Character.CharacterID,
		"fields", len(fields))

	return &CreateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, characterKey(input.UserID, input.CharacterID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.CharacterID)
	}

	c, err := DecodeFields(fields)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

func (r *redisRepository) UpdateFields(ctx context.Context, input UpdateFieldsInput) (*UpdateFieldsOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}
	if len(input.Fields) == 0 {
		return nil, errors.InvalidArgument(errNoFields)
	}

	key := characterKey(input.UserID, input.CharacterID)

	if len(input.Expected) > 0 {
		args := make([]interface{}, 0, 1+2*len(input.Expected)+2*len(input.Fields))
		args = append(args, len(input.Expected))
		for _, f := range input.Expected {
			args = append(args, f.Name, f.Value)
		}
		for _, f := range input.Fields {
			args = append(args, f.Name, f.Value)
		}

		result, err := compareAndSet.Run(ctx, r.client, []string{key}, args...).Int()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to update character")
		}
		switch {
		case result == -1:
			return nil, errors.NotFoundf("character with ID %s not found", input.CharacterID)
		case result > 0 && result <= len(input.Expected):
			field := input.Expected[result-1].Name
			slog.InfoContext(ctx, "conditional write lost to a concurrent update",
				"user_id", input.UserID,
				"character_id", input.CharacterID,
				"field", field,
				"expected_fields", len(input.Expected))
			return nil, errors.Conflictf("%s was changed concurrently", field).
				WithMeta("field", field)
		case result != 0:
			return nil, errors.Internalf("unexpected compare-and-set result %d", result)
		}
		return &UpdateFieldsOutput{Written: len(input.Fields)}, nil
	}

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.CharacterID)
	}

	values := make([]interface{}, 0, 2*len(input.Fields))
	for _, f := range input.Fields {
		values = append(values, f.Name, f.Value)
	}
	if err := r.client.HSet(ctx, key, values...).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	return &UpdateFieldsOutput{Written: len(input.Fields)}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateIDs(input.UserID, input.CharacterID); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, characterKey(input.UserID, input.CharacterID))
	pipe.SRem(ctx, userIndexPrefix+input.UserID, input.CharacterID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if deleted.Val() == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.CharacterID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByUserID(ctx context.Context, input ListByUserIDInput) (*ListByUserIDOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	indexKey := userIndexPrefix + input.UserID
	slog.DebugContext(ctx, "listing characters by user index",
		"user_id", input.UserID,
		"index_key", indexKey)

	characterIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}

	output := &ListByUserIDOutput{}
	for _, id := range characterIDs {
		got, err := r.Get(ctx, GetInput{UserID: input.UserID, CharacterID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, err
		}
		output.Characters = append(output.Characters, got.Character)
	}

	slog.DebugContext(ctx, "successfully listed characters by user",
		"user_id", input.UserID,
		"count", len(output.Characters))

	return output, nil
}
