package state

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const schemaVersionKey = "schema_version"

// migration is one idempotent schema change, applied at most once and
// tracked by the stored schema version.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, client *redis.Client) error
}

// migrations run in order; never reorder or renumber released entries.
var migrations = []migration{
	{
		version: 1,
		name:    "rename spark settings to casual",
		apply: renameStateFields(map[string]string{
			"channel_spark":   "channel_casual",
			"ping_role_spark": "ping_role_casual",
		}),
	},
	{
		version: 2,
		name:    "restructure categories to warm/chill",
		apply: renameStateFields(map[string]string{
			"channel_casual":        "channel_warm",
			"ping_role_casual":      "ping_role_warm",
			"channel_personality":   "channel_chill",
			"ping_role_personality": "ping_role_chill",
		}),
	},
	{
		version: 3,
		name:    "drop question usage from retired categories",
		apply:   deleteKeysMatching("questions_used:*:spark", "questions_used:*:casual", "questions_used:*:personality"),
	},
}

// Migrate applies any pending schema migrations
func (r *redisRepository) Migrate(ctx context.Context) error {
	current := 0
	raw, err := r.client.Get(ctx, schemaVersionKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if err == nil {
		current, err = strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid schema version %q: %w", raw, err)
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if err := m.apply(ctx, r.client); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}

		if err := r.client.Set(ctx, schemaVersionKey, strconv.Itoa(m.version), 0).Err(); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.version, err)
		}

		log.Printf("Applied migration %d: %s", m.version, m.name)
	}

	return nil
}

// renameStateFields renames hash fields across every guild state hash
func renameStateFields(renames map[string]string) func(ctx context.Context, client *redis.Client) error {
	return func(ctx context.Context, client *redis.Client) error {
		iter := client.Scan(ctx, 0, stateKeyPrefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			for oldField, newField := range renames {
				value, err := client.HGet(ctx, key, oldField).Result()
				if err == redis.Nil {
					continue
				}
				if err != nil {
					return err
				}

				pipe := client.Pipeline()
				pipe.HSet(ctx, key, newField, value)
				pipe.HDel(ctx, key, oldField)
				if _, err := pipe.Exec(ctx); err != nil {
					return err
				}
			}
		}
		return iter.Err()
	}
}

// deleteKeysMatching removes every key matching any of the patterns
func deleteKeysMatching(patterns ...string) func(ctx context.Context, client *redis.Client) error {
	return func(ctx context.Context, client *redis.Client) error {
		for _, pattern := range patterns {
			iter := client.Scan(ctx, 0, pattern, 0).Iterator()
			for iter.Next(ctx) {
				if err := client.Del(ctx, iter.Val()).Err(); err != nil {
					return err
				}
			}
			if err := iter.Err(); err != nil {
				return err
			}
		}
		return nil
	}
}
