package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
)

// snapshotTTL bounds staleness if the service dies between a mutation and
// its cache refresh.
const snapshotTTL = 30 * time.Second

// SnapshotCache keeps the serialized queue snapshot in Redis for the
// public status board. The ledger is the only writer; it refreshes the key
// after every committed mutation, so readers never see partial state.
type SnapshotCache struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

func NewSnapshotCache(redisClient *redis.Client, logger *logrus.Logger) *SnapshotCache {
	return &SnapshotCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (c *SnapshotCache) Get(ctx context.Context) (*domain.Snapshot, bool) {
	raw, err := c.redisClient.Get(ctx, constant.RedisSnapshotKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnf("snapshot cache read failed: %v", err)
		}
		return nil, false
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		c.logger.Warnf("snapshot cache holds invalid payload: %v", err)
		return nil, false
	}

	return &snap, true
}

func (c *SnapshotCache) Set(ctx context.Context, snap domain.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warnf("failed to marshal snapshot: %v", err)
		return
	}

	if err := c.redisClient.Set(ctx, constant.RedisSnapshotKey, payload, snapshotTTL).Err(); err != nil {
		c.logger.Warnf("snapshot cache write failed: %v", err)
	}
}
