package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
)

const slotCachePrefix = "registry:deployment:"

// slotCache is a read-through redis cache of active deployment slots.
// A nil *slotCache is valid and disables caching, so the registry can
// run without redis.
type slotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newSlotCache(client *redis.Client, ttl time.Duration) *slotCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &slotCache{client: client, ttl: ttl}
}

func (c *slotCache) get(ctx context.Context, deploymentName string) *models.DeploymentSlot {
	if c == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, slotCachePrefix+deploymentName).Bytes()
	if err != nil {
		// cache miss or redis unavailable; fall through to the snapshot
		return nil
	}
	var slot models.DeploymentSlot
	if err := json.Unmarshal(raw, &slot); err != nil {
		return nil
	}
	return &slot
}

func (c *slotCache) set(ctx context.Context, slot *models.DeploymentSlot) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slot)
	if err != nil {
		return
	}
	c.client.Set(ctx, slotCachePrefix+slot.DeploymentName, raw, c.ttl)
}

func (c *slotCache) invalidate(ctx context.Context, deploymentName string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, slotCachePrefix+deploymentName)
}
