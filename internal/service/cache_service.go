package service

import (
	"context"

	"mirage-api/pkg/logger"
	"mirage-api/pkg/redis"
)

// TeamCache is the Redis fast path in front of the team store. Every method
// is nil-receiver safe so the service runs degraded, not broken, when Redis
// is down or absent: misses fall through to Postgres, and the credit lock
// simply admits everyone (the conditional update in the store stays the
// authority on exactly-once crediting).
type TeamCache struct {
	client *redis.Client
	log    *logger.Logger
}

func NewTeamCache(client *redis.Client, log *logger.Logger) *TeamCache {
	if client == nil {
		return nil
	}
	return &TeamCache{client: client, log: log}
}

// TeamIDByMember returns the cached owning team for a member, or "" on miss.
func (c *TeamCache) TeamIDByMember(ctx context.Context, memberID string) string {
	if c == nil {
		return ""
	}
	val, err := c.client.Get(ctx, c.client.KeyBuilder.KeyTeamByMember(memberID))
	if err != nil {
		if !redis.IsNil(err) {
			c.log.WithError(err).Warn("Team cache read failed")
		}
		return ""
	}
	return val
}

// CacheTeamIDByMember records the member to team mapping.
func (c *TeamCache) CacheTeamIDByMember(ctx context.Context, memberID, teamID string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, c.client.KeyBuilder.KeyTeamByMember(memberID), teamID, redis.TTLTeamByMember); err != nil {
		c.log.WithError(err).Warn("Team cache write failed")
	}
}

// IsSolved reports whether the solved marker for (team, question) is set.
// False on any cache failure.
func (c *TeamCache) IsSolved(ctx context.Context, teamID, questionID string) bool {
	if c == nil {
		return false
	}
	n, err := c.client.Exists(ctx, c.client.KeyBuilder.KeySolved(teamID, questionID))
	if err != nil {
		c.log.WithError(err).Warn("Solved marker read failed")
		return false
	}
	return n > 0
}

// MarkSolved sets the solved marker after a credit lands.
func (c *TeamCache) MarkSolved(ctx context.Context, teamID, questionID string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, c.client.KeyBuilder.KeySolved(teamID, questionID), "1", redis.TTLSolved); err != nil {
		c.log.WithError(err).Warn("Solved marker write failed")
	}
}

// AcquireCreditLock takes the short-lived lock that suppresses racing
// duplicate submissions for the same (team, question). True when this caller
// holds the lock, and always true without a cache.
func (c *TeamCache) AcquireCreditLock(ctx context.Context, teamID, questionID string) bool {
	if c == nil {
		return true
	}
	ok, err := c.client.SetNX(ctx, c.client.KeyBuilder.KeyCreditLock(teamID, questionID), "1", redis.TTLCreditLock)
	if err != nil {
		c.log.WithError(err).Warn("Credit lock acquire failed, admitting submission")
		return true
	}
	return ok
}

// ReleaseCreditLock drops the lock so a retry is not blocked after a failed
// credit.
func (c *TeamCache) ReleaseCreditLock(ctx context.Context, teamID, questionID string) {
	if c == nil {
		return
	}
	if err := c.client.Delete(ctx, c.client.KeyBuilder.KeyCreditLock(teamID, questionID)); err != nil {
		c.log.WithError(err).Warn("Credit lock release failed")
	}
}
