package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const leadDedupTTL = time.Hour

// LeadDedup throttles repeat contact-form submissions from the same
// email address. Key format: lead:<email>
type LeadDedup struct {
	client *redis.Client
}

// NewLeadDedup creates a LeadDedup wrapping the given Redis client.
func NewLeadDedup(client *redis.Client) *LeadDedup {
	return &LeadDedup{client: client}
}

// IsDuplicate reports whether this email submitted a lead within the
// dedup window.
func (d *LeadDedup) IsDuplicate(ctx context.Context, email string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("lead dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a lead from this email was processed (expires after
// leadDedupTTL).
func (d *LeadDedup) Mark(ctx context.Context, email string) error {
	return d.client.Set(ctx, d.key(email), "1", leadDedupTTL).Err()
}

func (d *LeadDedup) key(email string) string {
	return fmt.Sprintf("lead:%s", email)
}
