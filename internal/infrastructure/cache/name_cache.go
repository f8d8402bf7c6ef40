// Package cache keeps display names of suppliers and parties close to the
// report builder. Redis is used when configured, an in-memory map otherwise.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/khata/backend/internal/domain/partner"
)

// DefaultNameTTL bounds how long a renamed entity can show its old name
const DefaultNameTTL = 10 * time.Minute

// NameCache stores entity display names keyed by role and id
type NameCache interface {
	// Get returns the cached name. ok is false on a miss.
	Get(ctx context.Context, role partner.Role, id int64) (name string, ok bool, err error)
	Set(ctx context.Context, role partner.Role, id int64, name string, ttl time.Duration) error
	Invalidate(ctx context.Context, role partner.Role, id int64) error
	Close() error
}

func nameKey(role partner.Role, id int64) string {
	return fmt.Sprintf("name:%s:%d", role, id)
}
