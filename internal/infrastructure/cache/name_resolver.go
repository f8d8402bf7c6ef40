package cache

import (
	"context"
	"time"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NameResolver looks entity names up in the cache and falls back to the
// supplier and party repositories on a miss
type NameResolver struct {
	cache     NameCache
	suppliers partner.SupplierRepository
	parties   partner.PartyRepository
	ttl       time.Duration
	logger    *zap.Logger
}

// NewNameResolver creates a resolver. A zero ttl uses DefaultNameTTL.
func NewNameResolver(cache NameCache, suppliers partner.SupplierRepository, parties partner.PartyRepository, ttl time.Duration, logger *zap.Logger) *NameResolver {
	if ttl <= 0 {
		ttl = DefaultNameTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NameResolver{cache: cache, suppliers: suppliers, parties: parties, ttl: ttl, logger: logger}
}

// ReportName returns the heading name of a supplier or party
func (r *NameResolver) ReportName(ctx context.Context, role partner.Role, id int64) (string, error) {
	name, ok, err := r.cache.Get(ctx, role, id)
	if err != nil {
		// a broken cache must not fail the report
		r.logger.Warn("Name cache read failed", zap.String("role", role.String()), zap.Int64("id", id), zap.Error(err))
	}
	if ok {
		return name, nil
	}

	switch role {
	case partner.RoleSupplier:
		s, err := r.suppliers.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		name = s.ReportName()
	case partner.RoleParty:
		p, err := r.parties.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		name = p.ReportName()
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be supplier or party")
	}

	if err := r.cache.Set(ctx, role, id, name, r.ttl); err != nil {
		r.logger.Warn("Name cache write failed", zap.String("role", role.String()), zap.Int64("id", id), zap.Error(err))
	}
	return name, nil
}

// Forget drops a cached name after the entity was renamed or deleted
func (r *NameResolver) Forget(ctx context.Context, role partner.Role, id int64) {
	if err := r.cache.Invalidate(ctx, role, id); err != nil {
		r.logger.Warn("Name cache invalidation failed", zap.String("role", role.String()), zap.Int64("id", id), zap.Error(err))
	}
}

var _ report.NameResolver = (*NameResolver)(nil)
