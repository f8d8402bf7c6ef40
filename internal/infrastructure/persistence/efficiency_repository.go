package persistence

import (
	"context"

	"github.com/khata/backend/internal/domain/ledger"
	"github.com/khata/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormEfficiencyRepository implements report.Efficiency with UNION queries
// over register_entry and order_form
type GormEfficiencyRepository struct {
	db *gorm.DB
}

// NewGormEfficiencyRepository creates a new GormEfficiencyRepository
func NewGormEfficiencyRepository(db *gorm.DB) *GormEfficiencyRepository {
	return &GormEfficiencyRepository{db: db}
}

const (
	partiesOfSupplierSQL = `SELECT party_id FROM register_entry WHERE supplier_id = ?
UNION
SELECT party_id FROM order_form WHERE supplier_id = ?`

	suppliersOfPartySQL = `SELECT supplier_id FROM register_entry WHERE party_id = ?
UNION
SELECT supplier_id FROM order_form WHERE party_id = ?`

	activePairsSQL = `SELECT supplier_id, party_id FROM register_entry WHERE register_date BETWEEN ? AND ?
UNION
SELECT supplier_id, party_id FROM order_form WHERE register_date BETWEEN ? AND ?`
)

// FilterParties keeps the candidates the supplier has any bill or order form with
func (r *GormEfficiencyRepository) FilterParties(ctx context.Context, supplierID int64, candidates []int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Raw(partiesOfSupplierSQL, supplierID, supplierID).Scan(&ids).Error; err != nil {
		return nil, translateError("filter parties", err)
	}
	return keep(candidates, ids), nil
}

// FilterSuppliers keeps the candidates the party has any bill or order form with
func (r *GormEfficiencyRepository) FilterSuppliers(ctx context.Context, partyID int64, candidates []int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Raw(suppliersOfPartySQL, partyID, partyID).Scan(&ids).Error; err != nil {
		return nil, translateError("filter suppliers", err)
	}
	return keep(candidates, ids), nil
}

// SmartSelection keeps the suppliers and parties with a bill or order form in range
func (r *GormEfficiencyRepository) SmartSelection(ctx context.Context, supplierIDs, partyIDs []int64, rng ledger.DateRange) ([]int64, []int64, error) {
	var pairs []struct {
		SupplierID int64
		PartyID    int64
	}
	from, to := ledger.DateOnly(rng.From), ledger.DateOnly(rng.To)
	if err := r.db.WithContext(ctx).Raw(activePairsSQL, from, to, from, to).Scan(&pairs).Error; err != nil {
		return nil, nil, translateError("smart selection", err)
	}
	suppliers := make([]int64, 0, len(pairs))
	parties := make([]int64, 0, len(pairs))
	for _, p := range pairs {
		suppliers = append(suppliers, p.SupplierID)
		parties = append(parties, p.PartyID)
	}
	return keep(partyIDs, parties), keep(supplierIDs, suppliers), nil
}

// keep returns the candidates present in found, in candidate order
func keep(candidates, found []int64) []int64 {
	set := make(map[int64]struct{}, len(found))
	for _, id := range found {
		set[id] = struct{}{}
	}
	out := make([]int64, 0, len(candidates))
	for _, id := range candidates {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

var _ report.Efficiency = (*GormEfficiencyRepository)(nil)
