package partner

import (
	"context"
	"errors"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/domain/shared"
)

// NameInvalidator drops a cached report name after an entity changes
type NameInvalidator interface {
	Forget(ctx context.Context, role partner.Role, id int64)
}

type noopInvalidator struct{}

func (noopInvalidator) Forget(context.Context, partner.Role, int64) {}

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	names        NameInvalidator
}

// NewSupplierService creates a new SupplierService. names may be nil.
func NewSupplierService(supplierRepo partner.SupplierRepository, names NameInvalidator) *SupplierService {
	if names == nil {
		names = noopInvalidator{}
	}
	return &SupplierService{
		supplierRepo: supplierRepo,
		names:        names,
	}
}

// Create creates a new supplier. Names are unique.
func (s *SupplierService) Create(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Address, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, supplier.Name, 0); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id int64) (*PartnerResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List returns every supplier ordered by name
func (s *SupplierService) List(ctx context.Context) ([]PartnerResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PartnerResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out, nil
}

// Update updates a supplier
func (s *SupplierService) Update(ctx context.Context, id int64, req UpdatePartnerRequest) (*PartnerResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(
		pick(req.Name, supplier.Name),
		pick(req.Address, supplier.Address),
		pick(req.PhoneNumber, supplier.PhoneNumber),
	); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, supplier.Name, supplier.ID); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	s.names.Forget(ctx, partner.RoleSupplier, supplier.ID)
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete deletes a supplier. Suppliers with ledger rows fail with
// ForeignKeyViolation.
func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.names.Forget(ctx, partner.RoleSupplier, id)
	return nil
}

func (s *SupplierService) ensureNameFree(ctx context.Context, name string, self int64) error {
	existing, err := s.supplierRepo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name already exists")
	}
	return nil
}
