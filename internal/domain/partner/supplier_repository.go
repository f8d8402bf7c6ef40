package partner

import "context"

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id int64) (*Supplier, error)

	// FindByName finds a supplier by its exact name
	FindByName(ctx context.Context, name string) (*Supplier, error)

	// FindByIDs finds multiple suppliers by their IDs
	FindByIDs(ctx context.Context, ids []int64) ([]Supplier, error)

	// FindAll returns every supplier ordered by name
	FindAll(ctx context.Context) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete deletes a supplier
	Delete(ctx context.Context, id int64) error
}

// PartyRepository defines the interface for party persistence
type PartyRepository interface {
	FindByID(ctx context.Context, id int64) (*Party, error)
	FindByName(ctx context.Context, name string) (*Party, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Party, error)
	FindAll(ctx context.Context) ([]Party, error)
	Save(ctx context.Context, party *Party) error
	Delete(ctx context.Context, id int64) error
}
