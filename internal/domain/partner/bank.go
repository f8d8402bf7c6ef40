package partner

import (
	"context"
	"strings"

	"github.com/khata/backend/internal/domain/shared"
)

// Bank is the bank a memo cheque is drawn on
type Bank struct {
	shared.BaseEntity
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NewBank creates a new bank
func NewBank(name, address string) (*Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Bank name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Bank name cannot exceed 200 characters")
	}
	return &Bank{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
	}, nil
}

// BankRepository defines the interface for bank persistence
type BankRepository interface {
	FindByID(ctx context.Context, id int64) (*Bank, error)

	// FindByName finds a bank by its exact name
	FindByName(ctx context.Context, name string) (*Bank, error)

	// FindAll returns every bank ordered by name
	FindAll(ctx context.Context) ([]Bank, error)

	Save(ctx context.Context, bank *Bank) error
}
