package partner

import (
	"strings"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// Role tells which side of a bill an entity sits on
type Role string

const (
	RoleSupplier Role = "supplier"
	RoleParty    Role = "party"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleSupplier || r == RoleParty
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Other returns the opposite role
func (r Role) Other() Role {
	if r == RoleSupplier {
		return RoleParty
	}
	return RoleSupplier
}

// Label is the prefix used for report headings of this role
func (r Role) Label() string {
	if r == RoleSupplier {
		return "Supplier Name: "
	}
	return "Party Name: "
}

// Supplier is a trader who raises bills against parties
type Supplier struct {
	shared.BaseEntity
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// NewSupplier creates a new supplier
func NewSupplier(name, address, phone string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return &Supplier{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Address:     strings.TrimSpace(address),
		PhoneNumber: strings.TrimSpace(phone),
	}, nil
}

// Update changes the supplier contact details
func (s *Supplier) Update(name, address, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.Address = strings.TrimSpace(address)
	s.PhoneNumber = strings.TrimSpace(phone)
	s.UpdatedAt = time.Now()
	return nil
}

// ReportName is the label printed on report headings
func (s *Supplier) ReportName() string {
	return s.Name
}
