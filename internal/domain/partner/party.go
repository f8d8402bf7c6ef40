package partner

import (
	"strings"
	"time"

	"github.com/khata/backend/internal/domain/shared"
)

// Party is a buyer that owes bills to suppliers
type Party struct {
	shared.BaseEntity
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// NewParty creates a new party
func NewParty(name, address, phone string) (*Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Party name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Party name cannot exceed 200 characters")
	}
	return &Party{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Address:     strings.TrimSpace(address),
		PhoneNumber: strings.TrimSpace(phone),
	}, nil
}

// Update changes the party contact details
func (p *Party) Update(name, address, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Party name cannot be empty")
	}
	p.Name = name
	p.Address = strings.TrimSpace(address)
	p.PhoneNumber = strings.TrimSpace(phone)
	p.UpdatedAt = time.Now()
	return nil
}

// ReportName is the label printed on report headings
func (p *Party) ReportName() string {
	return p.Name
}
