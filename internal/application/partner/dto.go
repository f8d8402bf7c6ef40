package partner

import (
	"time"

	"github.com/khata/backend/internal/domain/partner"
)

// CreatePartnerRequest represents a request to create a supplier or a party
type CreatePartnerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Address     string `json:"address" binding:"max=500"`
	PhoneNumber string `json:"phone_number" binding:"max=50"`
}

// UpdatePartnerRequest represents a request to update a supplier or a party.
// Nil fields keep their current value.
type UpdatePartnerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
}

// PartnerResponse represents a supplier or a party in API responses
type PartnerResponse struct {
	ID          int64     `json:"id"`
	Role        string    `json:"role"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier to a response
func ToSupplierResponse(s *partner.Supplier) PartnerResponse {
	return PartnerResponse{
		ID:          s.ID,
		Role:        partner.RoleSupplier.String(),
		Name:        s.Name,
		Address:     s.Address,
		PhoneNumber: s.PhoneNumber,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToPartyResponse converts a party to a response
func ToPartyResponse(p *partner.Party) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID,
		Role:        partner.RoleParty.String(),
		Name:        p.Name,
		Address:     p.Address,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateBankRequest represents a request to register a bank
type CreateBankRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// BankResponse represents a bank in API responses
type BankResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ToBankResponse converts a bank to a response
func ToBankResponse(b *partner.Bank) BankResponse {
	return BankResponse{ID: b.ID, Name: b.Name, Address: b.Address}
}

func pick(next *string, current string) string {
	if next == nil {
		return current
	}
	return *next
}
