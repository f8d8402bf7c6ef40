package partner

import (
	"context"
	"errors"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/domain/shared"
)

// BankService registers the banks memo cheques are drawn on
type BankService struct {
	bankRepo partner.BankRepository
}

// NewBankService creates a new BankService
func NewBankService(bankRepo partner.BankRepository) *BankService {
	return &BankService{bankRepo: bankRepo}
}

// Create registers a bank. Names are unique.
func (s *BankService) Create(ctx context.Context, req CreateBankRequest) (*BankResponse, error) {
	bank, err := partner.NewBank(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	_, err = s.bankRepo.FindByName(ctx, bank.Name)
	switch {
	case err == nil:
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bank with this name already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}
	if err := s.bankRepo.Save(ctx, bank); err != nil {
		return nil, err
	}
	resp := ToBankResponse(bank)
	return &resp, nil
}

// GetByID retrieves a bank by ID
func (s *BankService) GetByID(ctx context.Context, id int64) (*BankResponse, error) {
	bank, err := s.bankRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBankResponse(bank)
	return &resp, nil
}

// GetByName resolves a bank by its exact name
func (s *BankService) GetByName(ctx context.Context, name string) (*BankResponse, error) {
	bank, err := s.bankRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToBankResponse(bank)
	return &resp, nil
}

// List returns every bank ordered by name
func (s *BankService) List(ctx context.Context) ([]BankResponse, error) {
	banks, err := s.bankRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BankResponse, len(banks))
	for i := range banks {
		out[i] = ToBankResponse(&banks[i])
	}
	return out, nil
}
