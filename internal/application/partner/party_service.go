package partner

import (
	"context"
	"errors"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/domain/shared"
)

// PartyService handles party-related business operations
type PartyService struct {
	partyRepo partner.PartyRepository
	names     NameInvalidator
}

// NewPartyService creates a new PartyService. names may be nil.
func NewPartyService(partyRepo partner.PartyRepository, names NameInvalidator) *PartyService {
	if names == nil {
		names = noopInvalidator{}
	}
	return &PartyService{
		partyRepo: partyRepo,
		names:     names,
	}
}

// Create creates a new party. Names are unique.
func (s *PartyService) Create(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	party, err := partner.NewParty(req.Name, req.Address, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, party.Name, 0); err != nil {
		return nil, err
	}
	if err := s.partyRepo.Save(ctx, party); err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// GetByID retrieves a party by ID
func (s *PartyService) GetByID(ctx context.Context, id int64) (*PartnerResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// List returns every party ordered by name
func (s *PartyService) List(ctx context.Context) ([]PartnerResponse, error) {
	parties, err := s.partyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PartnerResponse, len(parties))
	for i := range parties {
		out[i] = ToPartyResponse(&parties[i])
	}
	return out, nil
}

// Update updates a party
func (s *PartyService) Update(ctx context.Context, id int64, req UpdatePartnerRequest) (*PartnerResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := party.Update(
		pick(req.Name, party.Name),
		pick(req.Address, party.Address),
		pick(req.PhoneNumber, party.PhoneNumber),
	); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, party.Name, party.ID); err != nil {
		return nil, err
	}
	if err := s.partyRepo.Save(ctx, party); err != nil {
		return nil, err
	}
	s.names.Forget(ctx, partner.RoleParty, party.ID)
	response := ToPartyResponse(party)
	return &response, nil
}

// Delete deletes a party. Parties with ledger rows fail with
// ForeignKeyViolation.
func (s *PartyService) Delete(ctx context.Context, id int64) error {
	if err := s.partyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.names.Forget(ctx, partner.RoleParty, id)
	return nil
}

func (s *PartyService) ensureNameFree(ctx context.Context, name string, self int64) error {
	existing, err := s.partyRepo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return shared.NewDomainError("ALREADY_EXISTS", "Party with this name already exists")
	}
	return nil
}
