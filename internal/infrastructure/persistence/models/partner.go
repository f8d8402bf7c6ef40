package models

import (
	"github.com/khata/backend/internal/domain/partner"
)

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex:idx_supplier_name"`
	Address     string `gorm:"type:text"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(50)"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "supplier"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Address:     m.Address,
		PhoneNumber: m.PhoneNumber,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Address = s.Address
	m.PhoneNumber = s.PhoneNumber
}

// PartyModel is the persistence model for the Party domain entity.
type PartyModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex:idx_party_name"`
	Address     string `gorm:"type:text"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "party"
}

// ToDomain converts the persistence model to a domain Party entity.
func (m *PartyModel) ToDomain() *partner.Party {
	return &partner.Party{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Address:     m.Address,
		PhoneNumber: m.PhoneNumber,
	}
}

// FromDomain populates the persistence model from a domain Party entity.
func (m *PartyModel) FromDomain(p *partner.Party) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Address = p.Address
	m.PhoneNumber = p.PhoneNumber
}

// BankModel is the persistence model for the Bank domain entity.
type BankModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;uniqueIndex:idx_bank_name"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BankModel) TableName() string {
	return "bank"
}

// ToDomain converts the persistence model to a domain Bank entity.
func (m *BankModel) ToDomain() *partner.Bank {
	return &partner.Bank{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
	}
}

// FromDomain populates the persistence model from a domain Bank entity.
func (m *BankModel) FromDomain(b *partner.Bank) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Address = b.Address
}
