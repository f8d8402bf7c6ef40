package persistence

import (
	"context"

	"github.com/khata/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormUnitOfWork runs ledger operations inside one database transaction
type GormUnitOfWork struct {
	db *Database
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *Database) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do begins a transaction, hands fn repositories bound to it and commits
// when fn returns nil. Any error or panic rolls the transaction back.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ledger.Repositories) error) error {
	return u.db.Transaction(ctx, func(tx *gorm.DB) error {
		return fn(ctx, NewLedgerRepositories(tx))
	})
}

// NewLedgerRepositories binds every ledger repository to db
func NewLedgerRepositories(db *gorm.DB) ledger.Repositories {
	return ledger.Repositories{
		Bills:      NewGormRegisterEntryRepository(db),
		Memos:      NewGormMemoEntryRepository(db),
		Parts:      NewGormPartPaymentRepository(db),
		OrderForms: NewGormOrderFormRepository(db),
		Audit:      NewGormAuditRepository(db),
	}
}

var _ ledger.UnitOfWork = (*GormUnitOfWork)(nil)
