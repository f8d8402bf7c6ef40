// Package models contains the GORM persistence models of the ledger tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// entity with ToDomain/FromDomain.
//
// Money columns are numeric(14,2). The ledger works in whole rupees, so
// ToDomain floors them.
package models
