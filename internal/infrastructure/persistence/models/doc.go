// Package models holds the GORM rows behind the stockroom tables.
//
// Domain types carry no ORM tags; each model here converts with ToDomain and
// a <Model>FromDomain constructor. Column names and unique indexes mirror the
// SQL migrations so the sqlite test schema (AutoMigrate) rejects the same
// duplicates PostgreSQL does.
//
// inventory.go covers identifiers, locations, suppliers, item templates,
// pictures, stock books, prices, invoices, purchases, receipts and item sales;
// accounts.go covers staff users.
package models
