// Package store persists invoice records and answers filtered, paginated
// queries over them.
package store

import (
	"context"
	"sort"
	"strings"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

// Query pagination bounds.
const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Recognized sort keys. Unknown keys fall back to SortInvoiceDateDesc.
const (
	SortInvoiceDateDesc = "invoice_date_desc"
	SortInvoiceDateAsc  = "invoice_date_asc"
	SortUpdatedAtDesc   = "updated_at_desc"
	SortUpdatedAtAsc    = "updated_at_asc"
)

// InvoiceQuery selects a page of invoice records.
type InvoiceQuery struct {
	// Term filters case-insensitively by substring over company name,
	// filename, tax invoice number and account number. Empty matches all.
	Term string
	// Company filters by substring over company name only.
	Company  string
	Page     int
	PageSize int
	Sort     string
}

// Normalize clamps paging parameters into their legal ranges.
func (q *InvoiceQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Store is the persistence surface for invoice records.
type Store interface {
	// UpsertInvoice inserts or updates by the record's upsert key and
	// reports whether a new record was created.
	UpsertInvoice(ctx context.Context, inv *model.Invoice) (bool, error)

	// QueryInvoices returns one page of matching records plus the total
	// match count.
	QueryInvoices(ctx context.Context, q InvoiceQuery) ([]*model.Invoice, int, error)

	// ListInvoices returns every record, newest invoice date first.
	ListInvoices(ctx context.Context) ([]*model.Invoice, error)

	// ReplaceInvoices swaps the full record set, used when restoring a
	// saved snapshot.
	ReplaceInvoices(ctx context.Context, invoices []*model.Invoice) error

	// CountInvoices returns the total number of stored records.
	CountInvoices(ctx context.Context) (int, error)

	// Stats aggregates energy and estimated carbon over all records.
	Stats(ctx context.Context) (*InvoiceStats, error)

	// ClearInvoices removes every record and reports how many were
	// deleted.
	ClearInvoices(ctx context.Context) (int, error)

	Close() error
}

// InvoiceStats summarizes the stored record set.
type InvoiceStats struct {
	TotalInvoices  int
	TotalEnergyKWh float64
	EstimatedCO2   float64
}

// statsFrom folds the record set into aggregate stats. Carbon is estimated
// from energy at 0.99 kg CO2e per kWh.
func statsFrom(invoices []*model.Invoice) *InvoiceStats {
	stats := &InvoiceStats{TotalInvoices: len(invoices)}
	for _, inv := range invoices {
		stats.TotalEnergyKWh += inv.TotalEnergyKWh.Or(0)
	}
	stats.EstimatedCO2 = stats.TotalEnergyKWh * 0.99 / 1000
	return stats
}

// matchesQuery reports whether the record passes both text filters.
func matchesQuery(inv *model.Invoice, q InvoiceQuery) bool {
	if q.Company != "" &&
		!strings.Contains(strings.ToLower(inv.CompanyName), strings.ToLower(q.Company)) {
		return false
	}
	if q.Term == "" {
		return true
	}
	term := strings.ToLower(q.Term)
	for _, field := range []string{
		inv.CompanyName, inv.Filename, inv.TaxInvoiceNumber, inv.AccountNumber,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// sortInvoices orders records by the query's sort key. ISO date strings
// compare correctly as plain strings.
func sortInvoices(invoices []*model.Invoice, key string) {
	var less func(a, b *model.Invoice) bool
	switch key {
	case SortInvoiceDateAsc:
		less = func(a, b *model.Invoice) bool { return a.InvoiceDate < b.InvoiceDate }
	case SortUpdatedAtDesc:
		less = func(a, b *model.Invoice) bool { return a.UpdatedAt > b.UpdatedAt }
	case SortUpdatedAtAsc:
		less = func(a, b *model.Invoice) bool { return a.UpdatedAt < b.UpdatedAt }
	default:
		less = func(a, b *model.Invoice) bool { return a.InvoiceDate > b.InvoiceDate }
	}
	sort.SliceStable(invoices, func(i, j int) bool { return less(invoices[i], invoices[j]) })
}

// pageSlice cuts one page out of the sorted result set.
func pageSlice(invoices []*model.Invoice, page, pageSize int) []*model.Invoice {
	start := (page - 1) * pageSize
	if start >= len(invoices) {
		return nil
	}
	end := start + pageSize
	if end > len(invoices) {
		end = len(invoices)
	}
	return invoices[start:end]
}
