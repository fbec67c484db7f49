package store

import (
	"context"
	"sync"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

// MemoryStore is an in-process Store used in development and tests, and as
// the fallback when no Firestore project is configured. Records are copied
// on the way in and out so callers cannot alias internal state.
type MemoryStore struct {
	mu       sync.RWMutex
	invoices map[string]*model.Invoice
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{invoices: make(map[string]*model.Invoice)}
}

func (s *MemoryStore) UpsertInvoice(_ context.Context, inv *model.Invoice) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := inv.UpsertKey()
	existing, found := s.invoices[key]
	record := cloneInvoice(inv)
	if found {
		mergeInvoice(record, existing)
	}
	s.invoices[key] = record
	return !found, nil
}

// mergeInvoice fills fields the incoming write omitted from the stored
// record, mirroring the merge-write the document store performs: a partial
// later write must not clear values a previous write stored.
func mergeInvoice(record, prior *model.Invoice) {
	if record.Filename == "" {
		record.Filename = prior.Filename
	}
	if record.CompanyName == "" {
		record.CompanyName = prior.CompanyName
	}
	if record.AccountNumber == "" {
		record.AccountNumber = prior.AccountNumber
	}
	if record.TaxInvoiceNumber == "" {
		record.TaxInvoiceNumber = prior.TaxInvoiceNumber
	}
	if record.InvoiceDate == "" {
		record.InvoiceDate = prior.InvoiceDate
	}
	if record.DueDate == "" {
		record.DueDate = prior.DueDate
	}
	if !record.TotalCurrentCharges.Valid {
		record.TotalCurrentCharges = prior.TotalCurrentCharges
	}
	if !record.TotalAmountDue.Valid {
		record.TotalAmountDue = prior.TotalAmountDue
	}
	if !record.TotalEnergyKWh.Valid {
		record.TotalEnergyKWh = prior.TotalEnergyKWh
	}
	if !record.WaterUsage.Valid {
		record.WaterUsage = prior.WaterUsage
	}
	if !record.WaterCost.Valid {
		record.WaterCost = prior.WaterCost
	}
	if len(record.Categories) == 0 {
		record.Categories = append([]string(nil), prior.Categories...)
	}
	if len(record.SixMonthHistory) == 0 {
		record.SixMonthHistory = append([]model.MonthHistory(nil), prior.SixMonthHistory...)
	}
	if record.LogoBase64 == "" {
		record.LogoBase64 = prior.LogoBase64
	}
	if record.CreatedAt == "" {
		record.CreatedAt = prior.CreatedAt
	}
	if record.UpdatedAt == "" {
		record.UpdatedAt = prior.UpdatedAt
	}
}

func (s *MemoryStore) QueryInvoices(_ context.Context, q InvoiceQuery) ([]*model.Invoice, int, error) {
	q.Normalize()

	s.mu.RLock()
	matched := make([]*model.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if matchesQuery(inv, q) {
			matched = append(matched, cloneInvoice(inv))
		}
	}
	s.mu.RUnlock()

	sortInvoices(matched, q.Sort)
	return pageSlice(matched, q.Page, q.PageSize), len(matched), nil
}

func (s *MemoryStore) ListInvoices(_ context.Context) ([]*model.Invoice, error) {
	s.mu.RLock()
	out := make([]*model.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, cloneInvoice(inv))
	}
	s.mu.RUnlock()

	sortInvoices(out, SortInvoiceDateDesc)
	return out, nil
}

func (s *MemoryStore) ReplaceInvoices(_ context.Context, invoices []*model.Invoice) error {
	next := make(map[string]*model.Invoice, len(invoices))
	for _, inv := range invoices {
		next[inv.UpsertKey()] = cloneInvoice(inv)
	}

	s.mu.Lock()
	s.invoices = next
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) CountInvoices(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices), nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*InvoiceStats, error) {
	all, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return statsFrom(all), nil
}

func (s *MemoryStore) ClearInvoices(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.invoices)
	s.invoices = make(map[string]*model.Invoice)
	return n, nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneInvoice(inv *model.Invoice) *model.Invoice {
	out := *inv
	if inv.Categories != nil {
		out.Categories = append([]string(nil), inv.Categories...)
	}
	if inv.SixMonthHistory != nil {
		out.SixMonthHistory = append([]model.MonthHistory(nil), inv.SixMonthHistory...)
	}
	return &out
}
