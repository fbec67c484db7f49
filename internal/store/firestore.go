package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

const invoiceCollection = "invoices"

// FirestoreStore implements Store on Cloud Firestore. Records are stored as
// plain JSON maps and merged on write, so a later upsert that omits a field
// does not clear the value a previous write stored.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) UpsertInvoice(ctx context.Context, inv *model.Invoice) (bool, error) {
	ref := s.client.Collection(invoiceCollection).Doc(docID(inv))

	_, err := ref.Get(ctx)
	created := false
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return false, fmt.Errorf("check existing invoice: %w", err)
		}
		created = true
	}

	doc, err := invoiceToDoc(inv)
	if err != nil {
		return false, err
	}
	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return false, fmt.Errorf("upsert invoice: %w", err)
	}
	return created, nil
}

// QueryInvoices filters in process after a full collection read. The
// substring filter has no Firestore-native equivalent, and the collection
// holds invoice summaries rather than raw documents, so the read stays
// small.
func (s *FirestoreStore) QueryInvoices(ctx context.Context, q InvoiceQuery) ([]*model.Invoice, int, error) {
	q.Normalize()

	all, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := all[:0]
	for _, inv := range all {
		if matchesQuery(inv, q) {
			matched = append(matched, inv)
		}
	}

	sortInvoices(matched, q.Sort)
	return pageSlice(matched, q.Page, q.PageSize), len(matched), nil
}

func (s *FirestoreStore) ListInvoices(ctx context.Context) ([]*model.Invoice, error) {
	iter := s.client.Collection(invoiceCollection).Documents(ctx)
	defer iter.Stop()

	var out []*model.Invoice
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		inv, err := docToInvoice(snap.Data())
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}

	sortInvoices(out, SortInvoiceDateDesc)
	return out, nil
}

func (s *FirestoreStore) ReplaceInvoices(ctx context.Context, invoices []*model.Invoice) error {
	keep := make(map[string]struct{}, len(invoices))
	bw := s.client.BulkWriter(ctx)

	for _, inv := range invoices {
		id := docID(inv)
		keep[id] = struct{}{}
		doc, err := invoiceToDoc(inv)
		if err != nil {
			return err
		}
		if _, err := bw.Set(s.client.Collection(invoiceCollection).Doc(id), doc, firestore.MergeAll); err != nil {
			return fmt.Errorf("replace invoices: %w", err)
		}
	}

	iter := s.client.Collection(invoiceCollection).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("replace invoices: %w", err)
		}
		if _, kept := keep[snap.Ref.ID]; !kept {
			if _, err := bw.Delete(snap.Ref); err != nil {
				return fmt.Errorf("replace invoices: %w", err)
			}
		}
	}

	bw.End()
	return nil
}

func (s *FirestoreStore) CountInvoices(ctx context.Context) (int, error) {
	iter := s.client.Collection(invoiceCollection).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count invoices: %w", err)
		}
		count++
	}
	return count, nil
}

func (s *FirestoreStore) Stats(ctx context.Context) (*InvoiceStats, error) {
	all, err := s.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return statsFrom(all), nil
}

func (s *FirestoreStore) ClearInvoices(ctx context.Context) (int, error) {
	iter := s.client.Collection(invoiceCollection).Documents(ctx)
	defer iter.Stop()

	bw := s.client.BulkWriter(ctx)
	deleted := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("clear invoices: %w", err)
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			return deleted, fmt.Errorf("clear invoices: %w", err)
		}
		deleted++
	}
	bw.End()
	return deleted, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// docID derives a Firestore-safe document ID from the upsert key.
func docID(inv *model.Invoice) string {
	return strings.ReplaceAll(inv.UpsertKey(), "/", "_")
}

// invoiceToDoc round-trips through JSON so the stored field names match the
// wire contract. Absent values (null numerics, empty strings) are dropped
// from the map before the merge write; a MergeAll set of an explicit null
// would clear the stored value, where an omitted key leaves it intact.
func invoiceToDoc(inv *model.Invoice) (map[string]any, error) {
	raw, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("encode invoice: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode invoice: %w", err)
	}
	for k, v := range doc {
		if v == nil {
			delete(doc, k)
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			delete(doc, k)
		}
	}
	return doc, nil
}

func docToInvoice(doc map[string]any) (*model.Invoice, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	var inv model.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &inv, nil
}
