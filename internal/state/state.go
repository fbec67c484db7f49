// Package state owns the mutable working set behind the dashboard: the last
// ESG submission, the last uploaded spreadsheet rows, and the session's
// invoice summaries. Everything is guarded by one mutex and mirrored to
// flat-file snapshots on mutation.
package state

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenbdg/africaesg/backend/internal/extraction"
	"github.com/greenbdg/africaesg/backend/internal/model"
	"github.com/greenbdg/africaesg/backend/internal/store"
)

// liveInvoiceWindow bounds how many recent invoices ride on each live
// snapshot.
const liveInvoiceWindow = 6

// State is the in-process session store. It survives restarts through the
// snapshot files, not through the database.
type State struct {
	mu    sync.RWMutex
	files *store.SnapshotFiles
	log   zerolog.Logger

	lastESGInput map[string]any
	uploadedRows []map[string]any
	invoices     []*model.Invoice
}

// New restores state from the snapshot files under the data directory.
func New(files *store.SnapshotFiles, log zerolog.Logger) *State {
	return &State{
		files:        files,
		log:          log,
		lastESGInput: files.LoadESGInput(),
		uploadedRows: files.LoadUploadedRows(),
		invoices:     files.LoadInvoices(),
	}
}

// EnsureSeed loads the demo invoice when the session starts empty, so the
// dashboard always has something to show.
func (s *State) EnsureSeed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.invoices) > 0 {
		return
	}
	seed := store.SeedInvoice()
	extraction.Normalize(seed, now)
	s.invoices = append(s.invoices, seed)
	s.persistInvoicesLocked()
}

// SetESGInput records the latest analysed submission.
func (s *State) SetESGInput(input map[string]any) {
	s.mu.Lock()
	s.lastESGInput = input
	if err := s.files.SaveESGInput(input); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist ESG input snapshot")
	}
	s.mu.Unlock()
}

// SetUploadedRows records the latest spreadsheet upload.
func (s *State) SetUploadedRows(rows []map[string]any) {
	s.mu.Lock()
	s.uploadedRows = rows
	if err := s.files.SaveUploadedRows(rows); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist uploaded rows snapshot")
	}
	s.mu.Unlock()
}

// AppendInvoice adds one extracted summary to the session list and persists
// the list.
func (s *State) AppendInvoice(inv *model.Invoice) {
	s.mu.Lock()
	s.invoices = append(s.invoices, inv)
	s.persistInvoicesLocked()
	s.mu.Unlock()
}

// AppendInvoices adds several summaries under one persistence pass, used by
// bulk upload.
func (s *State) AppendInvoices(invoices []*model.Invoice) {
	if len(invoices) == 0 {
		return
	}
	s.mu.Lock()
	s.invoices = append(s.invoices, invoices...)
	s.persistInvoicesLocked()
	s.mu.Unlock()
}

// ReplaceInvoices swaps the full session list, used after a database
// restore.
func (s *State) ReplaceInvoices(invoices []*model.Invoice) {
	s.mu.Lock()
	s.invoices = append([]*model.Invoice(nil), invoices...)
	s.persistInvoicesLocked()
	s.mu.Unlock()
}

func (s *State) persistInvoicesLocked() {
	if err := s.files.SaveInvoices(s.invoices); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist invoice snapshot")
	}
}

// Invoices returns a copy of the session invoice list, oldest first.
func (s *State) Invoices() []*model.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Invoice(nil), s.invoices...)
}

// RecentInvoices returns the newest n session invoices, oldest first.
func (s *State) RecentInvoices(n int) []*model.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || len(s.invoices) == 0 {
		return nil
	}
	start := len(s.invoices) - n
	if start < 0 {
		start = 0
	}
	return append([]*model.Invoice(nil), s.invoices[start:]...)
}

// UploadedRows returns a copy of the last spreadsheet upload.
func (s *State) UploadedRows() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]map[string]any(nil), s.uploadedRows...)
}

// ESGInput returns the last analysed submission.
func (s *State) ESGInput() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastESGInput
}

// Snapshot projects the current working set into a live update payload.
func (s *State) Snapshot(now time.Time) *model.LiveSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.invoices) - liveInvoiceWindow
	if start < 0 {
		start = 0
	}
	recent := append([]*model.Invoice(nil), s.invoices[start:]...)

	input := s.lastESGInput
	if input == nil {
		input = map[string]any{}
	}

	return &model.LiveSnapshot{
		Timestamp:           extraction.Timestamp(now),
		LastESGInput:        input,
		LastESGUploadedRows: len(s.uploadedRows),
		InvoiceCount:        len(s.invoices),
		LastInvoices:        recent,
	}
}
