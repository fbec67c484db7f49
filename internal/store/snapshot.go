package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

// Snapshot file names under the data directory.
const (
	lastESGInputFile  = "last_esg_input.json"
	lastESGRowsFile   = "last_esg_uploaded_rows.json"
	lastInvoicesFile  = "last_invoices.json"
)

// SnapshotFiles persists the dashboard's working state as flat JSON files
// so a restart without a database keeps the last session's data.
type SnapshotFiles struct {
	dir string
}

// NewSnapshotFiles roots snapshot persistence at dir.
func NewSnapshotFiles(dir string) *SnapshotFiles {
	if dir == "" {
		dir = "."
	}
	return &SnapshotFiles{dir: dir}
}

func (s *SnapshotFiles) SaveESGInput(input map[string]any) error {
	return s.write(lastESGInputFile, input)
}

func (s *SnapshotFiles) LoadESGInput() map[string]any {
	out := map[string]any{}
	s.read(lastESGInputFile, &out)
	return out
}

func (s *SnapshotFiles) SaveUploadedRows(rows []map[string]any) error {
	return s.write(lastESGRowsFile, rows)
}

func (s *SnapshotFiles) LoadUploadedRows() []map[string]any {
	var out []map[string]any
	s.read(lastESGRowsFile, &out)
	return out
}

func (s *SnapshotFiles) SaveInvoices(invoices []*model.Invoice) error {
	return s.write(lastInvoicesFile, invoices)
}

func (s *SnapshotFiles) LoadInvoices() []*model.Invoice {
	var out []*model.Invoice
	s.read(lastInvoicesFile, &out)
	return out
}

// write lands the JSON atomically: a same-directory temp file renamed over
// the target, so a crash mid-write cannot leave a truncated snapshot.
func (s *SnapshotFiles) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	return nil
}

// read fills v from the named file; a missing or corrupt file leaves v at
// its zero value.
func (s *SnapshotFiles) read(name string, v any) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}
