package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

func TestSnapshotFilesRoundTrip(t *testing.T) {
	files := NewSnapshotFiles(t.TempDir())

	invoices := []*model.Invoice{
		{Filename: "a.pdf", CompanyName: "Acme", TotalEnergyKWh: model.Num(100)},
		{Filename: "b.pdf", WaterUsage: model.Number{}},
	}
	require.NoError(t, files.SaveInvoices(invoices))

	loaded := files.LoadInvoices()
	require.Len(t, loaded, 2)
	assert.Equal(t, "Acme", loaded[0].CompanyName)
	assert.Equal(t, 100.0, loaded[0].TotalEnergyKWh.Or(0))
	assert.False(t, loaded[1].WaterUsage.Valid, "null round-trips to no-value")

	input := map[string]any{"company_name": "Acme", "carbon_emissions_tons": 18500.0}
	require.NoError(t, files.SaveESGInput(input))
	assert.Equal(t, "Acme", files.LoadESGInput()["company_name"])

	rows := []map[string]any{{"site": "Durban"}}
	require.NoError(t, files.SaveUploadedRows(rows))
	assert.Len(t, files.LoadUploadedRows(), 1)
}

func TestSnapshotFilesMissing(t *testing.T) {
	files := NewSnapshotFiles(t.TempDir())
	assert.Empty(t, files.LoadInvoices())
	assert.Empty(t, files.LoadESGInput())
	assert.Empty(t, files.LoadUploadedRows())
}

func TestSnapshotFilesCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "last_invoices.json"), []byte("{nonsense"), 0o644))

	files := NewSnapshotFiles(dir)
	assert.Empty(t, files.LoadInvoices(), "corrupt snapshot loads as empty")
}

func TestSeedInvoice(t *testing.T) {
	seed := SeedInvoice()
	assert.Equal(t, "Dube Tradeport", seed.CompanyName)
	assert.Equal(t, "INV-DTZ-2024-001", seed.TaxInvoiceNumber)
	assert.Len(t, seed.SixMonthHistory, 6)
	assert.Equal(t, 185000.50, seed.TotalCurrentCharges.Or(0))
}
