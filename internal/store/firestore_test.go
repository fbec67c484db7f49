package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

func TestInvoiceDocOmitsAbsentFields(t *testing.T) {
	var partial model.Invoice
	require.NoError(t, json.Unmarshal(
		[]byte(`{"tax_invoice_number":"INV-1","total_energy_kwh":130000}`), &partial))

	doc, err := invoiceToDoc(&partial)
	require.NoError(t, err)

	assert.Equal(t, "INV-1", doc["tax_invoice_number"])
	assert.Equal(t, 130000.0, doc["total_energy_kwh"])

	// A merge write of an explicit null or empty string would clear the
	// stored value, so absent fields must not appear in the doc at all.
	for _, key := range []string{
		"water_cost", "water_usage", "total_current_charges",
		"total_amount_due", "company_name", "filename",
	} {
		_, present := doc[key]
		assert.False(t, present, "absent field %q must be omitted from the merge doc", key)
	}
}

func TestInvoiceDocRoundTrip(t *testing.T) {
	inv := &model.Invoice{
		Filename:         "acme.pdf",
		CompanyName:      "Acme Industrial",
		TaxInvoiceNumber: "INV-1",
		TotalEnergyKWh:   model.Num(125000),
		WaterCost:        model.Num(75000),
	}

	doc, err := invoiceToDoc(inv)
	require.NoError(t, err)
	assert.Equal(t, "Acme Industrial", doc["company_name"])

	back, err := docToInvoice(doc)
	require.NoError(t, err)
	assert.Equal(t, "Acme Industrial", back.CompanyName)
	assert.Equal(t, 125000.0, back.TotalEnergyKWh.Or(0))
	assert.False(t, back.WaterUsage.Valid, "field absent from the doc decodes as no-value")
}

func TestDocID(t *testing.T) {
	inv := &model.Invoice{Filename: "a/b.pdf", InvoiceDate: "2024-01-01"}
	assert.Equal(t, "a_b.pdf|2024-01-01", docID(inv))

	inv.TaxInvoiceNumber = "INV-1"
	assert.Equal(t, "INV-1", docID(inv))
}
