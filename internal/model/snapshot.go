package model

// LiveSnapshot is the point-in-time projection pushed to live subscribers.
// It is recomputed on demand and never stored.
type LiveSnapshot struct {
	Timestamp            string         `json:"timestamp"`
	LastESGInput         map[string]any `json:"last_esg_input"`
	LastESGUploadedRows  int            `json:"last_esg_uploaded_rows_count"`
	InvoiceCount         int            `json:"invoice_count"`
	LastInvoices         []*Invoice     `json:"last_invoices"`
}

// LiveMessage is the envelope sent over the live channel.
type LiveMessage struct {
	Type string        `json:"type"`
	Data *LiveSnapshot `json:"data"`
}

// LiveUpdateType is the only message type the live channel emits.
const LiveUpdateType = "live-esg-update"
