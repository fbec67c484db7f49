package model

// MonthHistory is one row of an invoice's six-month usage history. Every
// numeric field is independently nullable.
type MonthHistory struct {
	MonthLabel          string `json:"month_label,omitempty"`
	EnergyKWh           Number `json:"energyKWh"`
	TotalCurrentCharges Number `json:"total_current_charges"`
	TotalAmountDue      Number `json:"total_amount_due"`
	MaximumDemandKVA    Number `json:"maximum_demand_kva"`
	CarbonTCO2e         Number `json:"carbonTco2e"`
	WaterM3             Number `json:"water_m3"`
	WaterCost           Number `json:"water_cost"`
}

// Invoice is the extracted summary of one billing document. Field names on
// the wire match the dashboard contract, so several are snake_case while the
// history key is camelCase.
type Invoice struct {
	Filename            string         `json:"filename"`
	CompanyName         string         `json:"company_name,omitempty"`
	AccountNumber       string         `json:"account_number,omitempty"`
	TaxInvoiceNumber    string         `json:"tax_invoice_number,omitempty"`
	InvoiceDate         string         `json:"invoice_date,omitempty"`
	DueDate             string         `json:"due_date,omitempty"`
	TotalCurrentCharges Number         `json:"total_current_charges"`
	TotalAmountDue      Number         `json:"total_amount_due"`
	TotalEnergyKWh      Number         `json:"total_energy_kwh"`
	WaterUsage          Number         `json:"water_usage"`
	WaterCost           Number         `json:"water_cost"`
	Categories          []string       `json:"categories,omitempty"`
	SixMonthHistory     []MonthHistory `json:"sixMonthHistory,omitempty"`
	LogoBase64          string         `json:"logo_base64,omitempty"`
	CreatedAt           string         `json:"created_at,omitempty"`
	UpdatedAt           string         `json:"updated_at,omitempty"`
}

// UpsertKey derives the stable identity used for insert-vs-update decisions:
// the tax invoice number when present, else filename plus invoice date.
// Two unrelated invoices sharing a filename and date therefore collide; the
// upstream contract does not disambiguate further.
func (inv *Invoice) UpsertKey() string {
	if inv.TaxInvoiceNumber != "" {
		return inv.TaxInvoiceNumber
	}
	return inv.Filename + "|" + inv.InvoiceDate
}
