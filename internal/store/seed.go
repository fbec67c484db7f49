package store

import "github.com/greenbdg/africaesg/backend/internal/model"

// SeedInvoice returns the demo invoice record loaded when the system starts
// with no stored data, so the dashboard is never empty on first run.
func SeedInvoice() *model.Invoice {
	return &model.Invoice{
		Filename:            "dube_tradeport_sample.pdf",
		CompanyName:         "Dube Tradeport",
		AccountNumber:       "DTZ-2024-001",
		TaxInvoiceNumber:    "INV-DTZ-2024-001",
		InvoiceDate:         "2024-01-15",
		DueDate:             "2024-02-15",
		TotalCurrentCharges: model.Num(185000.50),
		TotalAmountDue:      model.Num(185000.50),
		TotalEnergyKWh:      model.Num(125000.0),
		WaterUsage:          model.Num(12500.0),
		WaterCost:           model.Num(75000.0),
		Categories:          []string{"Manufacturing", "Logistics", "Industrial"},
		SixMonthHistory: []model.MonthHistory{
			{MonthLabel: "Jan 2024", EnergyKWh: model.Num(21000.0), TotalCurrentCharges: model.Num(31000.75), TotalAmountDue: model.Num(31000.75), CarbonTCO2e: model.Num(20.79), WaterM3: model.Num(2100.0), WaterCost: model.Num(12600.0)},
			{MonthLabel: "Dec 2023", EnergyKWh: model.Num(20500.0), TotalCurrentCharges: model.Num(30300.50), TotalAmountDue: model.Num(30300.50), CarbonTCO2e: model.Num(20.30), WaterM3: model.Num(2050.0), WaterCost: model.Num(12300.0)},
			{MonthLabel: "Nov 2023", EnergyKWh: model.Num(19800.0), TotalCurrentCharges: model.Num(29200.25), TotalAmountDue: model.Num(29200.25), CarbonTCO2e: model.Num(19.60), WaterM3: model.Num(1980.0), WaterCost: model.Num(11880.0)},
			{MonthLabel: "Oct 2023", EnergyKWh: model.Num(21500.0), TotalCurrentCharges: model.Num(31700.80), TotalAmountDue: model.Num(31700.80), CarbonTCO2e: model.Num(21.29), WaterM3: model.Num(2150.0), WaterCost: model.Num(12900.0)},
			{MonthLabel: "Sep 2023", EnergyKWh: model.Num(20700.0), TotalCurrentCharges: model.Num(30500.60), TotalAmountDue: model.Num(30500.60), CarbonTCO2e: model.Num(20.49), WaterM3: model.Num(2070.0), WaterCost: model.Num(12420.0)},
			{MonthLabel: "Aug 2023", EnergyKWh: model.Num(19500.0), TotalCurrentCharges: model.Num(28700.45), TotalAmountDue: model.Num(28700.45), CarbonTCO2e: model.Num(19.31), WaterM3: model.Num(1950.0), WaterCost: model.Num(11700.0)},
		},
	}
}
