package extraction

import (
	"math"
	"time"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

// Normalize scrubs an invoice record in place so it satisfies the storage
// contract: no NaN or infinite numerics, and audit timestamps present.
// CreatedAt is set once; UpdatedAt always reflects the latest pass.
// Normalize is idempotent apart from UpdatedAt.
func Normalize(inv *model.Invoice, now time.Time) {
	scrubNumber(&inv.TotalCurrentCharges)
	scrubNumber(&inv.TotalAmountDue)
	scrubNumber(&inv.TotalEnergyKWh)
	scrubNumber(&inv.WaterUsage)
	scrubNumber(&inv.WaterCost)

	for i := range inv.SixMonthHistory {
		h := &inv.SixMonthHistory[i]
		scrubNumber(&h.EnergyKWh)
		scrubNumber(&h.TotalCurrentCharges)
		scrubNumber(&h.TotalAmountDue)
		scrubNumber(&h.MaximumDemandKVA)
		scrubNumber(&h.CarbonTCO2e)
		scrubNumber(&h.WaterM3)
		scrubNumber(&h.WaterCost)
	}

	stamp := Timestamp(now)
	if inv.CreatedAt == "" {
		inv.CreatedAt = stamp
	}
	inv.UpdatedAt = stamp
}

// scrubNumber invalidates non-finite values so they serialize as null
// instead of breaking JSON encoding.
func scrubNumber(n *model.Number) {
	if n.Valid && (math.IsNaN(n.Value) || math.IsInf(n.Value, 0)) {
		*n = model.Number{}
	}
}

// Timestamp renders the canonical UTC audit timestamp.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
