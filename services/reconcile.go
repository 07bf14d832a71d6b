// Package services provides the reconciliation, grouping and pricing
// calculations behind the BOQ dashboard.
package services

import "strings"

// BOQ item workflow states.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
)

// Procurement states, independent of the workflow axis.
const (
	OrderPending   = "pending"
	OrderOrdered   = "ordered"
	OrderReceived  = "received"
	OrderCancelled = "cancelled"
)

// Derived variance classification for a comparison row.
const (
	VarianceOverOrdered  = "over_ordered"
	VariancePendingOrder = "pending_order"
	VarianceOnTrack      = "on_track"
)

// Derived receipt classification for a comparison row.
const (
	ReceiptFull    = "fully_received"
	ReceiptPartial = "partially_received"
	ReceiptPending = "pending"
)

// BOQItem is a planned line item of work or material. All numeric fields are
// normalized at the input boundary (missing values become 0), so downstream
// arithmetic never re-checks for absence.
type BOQItem struct {
	ID              string  `json:"id"`
	ProjectID       string  `json:"project_id"`
	Category        string  `json:"category"`
	ItemName        string  `json:"item_name"`
	Unit            string  `json:"unit"`
	Quantity        float64 `json:"quantity"`
	OrderedQuantity float64 `json:"ordered_quantity"`
	Rate            float64 `json:"rate"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	OrderStatus     string  `json:"order_status"`
}

// InventoryRecord is a received-stock entry. Multiple records may reference
// the same item name (separate deliveries); the engine sums them.
type InventoryRecord struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
}

// ComparisonRow is one BOQ item enriched with ordered/received figures and
// derived classifications. Rows are never persisted; they are recomputed from
// fresh inputs on every request.
type ComparisonRow struct {
	Item           BOQItem `json:"item"`
	BOQQty         float64 `json:"boqQty"`
	OrderedQty     float64 `json:"orderedQty"`
	ReceivedQty    float64 `json:"receivedQty"`
	Difference     float64 `json:"difference"`
	Variance       float64 `json:"variance"`
	Status         string  `json:"status"`
	ReceivedStatus string  `json:"receivedStatus"`
	BOQAmount      float64 `json:"boqAmount"`
	// OrderedAmount is estimated from the BOQ rate, not the purchase order
	// rate. Known proxy; the PO totals live on the procurement side.
	OrderedAmount float64 `json:"orderedAmount"`
}

// NormalizeName is the join key between BOQ items and inventory records:
// case-insensitive, trimmed equality.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildInventoryIndex sums received quantities per normalized item name.
// Records whose name normalizes to the empty string are skipped.
func BuildInventoryIndex(records []InventoryRecord) map[string]float64 {
	index := make(map[string]float64, len(records))
	for _, rec := range records {
		key := NormalizeName(rec.ItemName)
		if key == "" {
			continue
		}
		index[key] += rec.Quantity
	}
	return index
}

// CompareItem derives a single comparison row from an item and its summed
// received quantity.
func CompareItem(item BOQItem, receivedQty float64) ComparisonRow {
	boqQty := item.Quantity
	orderedQty := item.OrderedQuantity

	difference := orderedQty - boqQty

	// Guard the division: a zero-quantity line yields 0, never NaN/Inf.
	var variance float64
	if boqQty > 0 {
		variance = difference / boqQty * 100
	}

	// Over-ordered wins over pending-order. A draft item below its planned
	// quantity is deliberately on_track: only confirmed items are flagged.
	status := VarianceOnTrack
	switch {
	case orderedQty > boqQty:
		status = VarianceOverOrdered
	case orderedQty < boqQty && item.Status == StatusConfirmed:
		status = VariancePendingOrder
	}

	receivedStatus := ReceiptPending
	switch {
	case receivedQty >= orderedQty && orderedQty > 0:
		receivedStatus = ReceiptFull
	case receivedQty > 0:
		receivedStatus = ReceiptPartial
	}

	return ComparisonRow{
		Item:           item,
		BOQQty:         boqQty,
		OrderedQty:     orderedQty,
		ReceivedQty:    receivedQty,
		Difference:     difference,
		Variance:       variance,
		Status:         status,
		ReceivedStatus: receivedStatus,
		BOQAmount:      item.Amount,
		OrderedAmount:  orderedQty * item.Rate,
	}
}

// Compare reconciles BOQ items against an inventory snapshot. The output has
// exactly one row per input item, in input order. It is a pure function of
// its inputs and never mutates the inventory records.
func Compare(items []BOQItem, inventory []InventoryRecord) []ComparisonRow {
	index := BuildInventoryIndex(inventory)

	rows := make([]ComparisonRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, CompareItem(item, index[NormalizeName(item.ItemName)]))
	}
	return rows
}
