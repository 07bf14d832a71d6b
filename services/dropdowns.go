package services

// UOMOptions lists the Unit of Measurement options offered by the grid.
var UOMOptions = []string{
	"Nos",
	"Sqm",
	"Sqft",
	"Rmt",
	"Cum",
	"Kg",
	"MT",
	"Lot",
	"Set",
	"Lumpsum",
	"Ltr",
	"Pair",
	"Bag",
	"Box",
	"Roll",
	"Bundle",
	"Trip",
	"Day",
	"Month",
	"Hour",
}

// ItemStatusOptions lists the BOQ item workflow states.
var ItemStatusOptions = []string{StatusDraft, StatusConfirmed, StatusCompleted}

// OrderStatusOptions lists the procurement states.
var OrderStatusOptions = []string{OrderPending, OrderOrdered, OrderReceived, OrderCancelled}

// SnagStatusOptions lists the snag workflow states.
var SnagStatusOptions = []string{"open", "in_progress", "resolved", "closed"}

// SnagSeverityOptions lists the snag severities.
var SnagSeverityOptions = []string{"low", "medium", "high"}

// GSTOptions lists the GST percentage options for proposal lines.
var GSTOptions = []int{0, 5, 12, 18, 28}
