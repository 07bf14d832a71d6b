package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// BackfillOrderStatus sets order_status to "pending" on BOQ items created
// before the procurement axis existed. Items with a status are left alone.
func BackfillOrderStatus(app *pocketbase.PocketBase) error {
	itemsCol, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		return fmt.Errorf("boq_items collection: %w", err)
	}

	records, err := app.FindRecordsByFilter(itemsCol, "order_status = ''", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("query items without order_status: %w", err)
	}

	for _, record := range records {
		record.Set("order_status", "pending")
		if err := app.Save(record); err != nil {
			log.Printf("backfill_order_status: could not update item %s: %v", record.Id, err)
		}
	}

	if len(records) > 0 {
		log.Printf("backfill_order_status: updated %d items", len(records))
	}
	return nil
}
