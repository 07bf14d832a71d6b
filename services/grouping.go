package services

import (
	"sort"
	"strconv"
	"strings"
)

// Uncategorized is the grouping key for items without a category.
const Uncategorized = "Uncategorized"

// CategoryTotal summarizes one category section of the BOQ grid.
type CategoryTotal struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// CategoryKey maps an item's category to its grouping key.
func CategoryKey(category string) string {
	if strings.TrimSpace(category) == "" {
		return Uncategorized
	}
	return category
}

// GroupByCategory partitions items by category. The returned order slice
// lists categories by first appearance; member order within each group
// follows input order.
func GroupByCategory(items []BOQItem) (order []string, groups map[string][]BOQItem, totals map[string]CategoryTotal) {
	groups = make(map[string][]BOQItem)
	totals = make(map[string]CategoryTotal)

	for _, item := range items {
		key := CategoryKey(item.Category)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)

		total := totals[key]
		total.Count++
		total.Amount += item.Amount
		totals[key] = total
	}
	return order, groups, totals
}

// FilterValue stringifies the named field of an item for column filtering.
// Unknown fields yield the empty string, so any non-empty filter on them
// matches nothing.
func FilterValue(item BOQItem, field string) string {
	switch field {
	case "item_name":
		return item.ItemName
	case "category":
		return CategoryKey(item.Category)
	case "unit":
		return item.Unit
	case "status":
		return item.Status
	case "order_status":
		return item.OrderStatus
	case "quantity":
		return strconv.FormatFloat(item.Quantity, 'f', -1, 64)
	case "ordered_quantity":
		return strconv.FormatFloat(item.OrderedQuantity, 'f', -1, 64)
	case "rate":
		return strconv.FormatFloat(item.Rate, 'f', -1, 64)
	case "amount":
		return strconv.FormatFloat(item.Amount, 'f', -1, 64)
	}
	return ""
}

// ApplyFilters keeps the items whose stringified field values contain every
// non-empty filter substring, case-insensitively. Filters combine with AND.
func ApplyFilters(items []BOQItem, filters map[string]string) []BOQItem {
	active := make(map[string]string, len(filters))
	for field, substr := range filters {
		if strings.TrimSpace(substr) != "" {
			active[field] = strings.ToLower(substr)
		}
	}
	if len(active) == 0 {
		return items
	}

	var out []BOQItem
	for _, item := range items {
		match := true
		for field, substr := range active {
			if !strings.Contains(strings.ToLower(FilterValue(item, field)), substr) {
				match = false
				break
			}
		}
		if match {
			out = append(out, item)
		}
	}
	return out
}

// Top-level semantic filters for the comparison grid.
const (
	FilterAll       = "all"
	FilterVariance  = "variance"
	FilterCompleted = "completed"
)

// FilterRows applies the top-level semantic filter to comparison rows.
// Unrecognized filter names behave like FilterAll.
func FilterRows(rows []ComparisonRow, filter string) []ComparisonRow {
	switch filter {
	case FilterVariance:
		var out []ComparisonRow
		for _, r := range rows {
			if r.Difference != 0 {
				out = append(out, r)
			}
		}
		return out
	case FilterCompleted:
		var out []ComparisonRow
		for _, r := range rows {
			if r.OrderedQty >= r.BOQQty {
				out = append(out, r)
			}
		}
		return out
	}
	return rows
}

// Selection tracks the item ids targeted by a bulk action.
type Selection map[string]struct{}

func NewSelection() Selection {
	return make(Selection)
}

// Toggle flips the selection state of a single item id.
func (s Selection) Toggle(id string) {
	if _, ok := s[id]; ok {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids in sorted order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToggleCategory applies all-or-none semantics to a category's member ids:
// if every member is selected the whole set is deselected, otherwise the
// whole set is selected. Partial selection is a rendering state only.
func (s Selection) ToggleCategory(memberIDs []string) {
	allSelected := len(memberIDs) > 0
	for _, id := range memberIDs {
		if !s.Has(id) {
			allSelected = false
			break
		}
	}

	for _, id := range memberIDs {
		if allSelected {
			delete(s, id)
		} else {
			s[id] = struct{}{}
		}
	}
}

// Category checkbox states for rendering.
const (
	SelectionAll  = "all"
	SelectionSome = "some"
	SelectionNone = "none"
)

// CategoryState reports whether all, some or none of a category's members
// are selected. "some" renders as the indeterminate checkbox.
func (s Selection) CategoryState(memberIDs []string) string {
	selected := 0
	for _, id := range memberIDs {
		if s.Has(id) {
			selected++
		}
	}
	switch {
	case len(memberIDs) == 0 || selected == 0:
		return SelectionNone
	case selected == len(memberIDs):
		return SelectionAll
	}
	return SelectionSome
}
