package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// CategoryStore persists the per-project custom category list. The cache is
// deliberately behind a narrow interface so the merge logic stays independent
// of the storage medium.
type CategoryStore interface {
	Load(projectID string) ([]string, error)
	Save(projectID string, categories []string) error
}

// CategoryCache layers user-defined categories on top of the categories
// already present on a project's items. Reads merge by set union; the stored
// list is only ever extended, never used to drop server categories.
type CategoryCache struct {
	store CategoryStore
}

func NewCategoryCache(store CategoryStore) *CategoryCache {
	return &CategoryCache{store: store}
}

// Merge returns the union of server-derived and stored custom categories,
// server categories first, preserving first-appearance order.
func (c *CategoryCache) Merge(projectID string, serverCategories []string) ([]string, error) {
	custom, err := c.store.Load(projectID)
	if err != nil {
		return nil, fmt.Errorf("load custom categories: %w", err)
	}
	return MergeCategories(serverCategories, custom), nil
}

// Add stores a new custom category for the project. Adding an existing name
// (case-insensitive) is a no-op.
func (c *CategoryCache) Add(projectID, category string) ([]string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("category name is required")
	}

	custom, err := c.store.Load(projectID)
	if err != nil {
		return nil, fmt.Errorf("load custom categories: %w", err)
	}

	merged := MergeCategories(custom, []string{category})
	if len(merged) == len(custom) {
		return custom, nil
	}
	if err := c.store.Save(projectID, merged); err != nil {
		return nil, fmt.Errorf("save custom categories: %w", err)
	}
	return merged, nil
}

// Replace overwrites the stored custom list after dropping blanks and
// case-insensitive duplicates.
func (c *CategoryCache) Replace(projectID string, categories []string) ([]string, error) {
	cleaned := MergeCategories(nil, categories)
	if err := c.store.Save(projectID, cleaned); err != nil {
		return nil, fmt.Errorf("save custom categories: %w", err)
	}
	return cleaned, nil
}

// MergeCategories unions two category lists, keeping first-appearance order
// and treating names case-insensitively. Blank entries are dropped.
func MergeCategories(server, custom []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range [][]string{server, custom} {
		for _, cat := range list {
			cat = strings.TrimSpace(cat)
			if cat == "" {
				continue
			}
			key := strings.ToLower(cat)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, cat)
		}
	}
	return out
}

// ItemCategories extracts the distinct categories present on a project's
// items, sorted, with the Uncategorized sentinel excluded.
func ItemCategories(items []BOQItem) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		cat := strings.TrimSpace(item.Category)
		if cat == "" {
			continue
		}
		key := strings.ToLower(cat)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// RecordCategoryStore keeps one project_categories record per project.
type RecordCategoryStore struct {
	App *pocketbase.PocketBase
}

func (s *RecordCategoryStore) Load(projectID string) ([]string, error) {
	record, err := s.App.FindFirstRecordByFilter(
		"project_categories",
		"project = {:projectId}",
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		// No record yet means an empty custom list, not a failure.
		return nil, nil
	}
	return record.GetStringSlice("categories"), nil
}

func (s *RecordCategoryStore) Save(projectID string, categories []string) error {
	record, err := s.App.FindFirstRecordByFilter(
		"project_categories",
		"project = {:projectId}",
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		col, err := s.App.FindCollectionByNameOrId("project_categories")
		if err != nil {
			return fmt.Errorf("project_categories collection: %w", err)
		}
		record = core.NewRecord(col)
		record.Set("project", projectID)
	}

	record.Set("categories", categories)
	if err := s.App.Save(record); err != nil {
		return fmt.Errorf("save project_categories record: %w", err)
	}
	return nil
}
