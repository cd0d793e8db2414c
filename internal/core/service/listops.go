package service

import (
	"sort"
	"strings"

	"github.com/labelforge/labelforge-go/internal/core/domain"
)

// SortField selects which attribute list sorting compares on.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortOrder selects sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// filterItems keeps items whose any text field contains term,
// case-insensitive. An empty term keeps everything. Input order is
// preserved; the input slice is never mutated.
func filterItems[T any](items []T, term string, text func(T) []string) []T {
	if term == "" {
		return append([]T(nil), items...)
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, field := range text(it) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// sortItems returns a sorted copy. cmp follows the usual tri-state
// convention (<0, 0, >0); equal items keep their original relative order.
func sortItems[T any](items []T, cmp func(a, b T) int, order SortOrder) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if order == OrderDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// FilterLabels matches term against label name and description.
func FilterLabels(items []domain.Label, term string) []domain.Label {
	return filterItems(items, term, func(l domain.Label) []string {
		return []string{l.Name, l.Description}
	})
}

// SortLabels sorts a copy of items by the given field and order.
func SortLabels(items []domain.Label, field SortField, order SortOrder) []domain.Label {
	return sortItems(items, func(a, b domain.Label) int {
		switch field {
		case SortByCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortByUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return strings.Compare(a.Name, b.Name)
		}
	}, order)
}

// FilterProjects matches term against project name and description.
func FilterProjects(items []domain.Project, term string) []domain.Project {
	return filterItems(items, term, func(p domain.Project) []string {
		return []string{p.Name, p.Description}
	})
}

// SortProjects sorts a copy of items by the given field and order.
func SortProjects(items []domain.Project, field SortField, order SortOrder) []domain.Project {
	return sortItems(items, func(a, b domain.Project) int {
		switch field {
		case SortByCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortByUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return strings.Compare(a.Name, b.Name)
		}
	}, order)
}
