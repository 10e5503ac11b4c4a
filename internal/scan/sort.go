package scan

import (
	"sort"

	"github.com/maruel/natural"
)

// Sort method constants, stored in the config file by ID.
const (
	SortNatural    = 0 // natural order (file1, file2, file10)
	SortSimple     = 1 // lexicographical
	SortEntryOrder = 2 // keep the order entries were found in
)

// SortStrategy orders a slice of entries.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original.
	Sort(entries []Entry) []Entry
	// Name returns the human-readable name of the strategy.
	Name() string
	// ID returns the numeric identifier for config storage.
	ID() int
}

// NaturalSortStrategy sorts with number-aware comparison.
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(entries []Entry) []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

// SimpleSortStrategy sorts lexicographically.
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(entries []Entry) []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy preserves the original order.
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(entries []Entry) []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	return result
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// Strategy returns the strategy for a sort method ID, falling back to
// natural order for unknown IDs.
func Strategy(method int) SortStrategy {
	switch method {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// AllStrategies returns every available strategy, in cycle order.
func AllStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
