package usecase

import "StayPulse/internal/domain/models"

// ListingTable is the immutable listing collection, loaded once at startup.
// Rows keep their source order; the distinct neighbourhood labels are
// precomputed in first-seen order and back the filter dropdown.
type ListingTable struct {
	rows   []models.Listing
	labels []string
	counts map[string]int
}

// NewListingTable builds a table over the given rows. The slice is owned by
// the table after this call and must not be mutated.
func NewListingTable(rows []models.Listing) *ListingTable {
	t := &ListingTable{
		rows:   rows,
		counts: make(map[string]int),
	}
	for _, l := range rows {
		if t.counts[l.Neighbourhood] == 0 {
			t.labels = append(t.labels, l.Neighbourhood)
		}
		t.counts[l.Neighbourhood]++
	}
	return t
}

// Len returns the total listing count.
func (t *ListingTable) Len() int { return len(t.rows) }

// All returns every listing.
func (t *ListingTable) All() []models.Listing { return t.rows }

// Neighbourhoods returns the distinct labels in first-seen order. Every
// returned label matches at least one row by construction.
func (t *ListingTable) Neighbourhoods() []string { return t.labels }

// HasNeighbourhood reports whether the label occurs in the table.
func (t *ListingTable) HasNeighbourhood(label string) bool {
	return t.counts[label] > 0
}

// Filter returns the subset matching the label; the empty label selects the
// whole table. The result preserves row order.
func (t *ListingTable) Filter(label string) []models.Listing {
	if label == "" {
		return t.rows
	}
	subset := make([]models.Listing, 0, t.counts[label])
	for _, l := range t.rows {
		if l.Neighbourhood == label {
			subset = append(subset, l)
		}
	}
	return subset
}
