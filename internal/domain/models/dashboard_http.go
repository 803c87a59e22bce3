package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

// DashboardRequest selects which subset to render. An empty neighbourhood
// means the unfiltered table.
type DashboardRequest struct {
	Neighbourhood string `query:"neighbourhood" json:"neighbourhood" validate:"omitempty,max=120"`
}

// FilterRequest drives the filter state machine. An empty neighbourhood
// transitions back to the unfiltered state.
type FilterRequest struct {
	Neighbourhood string `query:"neighbourhood" json:"neighbourhood" validate:"omitempty,max=120"`
}

// NeighbourhoodOptions backs the dropdown: the distinct labels plus the
// total listing count for the "out of N listings" caption.
type NeighbourhoodOptions struct {
	Neighbourhoods []string `json:"neighbourhoods"`
	TotalListings  int      `json:"total_listings"`
}
