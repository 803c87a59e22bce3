package models

import "time"

// Summary is the fixed-shape aggregate record computed over one subset.
// Percentages are on a 0-100 scale, occupancy on a 0-1 scale. Mean and
// ratio fields are NaN when the subset had no usable rows for them; the
// count fields are plain zeros in that case.
type Summary struct {
	Count             int
	PercentOfTotal    float64
	MeanPrice         float64
	EstNightsYear     float64
	EstOccupancy      float64
	EstIncomeMonth    float64
	MeanReviewsMonth  float64
	TotalReviews      int
	EntireHomePercent float64
}

// HistogramTrace is one room type's count-series over the availability axis.
type HistogramTrace struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Bins  []int  `json:"bins"`
}

// HistogramPayload holds the room-type distributions for the side chart.
// Traces are ordered shared, private, entire home; the bins of every trace
// cover the same 0-365 availability axis.
type HistogramPayload struct {
	BinDays int              `json:"bin_days"`
	Traces  []HistogramTrace `json:"traces"`
}

// MapPoint is one listing rendered on the map.
type MapPoint struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Tooltip string  `json:"tooltip"`
}

// MapTrace groups the points of one room type under a shared marker color.
type MapTrace struct {
	Name   string     `json:"name"`
	Color  string     `json:"color"`
	Points []MapPoint `json:"points"`
}

// Viewport is the map camera. It is owned by the presentation layer: once
// set it is passed through unchanged across filter changes (Sticky reports
// that to the renderer), so the camera never jumps on recomputation.
type Viewport struct {
	Zoom      float64 `json:"zoom"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Sticky    bool    `json:"sticky"`
}

// MapPayload is the geographic scatter built from one subset.
type MapPayload struct {
	Traces   []MapTrace `json:"traces"`
	Viewport Viewport   `json:"viewport"`
}

// Snapshot is the complete dashboard update published after a filter
// transition: the two chart payloads plus the nine formatted display
// values, all derived from the same subset. It is immutable once built and
// carries no timestamps, so recomputing the same filter over the same table
// yields an identical snapshot.
type Snapshot struct {
	Filter                 string           `json:"filter"`
	Map                    MapPayload       `json:"map"`
	Histogram              HistogramPayload `json:"histogram"`
	EstNightsYear          string           `json:"est_nights_year"`
	EstOccupancy           string           `json:"est_occupancy"`
	EstIncomeMonth         string           `json:"est_income_month"`
	PricePerNight          string           `json:"price_per_night"`
	ReviewsPerListingMonth string           `json:"reviews_per_listing_month"`
	TotalReviews           string           `json:"total_reviews"`
	NumListings            string           `json:"num_listings"`
	PercListings           string           `json:"perc_listings"`
	EntireHomePercent      string           `json:"entire_home_percent"`
}

// UpdateEvent is the lightweight record published to the event stream on
// every filter transition. Chart payloads are deliberately excluded.
type UpdateEvent struct {
	Filter     string    `json:"filter"`
	Count      int       `json:"count"`
	ComputedAt time.Time `json:"computed_at"`
}
