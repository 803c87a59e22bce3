package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"StayPulse/internal/domain/models"
)

// priceRegexp captures the numeric part of a currency-formatted price.
var priceRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// Aggregator computes the summary statistics over one subset. It is a pure
// function of its inputs; the same subset always yields the same Summary.
type Aggregator struct {
	// nonReviewingShare is the assumed fraction of guests who never leave
	// a review, so observed review activity is scaled by 1/(1-share).
	nonReviewingShare float64
}

// NewAggregator creates an Aggregator with the given non-reviewing-guest share.
func NewAggregator(nonReviewingShare float64) *Aggregator {
	return &Aggregator{nonReviewingShare: nonReviewingShare}
}

// Summarize computes the aggregate record over subset. total is the full
// table size, the denominator for the percentage-of-total figure. An empty
// subset yields zero counts and NaN for every mean/ratio field.
func (a *Aggregator) Summarize(subset []models.Listing, total int) models.Summary {
	s := models.Summary{
		Count:             len(subset),
		PercentOfTotal:    math.NaN(),
		MeanPrice:         math.NaN(),
		EstNightsYear:     math.NaN(),
		EstOccupancy:      math.NaN(),
		EstIncomeMonth:    math.NaN(),
		MeanReviewsMonth:  math.NaN(),
		EntireHomePercent: math.NaN(),
	}

	if total > 0 {
		s.PercentOfTotal = float64(s.Count) / float64(total) * 100
	}
	if len(subset) == 0 {
		return s
	}

	var (
		priceSum    float64
		priceN      int
		bookedSum   float64 // minimum_nights_avg * reviews_per_month
		bookedN     int
		reviewsPM   float64
		reviewsPMN  int
		entireHomes int
	)
	for _, l := range subset {
		if v, ok := parsePrice(l.Price); ok {
			priceSum += v
			priceN++
		}
		if l.MinimumNightsAvg != nil && l.ReviewsPerMonth != nil {
			bookedSum += *l.MinimumNightsAvg * *l.ReviewsPerMonth
			bookedN++
		}
		if l.ReviewsPerMonth != nil {
			reviewsPM += *l.ReviewsPerMonth
			reviewsPMN++
		}
		if l.RoomType == models.RoomEntireHome {
			entireHomes++
		}
		s.TotalReviews += l.NumberOfReviews
	}

	if priceN > 0 {
		s.MeanPrice = priceSum / float64(priceN)
	}
	if bookedN > 0 {
		s.EstNightsYear = bookedSum / float64(bookedN) * 12 / (1 - a.nonReviewingShare)
		s.EstOccupancy = s.EstNightsYear / 365
		s.EstIncomeMonth = s.MeanPrice * s.EstNightsYear / 12
	}
	if reviewsPMN > 0 {
		s.MeanReviewsMonth = reviewsPM / float64(reviewsPMN)
	}
	s.EntireHomePercent = float64(entireHomes) / float64(len(subset)) * 100

	return s
}

// parsePrice extracts a numeric amount from a currency-formatted string
// ("$1,200.00" -> 1200). Returns false for strings with no parseable amount
// so callers can drop the row instead of aborting the computation.
func parsePrice(raw string) (float64, bool) {
	match := priceRegexp.FindString(raw)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
