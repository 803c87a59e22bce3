package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"StayPulse/internal/domain/models"
	"StayPulse/internal/domain/repository"
	"StayPulse/pkg/logger"
	"StayPulse/pkg/util"
)

// Column names as exported by the listings dataset.
const (
	colID               = "id"
	colName             = "name"
	colHostName         = "host_name"
	colHostSince        = "host_since"
	colRoomType         = "room_type"
	colPrice            = "price"
	colLatitude         = "latitude"
	colLongitude        = "longitude"
	colAccommodates     = "accommodates"
	colAvailability     = "availability_365"
	colMinimumNightsAvg = "minimum_nights_avg_ntm"
	colReviewsPerMonth  = "reviews_per_month"
	colNumberOfReviews  = "number_of_reviews"
	colNeighbourhood    = "neighbourhood_cleansed"
)

// CSVListingSource loads the listing table from a listings.csv export.
// Columns are resolved by header name, so column order does not matter and
// extra columns are ignored.
type CSVListingSource struct {
	path string
	l    *logger.Logger
}

// NewCSVListingSource creates a CSV-backed listing source.
func NewCSVListingSource(path string, l *logger.Logger) repository.ListingSource {
	return &CSVListingSource{path: path, l: l}
}

func (s *CSVListingSource) Load(ctx context.Context) ([]models.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open listings csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{colRoomType, colPrice, colLatitude, colLongitude, colNeighbourhood} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("listings csv missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var listings []models.Listing
	var dropped int
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(field(rec, colLatitude), 64)
		lon, lonErr := strconv.ParseFloat(field(rec, colLongitude), 64)
		if latErr != nil || lonErr != nil {
			dropped++
			continue
		}

		id, _ := strconv.ParseInt(field(rec, colID), 10, 64)
		listings = append(listings, models.Listing{
			ID:               id,
			Name:             field(rec, colName),
			HostName:         field(rec, colHostName),
			HostSince:        field(rec, colHostSince),
			RoomType:         field(rec, colRoomType),
			Price:            field(rec, colPrice),
			Latitude:         lat,
			Longitude:        lon,
			Accommodates:     util.ParseIntDefault(field(rec, colAccommodates), 0),
			Availability365:  util.ParseIntDefault(field(rec, colAvailability), 0),
			MinimumNightsAvg: util.ParseFloatPtr(field(rec, colMinimumNightsAvg)),
			ReviewsPerMonth:  util.ParseFloatPtr(field(rec, colReviewsPerMonth)),
			NumberOfReviews:  util.ParseIntDefault(field(rec, colNumberOfReviews), 0),
			Neighbourhood:    field(rec, colNeighbourhood),
		})
	}

	if s.l != nil {
		s.l.Info("listings loaded from csv",
			logger.String("path", s.path),
			logger.Int("rows", len(listings)),
			logger.Int("dropped", dropped),
		)
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("listings csv %s has no usable rows", s.path)
	}
	return listings, nil
}

func (s *CSVListingSource) Close() error { return nil }
