package repository

import (
	"context"
	"database/sql"
	"fmt"

	"StayPulse/internal/domain/models"
	"StayPulse/internal/domain/repository"
	pkgch "StayPulse/pkg/clickhouse"
)

// ClickHouseListingSource loads the listing table from a ClickHouse table
// holding the same column set as the CSV export.
type ClickHouseListingSource struct {
	client *pkgch.Client
	table  string
}

// NewClickHouseListingSource creates a ClickHouse-backed listing source.
func NewClickHouseListingSource(client *pkgch.Client, table string) repository.ListingSource {
	return &ClickHouseListingSource{client: client, table: table}
}

func (s *ClickHouseListingSource) Load(ctx context.Context) ([]models.Listing, error) {
	q := fmt.Sprintf(`SELECT id, name, host_name, host_since, room_type, price,
		latitude, longitude, accommodates, availability_365,
		minimum_nights_avg_ntm, reviews_per_month, number_of_reviews,
		neighbourhood_cleansed
		FROM %s ORDER BY id`, s.table)

	rows, err := s.client.DB().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var (
			l         models.Listing
			minNights sql.NullFloat64
			reviewsPM sql.NullFloat64
		)
		if err := rows.Scan(
			&l.ID, &l.Name, &l.HostName, &l.HostSince, &l.RoomType, &l.Price,
			&l.Latitude, &l.Longitude, &l.Accommodates, &l.Availability365,
			&minNights, &reviewsPM, &l.NumberOfReviews, &l.Neighbourhood,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		if minNights.Valid {
			v := minNights.Float64
			l.MinimumNightsAvg = &v
		}
		if reviewsPM.Valid {
			v := reviewsPM.Float64
			l.ReviewsPerMonth = &v
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("listing table %s is empty", s.table)
	}
	return listings, nil
}

func (s *ClickHouseListingSource) Close() error {
	return s.client.Close()
}
