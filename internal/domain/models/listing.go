package models

// Room types as they appear in the source dataset.
const (
	RoomEntireHome  = "Entire home/apt"
	RoomPrivateRoom = "Private room"
	RoomSharedRoom  = "Shared room"
)

// Listing is one short-term-rental record from the source table.
// Price stays in its raw currency-formatted form ("$1,200.00"); parsing
// happens in the aggregator so unparseable rows can be dropped row-wise.
// Nullable numeric fields use pointers: nil means the source had no value.
type Listing struct {
	ID               int64
	Name             string
	HostName         string
	HostSince        string
	RoomType         string
	Price            string
	Latitude         float64
	Longitude        float64
	Accommodates     int
	Availability365  int
	MinimumNightsAvg *float64
	ReviewsPerMonth  *float64
	NumberOfReviews  int
	Neighbourhood    string
}

// RoomColors maps room types to fixed marker colors for the charts.
type RoomColors struct {
	EntireHome  string
	PrivateRoom string
	SharedRoom  string
}

// ForRoomType returns the configured color for a room type, empty for unknown.
func (c RoomColors) ForRoomType(roomType string) string {
	switch roomType {
	case RoomEntireHome:
		return c.EntireHome
	case RoomPrivateRoom:
		return c.PrivateRoom
	case RoomSharedRoom:
		return c.SharedRoom
	}
	return ""
}
