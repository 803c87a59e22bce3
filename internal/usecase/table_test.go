package usecase

import (
	"testing"

	"StayPulse/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: 1, Name: "Canal View", HostName: "Marta", HostSince: "2015-03-02", RoomType: models.RoomEntireHome, Price: "$120.00", Latitude: 45.4408, Longitude: 12.3155, Accommodates: 4, Availability365: 320, MinimumNightsAvg: fptr(2), ReviewsPerMonth: fptr(1.5), NumberOfReviews: 80, Neighbourhood: "San Marco"},
		{ID: 2, Name: "Quiet Loft", HostName: "Paolo", HostSince: "2017-06-11", RoomType: models.RoomPrivateRoom, Price: "$65.00", Latitude: 45.4420, Longitude: 12.3210, Accommodates: 2, Availability365: 120, MinimumNightsAvg: fptr(3), ReviewsPerMonth: fptr(0.8), NumberOfReviews: 25, Neighbourhood: "San Marco"},
		{ID: 3, Name: "Artist Studio", HostName: "Giulia", HostSince: "2019-01-20", RoomType: models.RoomEntireHome, Price: "$98.00", Latitude: 45.4300, Longitude: 12.3260, Accommodates: 3, Availability365: 200, MinimumNightsAvg: fptr(2), ReviewsPerMonth: fptr(2.1), NumberOfReviews: 112, Neighbourhood: "Dorsoduro"},
		{ID: 4, Name: "Shared Flat", HostName: "Luca", HostSince: "2020-09-05", RoomType: models.RoomSharedRoom, Price: "$30.00", Latitude: 45.4450, Longitude: 12.3300, Accommodates: 1, Availability365: 365, MinimumNightsAvg: nil, ReviewsPerMonth: nil, NumberOfReviews: 3, Neighbourhood: "Cannaregio"},
		{ID: 5, Name: "Garden House", HostName: "Anna", HostSince: "2016-12-01", RoomType: models.RoomEntireHome, Price: "$150.00", Latitude: 45.4390, Longitude: 12.3180, Accommodates: 5, Availability365: 90, MinimumNightsAvg: fptr(4), ReviewsPerMonth: fptr(1.0), NumberOfReviews: 47, Neighbourhood: "Cannaregio"},
	}
}

func TestFilterMatchesLabel(t *testing.T) {
	table := NewListingTable(sampleListings())

	for _, label := range table.Neighbourhoods() {
		subset := table.Filter(label)
		if len(subset) == 0 {
			t.Errorf("label %q yielded empty subset", label)
		}
		for _, l := range subset {
			if l.Neighbourhood != label {
				t.Errorf("listing %d in subset for %q has neighbourhood %q", l.ID, label, l.Neighbourhood)
			}
		}
	}
}

func TestFilterEmptyLabelSelectsAll(t *testing.T) {
	table := NewListingTable(sampleListings())
	if got := len(table.Filter("")); got != table.Len() {
		t.Errorf("unfiltered subset: got %d, want %d", got, table.Len())
	}
}

func TestNeighbourhoodCountsPartitionTable(t *testing.T) {
	table := NewListingTable(sampleListings())

	sum := 0
	for _, label := range table.Neighbourhoods() {
		sum += len(table.Filter(label))
	}
	if sum != table.Len() {
		t.Errorf("per-label counts sum to %d, want %d", sum, table.Len())
	}
}

func TestFilterRoundTrip(t *testing.T) {
	table := NewListingTable(sampleListings())

	for _, label := range table.Neighbourhoods() {
		inner := NewListingTable(table.Filter(label))
		got := inner.Neighbourhoods()
		if len(got) != 1 || got[0] != label {
			t.Errorf("subset for %q has labels %v, want exactly that one", label, got)
		}
	}
}

func TestNeighbourhoodsFirstSeenOrder(t *testing.T) {
	table := NewListingTable(sampleListings())
	want := []string{"San Marco", "Dorsoduro", "Cannaregio"}
	got := table.Neighbourhoods()
	if len(got) != len(want) {
		t.Fatalf("labels: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHasNeighbourhood(t *testing.T) {
	table := NewListingTable(sampleListings())
	if !table.HasNeighbourhood("Dorsoduro") {
		t.Error("expected Dorsoduro to be known")
	}
	if table.HasNeighbourhood("Giudecca") {
		t.Error("did not expect Giudecca to be known")
	}
}
