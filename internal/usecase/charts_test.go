package usecase

import (
	"strings"
	"testing"

	"StayPulse/internal/domain/models"
)

func testColors() models.RoomColors {
	return models.RoomColors{EntireHome: "red", PrivateRoom: "green", SharedRoom: "blue"}
}

func TestHistogramBinsByRoomType(t *testing.T) {
	b := NewChartBuilder(testColors(), 30, 13)

	subset := []models.Listing{
		{ID: 1, RoomType: models.RoomEntireHome, Availability365: 0},    // bin 0
		{ID: 2, RoomType: models.RoomEntireHome, Availability365: 29},   // bin 0
		{ID: 3, RoomType: models.RoomEntireHome, Availability365: 30},   // bin 1
		{ID: 4, RoomType: models.RoomPrivateRoom, Availability365: 365}, // bin 12
		{ID: 5, RoomType: models.RoomSharedRoom, Availability365: 100},  // bin 3
	}
	payload := b.Histogram(subset)

	if payload.BinDays != 30 {
		t.Errorf("BinDays: got %d, want 30", payload.BinDays)
	}
	wantOrder := []string{models.RoomSharedRoom, models.RoomPrivateRoom, models.RoomEntireHome}
	if len(payload.Traces) != len(wantOrder) {
		t.Fatalf("traces: got %d, want %d", len(payload.Traces), len(wantOrder))
	}
	byName := map[string]models.HistogramTrace{}
	for i, tr := range payload.Traces {
		if tr.Name != wantOrder[i] {
			t.Errorf("trace[%d]: got %q, want %q", i, tr.Name, wantOrder[i])
		}
		if len(tr.Bins) != 13 {
			t.Errorf("trace %q: got %d bins, want 13", tr.Name, len(tr.Bins))
		}
		byName[tr.Name] = tr
	}

	entire := byName[models.RoomEntireHome]
	if entire.Bins[0] != 2 || entire.Bins[1] != 1 {
		t.Errorf("entire home bins: got %v", entire.Bins)
	}
	if byName[models.RoomPrivateRoom].Bins[12] != 1 {
		t.Errorf("private room bins: got %v", byName[models.RoomPrivateRoom].Bins)
	}
	if byName[models.RoomSharedRoom].Bins[3] != 1 {
		t.Errorf("shared room bins: got %v", byName[models.RoomSharedRoom].Bins)
	}
}

func TestHistogramClampsAvailability(t *testing.T) {
	b := NewChartBuilder(testColors(), 30, 13)

	payload := b.Histogram([]models.Listing{
		{ID: 1, RoomType: models.RoomEntireHome, Availability365: -5},
		{ID: 2, RoomType: models.RoomEntireHome, Availability365: 900},
	})
	for _, tr := range payload.Traces {
		if tr.Name != models.RoomEntireHome {
			continue
		}
		if tr.Bins[0] != 1 || tr.Bins[len(tr.Bins)-1] != 1 {
			t.Errorf("clamped bins: got %v", tr.Bins)
		}
	}
}

func TestHistogramCountsPartitionSubset(t *testing.T) {
	b := NewChartBuilder(testColors(), 30, 13)
	subset := sampleListings()

	total := 0
	for _, tr := range b.Histogram(subset).Traces {
		for _, n := range tr.Bins {
			total += n
		}
	}
	if total != len(subset) {
		t.Errorf("binned %d listings, want %d", total, len(subset))
	}
}

func TestMapTraceColorsAndPoints(t *testing.T) {
	b := NewChartBuilder(testColors(), 30, 13)
	payload := b.Map(sampleListings(), nil)

	wantColors := map[string]string{
		models.RoomEntireHome:  "red",
		models.RoomPrivateRoom: "green",
		models.RoomSharedRoom:  "blue",
	}
	points := 0
	for _, tr := range payload.Traces {
		if tr.Color != wantColors[tr.Name] {
			t.Errorf("trace %q: color %q, want %q", tr.Name, tr.Color, wantColors[tr.Name])
		}
		points += len(tr.Points)
	}
	if points != len(sampleListings()) {
		t.Errorf("mapped %d points, want %d", points, len(sampleListings()))
	}
}

func TestMapSeedsViewportFromSubsetMean(t *testing.T) {
	b := NewChartBuilder(testColors(), 30, 13)
	subset := []models.Listing{
		{ID: 1, RoomType: models.RoomEntireHome, Latitude: 45.0, Longitude: 12.0},
		{ID: 2, RoomType: models.RoomEntireHome, Latitude: 46.0, Longitude: 13.0},
	}

	vp := b.Map(subset, nil).Viewport
	if !almostEqual(vp.CenterLat, 45.5) || !almostEqual(vp.CenterLon, 12.5) {
		t.Errorf("center: got (%f, %f), want (45.5, 12.5)", vp.CenterLat, vp.CenterLon)
	}
	if !almostEqual(vp.Zoom, 13) {
		t.Errorf("zoom: got %f, want 13", vp.Zoom)
	}
	if !vp.Sticky {
		t.Error("seeded viewport should be sticky")
	}
}

func TestMapKeepsPreviousViewport(t *testing.T) {
	b := NewChartBuilder(testColors(), 30, 13)
	prev := models.Viewport{Zoom: 9.5, CenterLat: 44.0, CenterLon: 11.0, Sticky: true}

	vp := b.Map(sampleListings(), &prev).Viewport
	if vp != prev {
		t.Errorf("viewport changed: got %+v, want %+v", vp, prev)
	}
}

func TestTooltipContents(t *testing.T) {
	l := sampleListings()[0]
	got := tooltip(l)

	for _, want := range []string{"Canal View", "Marta", "2015-03-02", "$120.00", "sleeps 4"} {
		if !strings.Contains(got, want) {
			t.Errorf("tooltip %q missing %q", got, want)
		}
	}
	// 320/365 of the year, one decimal
	if !strings.Contains(got, "87.7%") {
		t.Errorf("tooltip %q missing availability share", got)
	}
}
